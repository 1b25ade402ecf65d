// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/ui/core"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func shift(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModShift) }

func typeText(w core.Widget, s string) {
	for _, r := range s {
		w.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func render(w core.Widget, cols, rows int) [][]core.Cell {
	buf := core.NewBuffer(cols, rows, tcell.StyleDefault)
	w.Draw(core.NewPainter(buf, core.Rect{W: cols, H: rows}))
	return buf
}

func row(buf [][]core.Cell, y int) string {
	out := make([]rune, 0, len(buf[y]))
	for _, c := range buf[y] {
		out = append(out, c.Ch)
	}
	return string(out)
}

func TestTextAreaTypingAndLines(t *testing.T) {
	ta := NewTextArea(0, 0, 10, 3)
	var changes []string
	ta.OnChange = func(s string) { changes = append(changes, s) }

	typeText(ta, "ab")
	ta.HandleKey(key(tcell.KeyEnter))
	typeText(ta, "cd")
	assert.Equal(t, "ab\ncd", ta.Text())
	assert.Equal(t, []string{"a", "ab", "ab\n", "ab\nc", "ab\ncd"}, changes)

	ta.HandleKey(key(tcell.KeyHome))
	ta.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "abcd", ta.Text(), "backspace at column 0 joins lines")
	assert.Equal(t, 2, ta.CaretX)

	ta.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "abd", ta.Text())
}

func TestTextAreaSelectionCutPaste(t *testing.T) {
	ta := NewTextArea(0, 0, 20, 3)
	ta.SetText("hello world")
	ta.HandleKey(key(tcell.KeyEnd))
	for i := 0; i < 5; i++ {
		ta.HandleKey(shift(tcell.KeyLeft))
	}
	require.True(t, ta.hasSelection())
	assert.Equal(t, "world", ta.getSelectedText())

	ta.HandleKey(key(tcell.KeyCtrlX))
	assert.Equal(t, "hello ", ta.Text())
	ta.HandleKey(key(tcell.KeyHome))
	ta.HandleKey(key(tcell.KeyCtrlV))
	assert.Equal(t, "worldhello ", ta.Text())
}

func TestTextAreaSelectAllAcrossLinesAndReplace(t *testing.T) {
	ta := NewTextArea(0, 0, 20, 3)
	ta.SetText("one\ntwo\nthree")
	ta.HandleKey(key(tcell.KeyCtrlA))
	assert.Equal(t, "one\ntwo\nthree", ta.getSelectedText())

	typeText(ta, "x")
	assert.Equal(t, "x", ta.Text())
	assert.Equal(t, []string{"x"}, ta.Lines)
}

func TestTextAreaReadOnlyIgnoresEdits(t *testing.T) {
	ta := NewTextArea(0, 0, 10, 2)
	ta.SetText("keep")
	ta.ReadOnly = true
	typeText(ta, "zz")
	assert.False(t, ta.HandleKey(key(tcell.KeyBackspace2)))
	assert.Equal(t, "keep", ta.Text())
	assert.True(t, ta.HandleKey(key(tcell.KeyRight)), "navigation still works")
}

func TestTextAreaLeavesUnknownKeysAlone(t *testing.T) {
	ta := NewTextArea(0, 0, 10, 2)
	assert.False(t, ta.HandleKey(key(tcell.KeyCtrlS)))
	assert.False(t, ta.HandleKey(key(tcell.KeyTab)))
	assert.False(t, ta.HandleKey(key(tcell.KeyEsc)))
}

func TestTextAreaScrollsToCaret(t *testing.T) {
	ta := NewTextArea(0, 0, 4, 2)
	ta.SetText("a\nb\nc\nd")
	ta.HandleKey(key(tcell.KeyDown))
	ta.HandleKey(key(tcell.KeyDown))
	ta.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, 2, ta.OffY)

	buf := render(ta, 4, 2)
	assert.Equal(t, 'c', buf[0][0].Ch)
	assert.Equal(t, 'd', buf[1][0].Ch)
}

func TestTextAreaStylerColoursRunes(t *testing.T) {
	ta := NewTextArea(0, 0, 4, 1)
	ta.SetText("ab")
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	ta.Styler = func(_ int, _ string) []tcell.Style { return []tcell.Style{red} }

	buf := render(ta, 4, 1)
	assert.Equal(t, red, buf[0][0].Style)
	assert.Equal(t, ta.Style, buf[0][1].Style)
}

func TestInputEditingAndSubmit(t *testing.T) {
	in := NewInput(0, 0, 5)
	var submitted string
	in.OnSubmit = func(s string) { submitted = s }
	typeText(in, "abcdef")
	assert.Equal(t, "abcdef", in.Text())

	in.HandleKey(key(tcell.KeyLeft))
	in.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "abcdf", in.Text())
	assert.Equal(t, 4, in.Caret())

	in.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, "abcdf", submitted)
}

func TestInputPlaceholder(t *testing.T) {
	in := NewInput(0, 0, 8)
	in.Placeholder = "Search"
	assert.Equal(t, "Search  ", row(render(in, 8, 1), 0))
}

func TestCheckboxToggle(t *testing.T) {
	cb := NewCheckbox(0, 0, "flag")
	var got []bool
	cb.OnChange = func(v bool) { got = append(got, v) }

	cb.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	cb.HandleMouse(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, []bool{true, false}, got)

	cb.ReadOnly = true
	cb.HandleKey(key(tcell.KeyEnter))
	assert.Len(t, got, 2)
	assert.Equal(t, "  [ ] flag", row(render(cb, 10, 1), 0))
}

func TestButtonClick(t *testing.T) {
	b := NewButton(0, 0, "Add")
	n := 0
	b.OnClick = func() { n++ }
	b.HandleKey(key(tcell.KeyEnter))
	b.HandleMouse(tcell.NewEventMouse(2, 0, tcell.Button1, tcell.ModNone))
	b.HandleMouse(tcell.NewEventMouse(20, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 2, n)
	assert.Equal(t, "[ Add ]", row(render(b, 7, 1), 0))
}

func TestDrawerModalKeys(t *testing.T) {
	d := NewDrawer("Source")
	saved, closed := 0, 0
	d.OnSave = func() { saved++ }
	d.OnClose = func() { closed++; d.Close() }

	assert.False(t, d.HandleKey(key(tcell.KeyCtrlS)), "closed drawer ignores keys")
	d.Open(40, 10)
	assert.True(t, d.IsModal())
	assert.Equal(t, 20, d.Rect.X)

	d.Focus()
	typeText(d, "<p>")
	assert.Equal(t, "<p>", d.Body.Text())
	assert.True(t, d.HandleKey(key(tcell.KeyTab)), "modal keeps Tab")

	d.HandleKey(key(tcell.KeyCtrlS))
	assert.Equal(t, 1, saved)
	d.HandleKey(key(tcell.KeyEsc))
	assert.Equal(t, 1, closed)
	assert.False(t, d.IsOpen())
	assert.True(t, d.Hidden())
}
