// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/textarea.go
// Summary: Multiline text editor with a scrolling viewport and selection.

package widgets

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

// LineStyler colours a single line of text. It returns one style per rune;
// a short slice leaves the remaining runes in the base style.
type LineStyler func(line int, text string) []tcell.Style

// TextArea is a minimal multiline text editor with viewport.
type TextArea struct {
	core.BaseWidget
	Lines     []string
	CaretX    int
	CaretY    int
	OffX      int
	OffY      int
	Style     tcell.Style
	SelStyle  tcell.Style
	ReadOnly  bool
	Styler    LineStyler
	OnChange  func(text string)
	TabWidth  int
	clip      string
	inv       func(core.Rect)
	selActive bool
	selSX     int
	selSY     int
	selEX     int
	selEY     int
}

func NewTextArea(x, y, w, h int) *TextArea {
	ta := &TextArea{
		Lines:    []string{""},
		Style:    DefaultTheme.Text,
		SelStyle: DefaultTheme.Selection,
		TabWidth: 2,
	}
	ta.SetPosition(x, y)
	ta.Resize(w, h)
	ta.SetFocusable(true)
	return ta
}

// SetInvalidator allows the UI manager to inject a dirty-region invalidator.
func (t *TextArea) SetInvalidator(fn func(core.Rect)) { t.inv = fn }

// Text returns the buffer joined with newlines.
func (t *TextArea) Text() string { return strings.Join(t.Lines, "\n") }

// SetText replaces the buffer and moves the caret to the start. OnChange is
// not called.
func (t *TextArea) SetText(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	t.Lines = strings.Split(s, "\n")
	t.CaretX, t.CaretY, t.OffX, t.OffY = 0, 0, 0, 0
	t.clearSelection()
	t.invalidateViewport()
}

func (t *TextArea) changed() {
	if t.OnChange != nil {
		t.OnChange(t.Text())
	}
}

func (t *TextArea) clampCaret() {
	if t.CaretY >= len(t.Lines) {
		t.CaretY = len(t.Lines) - 1
	}
	if t.CaretY < 0 {
		t.CaretY = 0
	}
	maxX := len([]rune(t.Lines[t.CaretY]))
	if t.CaretX < 0 {
		t.CaretX = 0
	}
	if t.CaretX > maxX {
		t.CaretX = maxX
	}
}

func (t *TextArea) ensureVisible() {
	if t.CaretX < t.OffX {
		t.OffX = t.CaretX
	}
	if t.Rect.W > 0 && t.CaretX >= t.OffX+t.Rect.W {
		t.OffX = t.CaretX - t.Rect.W + 1
	}
	if t.OffX < 0 {
		t.OffX = 0
	}
	if t.CaretY < t.OffY {
		t.OffY = t.CaretY
	}
	if t.Rect.H > 0 && t.CaretY >= t.OffY+t.Rect.H {
		t.OffY = t.CaretY - t.Rect.H + 1
	}
	if t.OffY < 0 {
		t.OffY = 0
	}
}

func (t *TextArea) Draw(p *core.Painter) {
	p.Fill(t.Rect, ' ', t.Style)
	for row := 0; row < t.Rect.H; row++ {
		ly := t.OffY + row
		if ly >= len(t.Lines) {
			break
		}
		var styles []tcell.Style
		if t.Styler != nil {
			styles = t.Styler(ly, t.Lines[ly])
		}
		visible := []rune(t.Lines[ly])
		col := 0
		for cx := t.OffX; cx < len(visible) && col < t.Rect.W; cx++ {
			style := t.Style
			if cx < len(styles) {
				style = styles[cx]
			}
			if t.inSelection(cx, ly) {
				style = t.SelStyle
			}
			p.SetCell(t.Rect.X+col, t.Rect.Y+row, visible[cx], style)
			col++
		}
	}
	// caret: underlying rune in reverse video
	if t.IsFocused() && !t.ReadOnly {
		cx := t.CaretX - t.OffX
		cy := t.CaretY - t.OffY
		if cx >= 0 && cy >= 0 && cx < t.Rect.W && cy < t.Rect.H {
			ch := ' '
			line := []rune(t.Lines[t.CaretY])
			if t.CaretX < len(line) {
				ch = line[t.CaretX]
			}
			fg, bg, _ := t.Style.Decompose()
			p.SetCell(t.Rect.X+cx, t.Rect.Y+cy, ch, tcell.StyleDefault.Background(fg).Foreground(bg))
		}
	}
}

func (t *TextArea) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	lx := x - t.Rect.X
	ly := y - t.Rect.Y
	if lx < 0 || ly < 0 || lx >= t.Rect.W || ly >= t.Rect.H {
		return false
	}
	btn := ev.Buttons()
	if btn&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if btn&tcell.WheelUp != 0 && t.OffY > 0 {
			t.OffY--
		}
		if btn&tcell.WheelDown != 0 && t.OffY < len(t.Lines)-1 {
			t.OffY++
		}
		t.invalidateViewport()
		return true
	}
	if btn&tcell.Button1 != 0 {
		t.CaretY = t.OffY + ly
		t.CaretX = t.OffX + lx
		t.clearSelection()
		t.clampCaret()
		t.ensureVisible()
		t.invalidateViewport()
		return true
	}
	return false
}

func (t *TextArea) insertText(s string) {
	for _, r := range s {
		if r == '\n' {
			t.splitLine()
			continue
		}
		if r == '\t' {
			t.insertText(strings.Repeat(" ", t.tabWidth()))
			continue
		}
		t.clampCaret()
		line := []rune(t.Lines[t.CaretY])
		line = append(line[:t.CaretX], append([]rune{r}, line[t.CaretX:]...)...)
		t.Lines[t.CaretY] = string(line)
		t.CaretX++
	}
	t.clampCaret()
	t.ensureVisible()
	t.invalidateViewport()
}

func (t *TextArea) tabWidth() int {
	if t.TabWidth <= 0 {
		return 2
	}
	return t.TabWidth
}

func (t *TextArea) splitLine() {
	t.clampCaret()
	line := []rune(t.Lines[t.CaretY])
	head, tail := line[:t.CaretX], line[t.CaretX:]
	t.Lines[t.CaretY] = string(head)
	t.Lines = append(t.Lines[:t.CaretY+1], append([]string{string(tail)}, t.Lines[t.CaretY+1:]...)...)
	t.CaretY++
	t.CaretX = 0
}

// selection helpers

func (t *TextArea) hasSelection() bool {
	return t.selActive && (t.selSX != t.selEX || t.selSY != t.selEY)
}

func (t *TextArea) clearSelection() {
	t.selActive = false
	t.selSX, t.selSY, t.selEX, t.selEY = 0, 0, 0, 0
}

// selectionBounds returns the selection as ordered (start, end) positions;
// end is exclusive.
func (t *TextArea) selectionBounds() (sx, sy, ex, ey int) {
	sx, sy, ex, ey = t.selSX, t.selSY, t.selEX, t.selEY
	if sy > ey || (sy == ey && sx > ex) {
		sx, sy, ex, ey = ex, ey, sx, sy
	}
	return
}

func (t *TextArea) inSelection(x, y int) bool {
	if !t.hasSelection() {
		return false
	}
	sx, sy, ex, ey := t.selectionBounds()
	if y < sy || y > ey {
		return false
	}
	if y == sy && x < sx {
		return false
	}
	if y == ey && x >= ex {
		return false
	}
	return true
}

func (t *TextArea) getSelectedText() string {
	if !t.hasSelection() {
		return ""
	}
	sx, sy, ex, ey := t.selectionBounds()
	if sy == ey {
		line := []rune(t.Lines[sy])
		return string(line[clampIdx(sx, len(line)):clampIdx(ex, len(line))])
	}
	var b strings.Builder
	first := []rune(t.Lines[sy])
	b.WriteString(string(first[clampIdx(sx, len(first)):]))
	for y := sy + 1; y < ey; y++ {
		b.WriteByte('\n')
		b.WriteString(t.Lines[y])
	}
	last := []rune(t.Lines[ey])
	b.WriteByte('\n')
	b.WriteString(string(last[:clampIdx(ex, len(last))]))
	return b.String()
}

func (t *TextArea) deleteSelection() {
	if !t.hasSelection() {
		return
	}
	sx, sy, ex, ey := t.selectionBounds()
	first := []rune(t.Lines[sy])
	last := []rune(t.Lines[ey])
	merged := string(first[:clampIdx(sx, len(first))]) + string(last[clampIdx(ex, len(last)):])
	t.Lines = append(t.Lines[:sy], append([]string{merged}, t.Lines[ey+1:]...)...)
	t.CaretX, t.CaretY = sx, sy
	t.clearSelection()
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func (t *TextArea) invalidateViewport() {
	if t.inv == nil {
		return
	}
	t.inv(t.Rect)
}
