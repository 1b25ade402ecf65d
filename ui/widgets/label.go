// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/label.go
// Summary: Static text and push buttons.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

// Label draws a single line of text, truncated to its width.
type Label struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
}

func NewLabel(x, y, w int, text string) *Label {
	l := &Label{Text: text, Style: DefaultTheme.Surface}
	l.SetPosition(x, y)
	l.Resize(w, 1)
	return l
}

func (l *Label) Draw(p *core.Painter) {
	p.Fill(l.Rect, ' ', l.Style)
	p.DrawText(l.Rect.X, l.Rect.Y, core.Truncate(l.Text, l.Rect.W), l.Style)
}

// Button runs OnClick when activated by Enter, Space or a click.
type Button struct {
	core.BaseWidget
	Label   string
	Style   tcell.Style
	OnClick func()
}

func NewButton(x, y int, label string) *Button {
	b := &Button{Label: label, Style: DefaultTheme.Accent}
	b.SetPosition(x, y)
	b.Resize(core.TextWidth(label)+4, 1)
	b.SetFocusable(true)
	b.SetFocusedStyle(DefaultTheme.Focus.Bold(true), true)
	return b
}

func (b *Button) Draw(p *core.Painter) {
	style := b.EffectiveStyle(b.Style)
	p.Fill(b.Rect, ' ', style)
	p.DrawText(b.Rect.X, b.Rect.Y, core.Truncate("[ "+b.Label+" ]", b.Rect.W), style)
}

func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		b.activate()
		return true
	}
	return false
}

func (b *Button) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if b.HitTest(x, y) && ev.Buttons() == tcell.Button1 {
		b.activate()
		return true
	}
	return false
}

func (b *Button) activate() {
	if b.OnClick != nil {
		b.OnClick()
	}
}
