// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/checkbox.go
// Summary: Toggleable boolean widget.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

// Checkbox displays a checked or unchecked state.
// Format: [X] Label or [ ] Label
// When focused, shows a cursor: > [X] Label
type Checkbox struct {
	core.BaseWidget
	Label    string
	Checked  bool
	ReadOnly bool
	Style    tcell.Style
	OnChange func(checked bool)
}

// NewCheckbox creates a checkbox at the specified position. Width follows
// the label.
func NewCheckbox(x, y int, label string) *Checkbox {
	c := &Checkbox{
		Label: label,
		Style: DefaultTheme.Surface,
	}
	c.SetFocusedStyle(DefaultTheme.Focus, true)
	c.SetPosition(x, y)
	c.Resize(6+core.TextWidth(label), 1)
	c.SetFocusable(true)
	return c
}

func (c *Checkbox) Draw(painter *core.Painter) {
	style := c.EffectiveStyle(c.Style)
	painter.Fill(core.Rect{X: c.Rect.X, Y: c.Rect.Y, W: c.Rect.W, H: 1}, ' ', style)

	cursor := "  "
	if c.IsFocused() {
		cursor = "> "
	}
	box := "[ ] "
	if c.Checked {
		box = "[X] "
	}
	painter.DrawText(c.Rect.X, c.Rect.Y, core.Truncate(cursor+box+c.Label, c.Rect.W), style)
}

// HandleKey toggles on Space or Enter.
func (c *Checkbox) HandleKey(ev *tcell.EventKey) bool {
	if (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') || ev.Key() == tcell.KeyEnter {
		c.toggle()
		return true
	}
	return false
}

// HandleMouse toggles on a left click.
func (c *Checkbox) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !c.HitTest(x, y) {
		return false
	}
	if ev.Buttons() == tcell.Button1 {
		c.toggle()
		return true
	}
	return false
}

func (c *Checkbox) toggle() {
	if c.ReadOnly {
		return
	}
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c.Checked)
	}
}
