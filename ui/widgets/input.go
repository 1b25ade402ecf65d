// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/input.go
// Summary: Single-line text input.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

// Input is a single-line editor. OnChange runs after every edit and
// OnSubmit when Enter is pressed.
type Input struct {
	core.BaseWidget
	Placeholder string
	Style       tcell.Style
	ReadOnly    bool
	OnChange    func(text string)
	OnSubmit    func(text string)
	text        []rune
	caret       int
	off         int
	inv         func(core.Rect)
}

func NewInput(x, y, w int) *Input {
	in := &Input{Style: DefaultTheme.Text}
	in.SetPosition(x, y)
	in.Resize(w, 1)
	in.SetFocusable(true)
	in.SetFocusedStyle(DefaultTheme.Focus, true)
	return in
}

func (i *Input) SetInvalidator(fn func(core.Rect)) { i.inv = fn }

// Text returns the current value.
func (i *Input) Text() string { return string(i.text) }

// SetText replaces the value and moves the caret to its end.
func (i *Input) SetText(s string) {
	i.text = []rune(s)
	i.caret = len(i.text)
	i.scroll()
	i.invalidate()
}

// Caret returns the caret position in runes.
func (i *Input) Caret() int { return i.caret }

func (i *Input) Draw(p *core.Painter) {
	style := i.EffectiveStyle(i.Style)
	p.Fill(i.Rect, ' ', style)
	if len(i.text) == 0 && !i.IsFocused() && i.Placeholder != "" {
		_, bg, _ := style.Decompose()
		p.DrawText(i.Rect.X, i.Rect.Y, core.Truncate(i.Placeholder, i.Rect.W), DefaultTheme.Muted.Background(bg))
		return
	}
	for col, idx := 0, i.off; idx < len(i.text) && col < i.Rect.W; idx, col = idx+1, col+1 {
		p.SetCell(i.Rect.X+col, i.Rect.Y, i.text[idx], style)
	}
	if i.IsFocused() && !i.ReadOnly {
		cx := i.caret - i.off
		if cx >= 0 && cx < i.Rect.W {
			ch := ' '
			if i.caret < len(i.text) {
				ch = i.text[i.caret]
			}
			fg, bg, _ := style.Decompose()
			p.SetCell(i.Rect.X+cx, i.Rect.Y, ch, tcell.StyleDefault.Background(fg).Foreground(bg))
		}
	}
}

func (i *Input) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEnter:
		if i.OnSubmit != nil {
			i.OnSubmit(i.Text())
			return true
		}
		return false
	case tcell.KeyLeft:
		i.caret--
	case tcell.KeyRight:
		i.caret++
	case tcell.KeyHome:
		i.caret = 0
	case tcell.KeyEnd:
		i.caret = len(i.text)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if i.ReadOnly || i.caret == 0 {
			return !i.ReadOnly
		}
		i.text = append(i.text[:i.caret-1], i.text[i.caret:]...)
		i.caret--
		i.edited()
		return true
	case tcell.KeyDelete:
		if i.ReadOnly || i.caret >= len(i.text) {
			return !i.ReadOnly
		}
		i.text = append(i.text[:i.caret], i.text[i.caret+1:]...)
		i.edited()
		return true
	case tcell.KeyRune:
		if i.ReadOnly || ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		i.text = append(i.text[:i.caret], append([]rune{ev.Rune()}, i.text[i.caret:]...)...)
		i.caret++
		i.edited()
		return true
	default:
		return false
	}
	i.scroll()
	i.invalidate()
	return true
}

func (i *Input) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !i.HitTest(x, y) || ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	i.caret = i.off + x - i.Rect.X
	i.scroll()
	i.invalidate()
	return true
}

func (i *Input) edited() {
	i.scroll()
	i.invalidate()
	if i.OnChange != nil {
		i.OnChange(i.Text())
	}
}

func (i *Input) scroll() {
	if i.caret < 0 {
		i.caret = 0
	}
	if i.caret > len(i.text) {
		i.caret = len(i.text)
	}
	if i.caret < i.off {
		i.off = i.caret
	}
	if i.Rect.W > 0 && i.caret >= i.off+i.Rect.W {
		i.off = i.caret - i.Rect.W + 1
	}
}

func (i *Input) invalidate() {
	if i.inv != nil {
		i.inv(i.Rect)
	}
}
