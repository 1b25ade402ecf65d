// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/widget.go
// Summary: Widget contract and shared base behaviour.

package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	SetPosition(x, y int)
	Position() (int, int)
	Resize(w, h int)
	Size() (int, int)
	Draw(p *Painter)
	Focusable() bool
	Focus()
	Blur()
	HandleKey(ev *tcell.EventKey) bool
	HitTest(x, y int) bool
}

// BaseWidget provides common fields/behaviour for widgets.
type BaseWidget struct {
	Rect         Rect
	focused      bool
	focusable    bool
	hidden       bool
	focusedStyle tcell.Style
	hasFocusSty  bool
	onFocus      []func(bool)
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }
func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.Rect.W, b.Rect.H = w, h
}
func (b *BaseWidget) Size() (int, int)    { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) Focusable() bool     { return b.focusable && !b.hidden }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }
func (b *BaseWidget) Focus() {
	if b.focusable && !b.focused {
		b.focused = true
		b.notifyFocus(true)
	}
}
func (b *BaseWidget) Blur() {
	if b.focused {
		b.focused = false
		b.notifyFocus(false)
	}
}
func (b *BaseWidget) IsFocused() bool                   { return b.focused }
func (b *BaseWidget) HitTest(x, y int) bool             { return !b.hidden && b.Rect.Contains(x, y) }
func (b *BaseWidget) HandleKey(ev *tcell.EventKey) bool { return false }

// SetHidden hides the widget from hit testing and focus traversal.
func (b *BaseWidget) SetHidden(hidden bool) { b.hidden = hidden }

// Hidden reports whether the widget is hidden.
func (b *BaseWidget) Hidden() bool { return b.hidden }

// OnFocusChange registers fn to run whenever the widget gains or loses focus.
func (b *BaseWidget) OnFocusChange(fn func(focused bool)) {
	if fn != nil {
		b.onFocus = append(b.onFocus, fn)
	}
}

func (b *BaseWidget) notifyFocus(focused bool) {
	for _, fn := range b.onFocus {
		fn(focused)
	}
}

// SetFocusedStyle sets the style used while focused.
func (b *BaseWidget) SetFocusedStyle(style tcell.Style, enabled bool) {
	b.focusedStyle = style
	b.hasFocusSty = enabled
}

// EffectiveStyle returns the focused style when focused, else base.
func (b *BaseWidget) EffectiveStyle(base tcell.Style) tcell.Style {
	if b.focused && b.hasFocusSty {
		return b.focusedStyle
	}
	return base
}

// MouseAware widgets can consume mouse events directly.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// InvalidationAware widgets accept an invalidation callback to mark dirty regions.
type InvalidationAware interface {
	SetInvalidator(func(Rect))
}

// ChildContainer allows recursive operations over widget trees without
// depending on concrete widget packages.
type ChildContainer interface {
	VisitChildren(func(Widget))
}

// HitTester lets containers resolve the widget under a point themselves,
// for example to ignore children scrolled out of view.
type HitTester interface {
	WidgetAt(x, y int) Widget
}

// Modal widgets receive every key while focused, including Tab. A press
// outside a modal widget dismisses it.
type Modal interface {
	IsModal() bool
	DismissModal()
}

// Hider is implemented by widgets that can be hidden.
type Hider interface {
	Hidden() bool
}
