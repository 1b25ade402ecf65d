// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/uimanager.go
// Summary: Owns a flat widget list, routes input and composes frames.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager owns a small widget tree and composes it to a buffer.
type UIManager struct {
	mu       sync.Mutex // protects widgets, focus, capture, buffer
	notifyMu sync.Mutex // protects notifier
	W, H     int
	widgets  []Widget // later entries draw on top
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	capture  Widget
	buf      [][]Cell
}

// NewUIManager creates an empty manager drawing on the default style.
func NewUIManager() *UIManager {
	return &UIManager{bgStyle: tcell.StyleDefault}
}

// SetBackground sets the style used to clear the frame.
func (u *UIManager) SetBackground(style tcell.Style) {
	u.mu.Lock()
	u.bgStyle = style
	u.mu.Unlock()
	u.RequestRefresh()
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.notifyMu.Lock()
	defer u.notifyMu.Unlock()
	u.notifier = ch
}

// RequestRefresh signals the host that a new frame is available.
func (u *UIManager) RequestRefresh() {
	u.notifyMu.Lock()
	ch := u.notifier
	u.notifyMu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Invalidate marks a region for redraw. Frames are always fully composed,
// so any non-empty region just requests a refresh.
func (u *UIManager) Invalidate(r Rect) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	u.RequestRefresh()
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	u.mu.Unlock()
	u.RequestRefresh()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	u.widgets = append(u.widgets, w)
	u.propagateInvalidator(w)
	u.mu.Unlock()
	u.RequestRefresh()
}

// Clear removes every widget and drops focus.
func (u *UIManager) Clear() {
	u.mu.Lock()
	if u.focused != nil {
		u.focused.Blur()
	}
	u.widgets = nil
	u.focused = nil
	u.capture = nil
	u.mu.Unlock()
	u.RequestRefresh()
}

func (u *UIManager) propagateInvalidator(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.propagateInvalidator(child) })
	}
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

// Focused returns the widget holding focus, or nil.
func (u *UIManager) Focused() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focused
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// HandleKey gives the focused widget the first chance at ev, then handles
// Tab and Backtab as focus traversal.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	handled := u.handleKeyLocked(ev)
	u.mu.Unlock()
	if handled {
		u.RequestRefresh()
	}
	return handled
}

func (u *UIManager) handleKeyLocked(ev *tcell.EventKey) bool {
	if u.focused != nil {
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() {
			return u.focused.HandleKey(ev)
		}
		if u.focused.HandleKey(ev) {
			return true
		}
	}
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		return u.cycleFocusLocked(forward)
	}
	return false
}

// CycleFocus moves focus to the next (or previous) focusable widget.
func (u *UIManager) CycleFocus(forward bool) bool {
	u.mu.Lock()
	ok := u.cycleFocusLocked(forward)
	u.mu.Unlock()
	if ok {
		u.RequestRefresh()
	}
	return ok
}

func (u *UIManager) cycleFocusLocked(forward bool) bool {
	order := u.focusOrderLocked()
	if len(order) == 0 {
		return false
	}
	cur := -1
	for i, w := range order {
		if w == u.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(order) - 1
	case forward:
		next = (cur + 1) % len(order)
	default:
		next = (cur - 1 + len(order)) % len(order)
	}
	if order[next] == u.focused {
		return false
	}
	u.focusLocked(order[next])
	return true
}

// focusOrderLocked flattens the tree into the Tab traversal order.
func (u *UIManager) focusOrderLocked() []Widget {
	var out []Widget
	var visit func(w Widget)
	visit = func(w Widget) {
		if h, ok := w.(Hider); ok && h.Hidden() {
			return
		}
		if w.Focusable() {
			out = append(out, w)
		}
		if cc, ok := w.(ChildContainer); ok {
			cc.VisitChildren(visit)
		}
	}
	for _, w := range u.widgets {
		visit(w)
	}
	return out
}

// HandleMouse routes mouse events for click-to-focus and capture drags.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	handled := u.handleMouseLocked(ev)
	u.mu.Unlock()
	if handled {
		u.RequestRefresh()
	}
	return handled
}

func (u *UIManager) handleMouseLocked(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	wasDown := u.capture != nil
	down := buttons&tcell.Button1 != 0

	if u.focused != nil && down && !wasDown {
		if modal, ok := u.focused.(Modal); ok && modal.IsModal() && !u.focused.HitTest(x, y) {
			modal.DismissModal()
			return true
		}
	}

	if down && !wasDown {
		w := u.topmostAtLocked(x, y)
		if w == nil {
			return false
		}
		u.focusLocked(w)
		u.capture = w
		if mw, ok := w.(MouseAware); ok {
			mw.HandleMouse(ev)
		}
		return true
	}

	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			mw.HandleMouse(ev)
		}
		if !down {
			u.capture = nil
		}
		return true
	}

	if buttons&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if mw, ok := u.topmostAtLocked(x, y).(MouseAware); ok {
			return mw.HandleMouse(ev)
		}
	}
	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if w := deepHit(u.widgets[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

// deepHit returns the innermost widget under (x, y).
func deepHit(w Widget, x, y int) Widget {
	if h, ok := w.(Hider); ok && h.Hidden() {
		return nil
	}
	if ht, ok := w.(HitTester); ok {
		if dw := ht.WidgetAt(x, y); dw != nil {
			return dw
		}
		if w.HitTest(x, y) {
			return w
		}
		return nil
	}
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res == nil {
				res = deepHit(child, x, y)
			}
		})
		if res != nil {
			return res
		}
	}
	if w.HitTest(x, y) {
		return w
	}
	return nil
}

func (u *UIManager) ensureBufferLocked() {
	if u.buf != nil && len(u.buf) == u.H && (u.H == 0 || len(u.buf[0]) == u.W) {
		return
	}
	u.buf = NewBuffer(u.W, u.H, u.bgStyle)
}

// Render composes every visible widget and returns the framebuffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()
	full := Rect{W: u.W, H: u.H}
	p := NewPainter(u.buf, full)
	p.Fill(full, ' ', u.bgStyle)
	for _, w := range u.widgets {
		if h, ok := w.(Hider); ok && h.Hidden() {
			continue
		}
		w.Draw(p)
	}
	return u.buf
}
