// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/drawer.go
// Summary: Modal side panel hosting a text area.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

// Drawer is a bordered panel that slides over the right part of the screen.
// While open it is modal: it keeps every key, Ctrl+S runs OnSave and Esc
// runs OnClose. Other keys go to Body.
type Drawer struct {
	core.BaseWidget
	Title   string
	Hint    string
	Style   tcell.Style
	Body    *TextArea
	OnSave  func()
	OnClose func()
	open    bool
}

func NewDrawer(title string) *Drawer {
	d := &Drawer{
		Title: title,
		Hint:  "Ctrl+S save · Esc close",
		Style: DefaultTheme.Accent,
		Body:  NewTextArea(0, 0, 0, 0),
	}
	d.SetHidden(true)
	return d
}

// Open shows the drawer. It is placed over the right half of a w×h screen.
func (d *Drawer) Open(w, h int) {
	d.Place(w, h)
	d.open = true
	d.SetHidden(false)
	d.SetFocusable(true)
}

// Close hides the drawer without running any callback.
func (d *Drawer) Close() {
	d.open = false
	d.Blur()
	d.SetFocusable(false)
	d.SetHidden(true)
}

// IsOpen reports whether the drawer is visible.
func (d *Drawer) IsOpen() bool { return d.open }

// Place lays the drawer out for a w×h screen.
func (d *Drawer) Place(w, h int) {
	dw := w / 2
	if dw < 20 {
		dw = w
	}
	d.SetPosition(w-dw, 0)
	d.Resize(dw, h)
}

func (d *Drawer) Resize(w, h int) {
	d.BaseWidget.Resize(w, h)
	d.Body.SetPosition(d.Rect.X+1, d.Rect.Y+1)
	d.Body.Resize(w-2, h-3)
}

func (d *Drawer) SetPosition(x, y int) {
	d.BaseWidget.SetPosition(x, y)
	d.Body.SetPosition(x+1, y+1)
}

func (d *Drawer) SetInvalidator(fn func(core.Rect)) { d.Body.SetInvalidator(fn) }

func (d *Drawer) IsModal() bool { return d.open }

func (d *Drawer) DismissModal() {
	if d.OnClose != nil {
		d.OnClose()
		return
	}
	d.Close()
}

func (d *Drawer) Focus() {
	d.BaseWidget.Focus()
	d.Body.Focus()
}

func (d *Drawer) Blur() {
	d.Body.Blur()
	d.BaseWidget.Blur()
}

func (d *Drawer) Draw(p *core.Painter) {
	if !d.open {
		return
	}
	p.Fill(d.Rect, ' ', DefaultTheme.Surface)
	p.DrawBorder(d.Rect, d.Style, core.SingleLine)
	if d.Title != "" && d.Rect.W > 4 {
		p.DrawText(d.Rect.X+2, d.Rect.Y, core.Truncate(" "+d.Title+" ", d.Rect.W-4), d.Style)
	}
	if d.Rect.H >= 3 {
		p.DrawText(d.Rect.X+1, d.Rect.Y+d.Rect.H-2, core.Truncate(d.Hint, d.Rect.W-2), DefaultTheme.Muted)
	}
	d.Body.Draw(p.WithClip(d.Body.Rect))
}

func (d *Drawer) HandleKey(ev *tcell.EventKey) bool {
	if !d.open {
		return false
	}
	switch ev.Key() {
	case tcell.KeyCtrlS:
		if d.OnSave != nil {
			d.OnSave()
		}
		return true
	case tcell.KeyEsc:
		if d.Body.HandleKey(ev) {
			return true
		}
		d.DismissModal()
		return true
	}
	d.Body.HandleKey(ev)
	return true
}

func (d *Drawer) HandleMouse(ev *tcell.EventMouse) bool {
	if !d.open {
		return false
	}
	return d.Body.HandleMouse(ev)
}
