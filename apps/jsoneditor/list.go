// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/jsoneditor/list.go
// Summary: Scrolling column of labelled field rows.

package jsoneditor

import (
	"github.com/framegrace/nestedjson/ui/core"
	"github.com/framegrace/nestedjson/ui/widgets"
)

type focusReporter interface {
	IsFocused() bool
}

// fieldList lays out bindings top to bottom and scrolls to the focused one.
type fieldList struct {
	core.BaseWidget
	rows  []*fieldBinding
	off   int
	empty string
	inv   func(core.Rect)
}

func newFieldList() *fieldList {
	return &fieldList{empty: "No fields"}
}

func (l *fieldList) SetInvalidator(fn func(core.Rect)) {
	l.inv = fn
	for _, row := range l.rows {
		if ia, ok := row.widget.(core.InvalidationAware); ok {
			ia.SetInvalidator(fn)
		}
	}
}

// setRows replaces the rows and resets scrolling.
func (l *fieldList) setRows(rows []*fieldBinding) {
	for _, row := range l.rows {
		row.widget.Blur()
	}
	l.rows = rows
	l.off = 0
	l.SetInvalidator(l.inv)
	l.layout()
}

func (l *fieldList) Resize(w, h int) {
	l.BaseWidget.Resize(w, h)
	l.layout()
}

func (l *fieldList) SetPosition(x, y int) {
	l.BaseWidget.SetPosition(x, y)
	l.layout()
}

func (l *fieldList) labelWidth() int {
	w := l.Rect.W / 3
	if w > 32 {
		w = 32
	}
	if w < 8 {
		w = 8
	}
	return w
}

// rowTop returns the content offset of row i.
func (l *fieldList) rowTop(i int) int {
	top := 0
	for _, row := range l.rows[:i] {
		top += row.height
	}
	return top
}

func (l *fieldList) scrollToFocus() {
	for i, row := range l.rows {
		fr, ok := row.widget.(focusReporter)
		if !ok || !fr.IsFocused() {
			continue
		}
		top := l.rowTop(i)
		if top < l.off {
			l.off = top
		}
		if bottom := top + row.height; bottom > l.off+l.Rect.H {
			l.off = bottom - l.Rect.H
		}
		return
	}
}

func (l *fieldList) layout() {
	labelW := l.labelWidth()
	editorX := l.Rect.X + labelW + 1
	editorW := l.Rect.W - labelW - 1
	if editorW < 1 {
		editorW = 1
	}
	y := l.Rect.Y - l.off
	for _, row := range l.rows {
		row.label.SetPosition(l.Rect.X, y)
		row.label.Resize(labelW, 1)
		row.widget.SetPosition(editorX, y)
		if row.kind == fieldBool {
			row.widget.Resize(6, 1)
		} else {
			row.widget.Resize(editorW, row.height)
		}
		y += row.height
	}
}

// visible reports whether row i is entirely inside the viewport.
func (l *fieldList) visible(i int) bool {
	top := l.rowTop(i) - l.off
	return top >= 0 && top+l.rows[i].height <= l.Rect.H
}

func (l *fieldList) Draw(p *core.Painter) {
	l.scrollToFocus()
	l.layout()
	clip := p.WithClip(l.Rect)
	clip.Fill(l.Rect, ' ', widgets.DefaultTheme.Surface)
	if len(l.rows) == 0 {
		clip.DrawText(l.Rect.X, l.Rect.Y, l.empty, widgets.DefaultTheme.Muted)
		return
	}
	for _, row := range l.rows {
		row.label.Style = row.labelStyle()
		row.label.Draw(clip)
		row.widget.Draw(clip)
	}
}

func (l *fieldList) VisitChildren(f func(core.Widget)) {
	for _, row := range l.rows {
		f(row.widget)
	}
}

// WidgetAt only resolves rows that are fully in view.
func (l *fieldList) WidgetAt(x, y int) core.Widget {
	if !l.Rect.Contains(x, y) {
		return nil
	}
	for i, row := range l.rows {
		if l.visible(i) && row.widget.HitTest(x, y) {
			return row.widget
		}
	}
	return nil
}

// bindingFor returns the row editing w, or nil.
func (l *fieldList) bindingFor(w core.Widget) *fieldBinding {
	for _, row := range l.rows {
		if row.widget == w {
			return row
		}
	}
	return nil
}

// bindingAt returns the row for path, or nil.
func (l *fieldList) bindingAt(path string) *fieldBinding {
	for _, row := range l.rows {
		if row.path == path {
			return row
		}
	}
	return nil
}
