// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/richtext/richtext.go
// Summary: HTML content editor with a "view source" drawer.
// Usage: cmd/nestedjson source FILE runs it through the devshell.

package richtext

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/ui/adapter"
	"github.com/framegrace/nestedjson/ui/core"
	"github.com/framegrace/nestedjson/ui/widgets"
	"github.com/framegrace/nestedjson/uistate"
)

var _ core.App = (*Editor)(nil)
var _ uistate.HTMLEditor = (*Editor)(nil)

// SaveFunc persists the document content.
type SaveFunc func(html string) error

const helpText = "F2 source · Ctrl+S save · Ctrl+Q quit"

// Config tunes the editor.
type Config struct {
	Title     string
	Highlight string // chroma style name
	TabWidth  int
}

// Editor edits HTML content directly and through the source drawer.
type Editor struct {
	*adapter.UIApp
	mu     sync.Mutex
	save   SaveFunc
	source *uistate.SourceCode
	hl     *Highlighter

	header  *widgets.Label
	toolbar *widgets.Button
	content *widgets.TextArea
	drawer  *widgets.Drawer
	status  *widgets.Label
	help    *widgets.Label

	// OnInput runs after the content changed, either by typing or by a
	// source save.
	OnInput func(html string)

	dirty        bool
	pendingFocus core.Widget
	w, h         int
}

// New creates an editor over html. save may be nil.
func New(html string, cfg Config, save SaveFunc) *Editor {
	ui := core.NewUIManager()
	ui.SetBackground(widgets.DefaultTheme.Surface)
	e := &Editor{
		UIApp: adapter.NewUIApp(cfg.Title, ui),
		save:  save,
		hl:    NewHighlighter(cfg.Highlight, widgets.DefaultTheme.Text),
	}
	e.source = uistate.NewSourceCode(e)

	e.header = widgets.NewLabel(0, 0, 0, e.GetTitle())
	e.header.Style = widgets.DefaultTheme.Accent
	ui.AddWidget(e.header)

	e.toolbar = widgets.NewButton(0, 0, e.source.Button.Tooltip)
	e.toolbar.OnClick = e.source.Button.OnAction
	ui.AddWidget(e.toolbar)

	e.content = widgets.NewTextArea(0, 0, 0, 0)
	e.content.TabWidth = cfg.TabWidth
	e.content.SetText(html)
	e.content.OnChange = func(string) { e.markChanged("Edited") }
	ui.AddWidget(e.content)

	e.status = widgets.NewLabel(0, 0, 0, "")
	ui.AddWidget(e.status)
	e.help = widgets.NewLabel(0, 0, 0, helpText)
	e.help.Style = widgets.DefaultTheme.Muted
	ui.AddWidget(e.help)

	e.drawer = widgets.NewDrawer(e.source.Button.Tooltip)
	e.drawer.Body.Style = widgets.DefaultTheme.Text
	e.drawer.Body.TabWidth = cfg.TabWidth
	e.drawer.Body.Styler = e.hl.Styler()
	e.drawer.Body.OnChange = func(text string) { e.source.Code.Set(text) }
	e.drawer.OnSave = e.applySource
	e.drawer.OnClose = e.source.Close
	ui.AddWidget(e.drawer)

	e.bindSource()
	e.UIApp.OnKey(e.handleShortcut)
	e.UIApp.OnResize(e.layout)
	ui.Focus(e.content)
	e.setStatus("Ready")
	return e
}

// bindSource mirrors the drawer state onto the widgets.
func (e *Editor) bindSource() {
	e.source.DrawerOpen.OnChange(func(_, open bool) {
		if open {
			e.hl.Update(e.source.Code.Get())
			e.drawer.Open(e.w, e.h)
			e.pendingFocus = e.drawer
			e.setStatus("Source: " + e.hl.Language())
			return
		}
		e.drawer.Close()
		e.pendingFocus = e.content
	})
	e.source.Code.OnChange(func(_, code string) {
		e.hl.Update(code)
		if e.drawer.Body.Text() != code {
			e.drawer.Body.SetText(code)
		}
	})
}

// HTML implements uistate.HTMLEditor.
func (e *Editor) HTML() string { return e.content.Text() }

// SetHTML implements uistate.HTMLEditor.
func (e *Editor) SetHTML(html string) { e.content.SetText(html) }

// NotifyInput implements uistate.HTMLEditor.
func (e *Editor) NotifyInput() { e.markChanged("Source applied") }

// Source exposes the drawer state.
func (e *Editor) Source() *uistate.SourceCode { return e.source }

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *Editor) Resize(cols, rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UIApp.Resize(cols, rows)
}

func (e *Editor) Render() [][]core.Cell {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.UIApp.Render()
}

func (e *Editor) HandleKey(ev *tcell.EventKey) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UIApp.HandleKey(ev)
	e.flushFocus()
}

func (e *Editor) HandleMouse(ev *tcell.EventMouse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UIApp.HandleMouse(ev)
	e.flushFocus()
}

func (e *Editor) HandlePaste(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.UIApp.HandlePaste(data)
	e.flushFocus()
}

func (e *Editor) flushFocus() {
	if e.pendingFocus == nil {
		return
	}
	w := e.pendingFocus
	e.pendingFocus = nil
	e.UI().Focus(w)
}

func (e *Editor) layout(w, h int) {
	e.w, e.h = w, h
	bw, _ := e.toolbar.Size()
	e.header.SetPosition(1, 0)
	e.header.Resize(maxInt(w-bw-3, 0), 1)
	e.toolbar.SetPosition(maxInt(w-bw-1, 0), 0)
	e.content.SetPosition(1, 2)
	e.content.Resize(maxInt(w-2, 1), maxInt(h-5, 1))
	e.status.SetPosition(1, h-2)
	e.status.Resize(maxInt(w-2, 0), 1)
	e.help.SetPosition(1, h-1)
	e.help.Resize(maxInt(w-2, 0), 1)
	if e.drawer.IsOpen() {
		e.drawer.Place(w, h)
	}
}

func (e *Editor) handleShortcut(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyF2:
		if e.source.DrawerOpen.Get() {
			e.source.Close()
		} else {
			e.source.OpenAndCapture()
		}
		return true
	case tcell.KeyCtrlS:
		if e.drawer.IsOpen() {
			return false
		}
		e.saveDocument()
		return true
	case tcell.KeyCtrlQ:
		e.Stop()
		return true
	}
	return false
}

func (e *Editor) applySource() {
	if !e.source.Save() {
		e.setStatus("Nothing to apply: the source is empty")
	}
}

func (e *Editor) saveDocument() {
	if e.save == nil {
		e.setStatus("Saving is not available")
		return
	}
	if err := e.save(e.content.Text()); err != nil {
		logging.S().Errorf("RichText: save failed: %v", err)
		e.setStatus("Save failed: " + err.Error())
		return
	}
	e.dirty = false
	e.setStatus("Saved")
}

func (e *Editor) markChanged(msg string) {
	e.dirty = true
	e.setStatus(msg)
	if e.OnInput != nil {
		e.OnInput(e.content.Text())
	}
}

func (e *Editor) setStatus(msg string) {
	if e.dirty {
		msg += " · modified"
	}
	e.status.Text = msg
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
