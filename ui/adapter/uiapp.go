// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/adapter/uiapp.go
// Summary: Adapts a UIManager to the core.App interface run by the devshell.

package adapter

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/ui/core"
)

var _ core.App = (*UIApp)(nil)
var _ core.PasteHandler = (*UIApp)(nil)

// UIApp adapts a UIManager to the core.App interface.
type UIApp struct {
	title    string
	ui       *core.UIManager
	stopOnce sync.Once
	stopCh   chan struct{}
	onResize func(w, h int)
	onKey    func(ev *tcell.EventKey) bool
}

func NewUIApp(title string, ui *core.UIManager) *UIApp {
	if ui == nil {
		ui = core.NewUIManager()
	}
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

func (a *UIApp) Run() error { <-a.stopCh; return nil }

func (a *UIApp) Stop() { a.stopOnce.Do(func() { close(a.stopCh) }) }

// Done is closed once Stop has been called.
func (a *UIApp) Done() <-chan struct{} { return a.stopCh }

func (a *UIApp) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	if a.onResize != nil {
		a.onResize(cols, rows)
	}
}

func (a *UIApp) Render() [][]core.Cell { return a.ui.Render() }

func (a *UIApp) GetTitle() string {
	if a.title == "" {
		return "nestedjson"
	}
	return a.title
}

// HandleKey offers ev to the app-level key handler before the widgets.
func (a *UIApp) HandleKey(ev *tcell.EventKey) {
	if a.onKey != nil && a.onKey(ev) {
		a.ui.RequestRefresh()
		return
	}
	a.ui.HandleKey(ev)
}

func (a *UIApp) HandleMouse(ev *tcell.EventMouse) { a.ui.HandleMouse(ev) }

// HandlePaste types data into the focused widget. Newlines arrive as Enter.
func (a *UIApp) HandlePaste(data []byte) {
	for _, r := range strings.ReplaceAll(string(data), "\r\n", "\n") {
		if r == '\n' || r == '\r' {
			a.ui.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
			continue
		}
		a.ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (a *UIApp) SetRefreshNotifier(ch chan<- bool) { a.ui.SetRefreshNotifier(ch) }

// OnResize registers the layout callback run after every resize.
func (a *UIApp) OnResize(fn func(w, h int)) { a.onResize = fn }

// OnKey registers a handler that sees keys before the focused widget.
// Returning true consumes the key.
func (a *UIApp) OnKey(fn func(ev *tcell.EventKey) bool) { a.onKey = fn }

// UI exposes the manager for composition.
func (a *UIApp) UI() *core.UIManager { return a.ui }
