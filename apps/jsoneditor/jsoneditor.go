// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/jsoneditor/jsoneditor.go
// Summary: Terminal form editor for one nested JSON field value.
// Usage: cmd/nestedjson runs it through the devshell; the registry creates
// it as the nested-json-field-editor interface.

package jsoneditor

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/registry"
	"github.com/framegrace/nestedjson/tree"
	"github.com/framegrace/nestedjson/ui/adapter"
	"github.com/framegrace/nestedjson/ui/core"
	"github.com/framegrace/nestedjson/ui/widgets"
)

// Compile-time interface checks.
var _ core.App = (*Editor)(nil)
var _ registry.Field = (*Editor)(nil)

// SaveFunc persists the edited value.
type SaveFunc func(value tree.Tree) error

type promptMode int

const (
	promptNone promptMode = iota
	promptAdd
	promptRename
)

const helpText = "Tab next · Ctrl+S save · Ctrl+N add · Ctrl+D remove · Ctrl+R rename · Ctrl+F search · Ctrl+Z revert · Ctrl+Q quit"

// Editor is the form view over a Form.
type Editor struct {
	*adapter.UIApp
	mu      sync.Mutex
	form    *Form
	builder *FieldBuilder
	save    SaveFunc

	header      *widgets.Label
	search      *widgets.Input
	list        *fieldList
	promptLabel *widgets.Label
	prompt      *widgets.Input
	status      *widgets.Label
	help        *widgets.Label

	mode         promptMode
	renameFrom   string
	pendingFocus core.Widget
	w, h         int
}

// New creates an editor over form. title is shown in the header; save may
// be nil, in which case Ctrl+S only reports that saving is unavailable.
func New(form *Form, title string, save SaveFunc) *Editor {
	ui := core.NewUIManager()
	ui.SetBackground(widgets.DefaultTheme.Surface)
	e := &Editor{
		UIApp: adapter.NewUIApp(title, ui),
		form:  form,
		save:  save,
	}
	e.builder = NewFieldBuilder(form, e.onFieldError)
	e.buildUI()
	form.OnChange = func(tree.Tree) { e.refreshStatus("") }
	e.UIApp.OnKey(e.handleShortcut)
	e.UIApp.OnResize(e.layout)
	return e
}

func (e *Editor) buildUI() {
	ui := e.UI()
	opts := e.form.Options()

	e.header = widgets.NewLabel(0, 0, 0, e.GetTitle())
	e.header.Style = widgets.DefaultTheme.Accent
	ui.AddWidget(e.header)

	e.search = widgets.NewInput(0, 0, 0)
	e.search.Placeholder = "Search fields (Ctrl+F)"
	e.search.OnChange = func(q string) {
		e.form.SetQuery(q)
		e.rebuildRows()
	}
	e.search.SetHidden(!opts.EnableSearch)
	e.search.SetFocusable(opts.EnableSearch)
	ui.AddWidget(e.search)

	e.list = newFieldList()
	ui.AddWidget(e.list)

	e.promptLabel = widgets.NewLabel(0, 0, 0, "")
	e.promptLabel.SetHidden(true)
	ui.AddWidget(e.promptLabel)
	e.prompt = widgets.NewInput(0, 0, 0)
	e.prompt.SetHidden(true)
	e.prompt.SetFocusable(false)
	ui.AddWidget(e.prompt)

	e.status = widgets.NewLabel(0, 0, 0, "")
	ui.AddWidget(e.status)
	e.help = widgets.NewLabel(0, 0, 0, helpText)
	e.help.Style = widgets.DefaultTheme.Muted
	ui.AddWidget(e.help)

	e.rebuildRows()
	if first := e.firstRow(); first != nil {
		ui.Focus(first)
	} else if opts.EnableSearch {
		ui.Focus(e.search)
	}
	e.refreshStatus("")
}

// Manifest implements registry.Field.
func (e *Editor) Manifest() *fieldtype.Manifest { return &fieldtype.NestedJSON }

// Value implements registry.Field.
func (e *Editor) Value() tree.Tree {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.Value()
}

// Form returns the underlying model.
func (e *Editor) Form() *Form { return e.form }

// SetSaveFunc replaces the save hook. Editors created through the registry
// start without one.
func (e *Editor) SetSaveFunc(save SaveFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.save = save
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

// flushFocus applies focus changes requested from inside widget callbacks,
// where the manager is locked.
func (e *Editor) flushFocus() {
	if e.pendingFocus == nil {
		return
	}
	w := e.pendingFocus
	e.pendingFocus = nil
	e.UI().Focus(w)
}

// Reload replaces the value after an external change. Unsaved edits win:
// a dirty form keeps its value and only reports the change.
func (e *Editor) Reload(value tree.Tree) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.form.Dirty() {
		logging.S().Infof("Editor: external change ignored, form has unsaved edits")
		e.setStatus("File changed on disk; save to overwrite or revert (Ctrl+Z) then reopen", true)
		e.UI().RequestRefresh()
		return
	}
	e.form.Load(value)
	e.rebuildRows()
	e.focusFirstRow()
	e.flushFocus()
	e.setStatus("Reloaded from disk", false)
	e.UI().RequestRefresh()
}

func (e *Editor) layout(w, h int) {
	e.w, e.h = w, h
	y := 0
	e.header.SetPosition(1, y)
	e.header.Resize(maxInt(w-2, 0), 1)
	y++
	if !e.search.Hidden() {
		e.search.SetPosition(1, y)
		e.search.Resize(maxInt(w-2, 0), 1)
		y++
	}
	y++ // gap
	footer := 2
	if e.mode != promptNone {
		footer++
	}
	listH := h - y - footer
	if listH < 1 {
		listH = 1
	}
	e.list.SetPosition(1, y)
	e.list.Resize(maxInt(w-2, 0), listH)
	y += listH
	if e.mode != promptNone {
		labelW := minInt(core.TextWidth(e.promptLabel.Text)+1, w/2)
		e.promptLabel.SetPosition(1, y)
		e.promptLabel.Resize(labelW, 1)
		e.prompt.SetPosition(1+labelW, y)
		e.prompt.Resize(maxInt(w-2-labelW, 1), 1)
		y++
	}
	e.status.SetPosition(1, y)
	e.status.Resize(maxInt(w-2, 0), 1)
	e.help.SetPosition(1, y+1)
	e.help.Resize(maxInt(w-2, 0), 1)
}

func (e *Editor) rebuildRows() {
	leaves := e.form.Rows()
	rows := make([]*fieldBinding, 0, len(leaves))
	for _, leaf := range leaves {
		row := e.builder.Build(leaf)
		row.focus.SetFieldRef(rowFocuser{e: e, w: row.widget})
		rows = append(rows, row)
	}
	e.list.empty = "No fields"
	if e.form.Query() != "" {
		e.list.empty = "No fields match the search"
	}
	e.list.setRows(rows)
	e.layout(e.w, e.h)
}

// rowFocuser routes a row's focus request through the editor, since
// widget callbacks run with the manager locked.
type rowFocuser struct {
	e *Editor
	w core.Widget
}

func (f rowFocuser) Focus() { f.e.pendingFocus = f.w }

func (e *Editor) firstRow() core.Widget {
	if len(e.list.rows) == 0 {
		return nil
	}
	return e.list.rows[0].widget
}

func (e *Editor) focusFirstRow() {
	if len(e.list.rows) > 0 {
		e.list.rows[0].focus.FocusField()
	} else if !e.search.Hidden() {
		e.pendingFocus = e.search
	}
}

func (e *Editor) focusPath(path string) {
	if row := e.list.bindingAt(path); row != nil {
		row.focus.FocusField()
		return
	}
	e.focusFirstRow()
}

// handleShortcut runs before the focused widget sees the key.
func (e *Editor) handleShortcut(ev *tcell.EventKey) bool {
	if e.mode != promptNone {
		switch ev.Key() {
		case tcell.KeyEsc:
			e.closePrompt()
			e.setStatus("Cancelled", false)
			return true
		case tcell.KeyEnter:
			e.submitPrompt()
			return true
		case tcell.KeyTab, tcell.KeyBacktab:
			return true
		}
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlS:
		e.saveForm()
		return true
	case tcell.KeyCtrlN:
		e.openPrompt(promptAdd, "New field (path=value):", "")
		return true
	case tcell.KeyCtrlD:
		e.removeFocused()
		return true
	case tcell.KeyCtrlR:
		if row := e.focusedRow(); row != nil {
			e.renameFrom = row.path
			e.openPrompt(promptRename, "Rename to:", row.path)
		}
		return true
	case tcell.KeyCtrlF:
		if !e.search.Hidden() {
			e.pendingFocus = e.search
		}
		return true
	case tcell.KeyCtrlZ:
		e.form.Reset()
		e.rebuildRows()
		e.focusFirstRow()
		e.setStatus("Reverted", false)
		return true
	case tcell.KeyCtrlQ:
		e.Stop()
		return true
	}
	return false
}

func (e *Editor) focusedRow() *fieldBinding {
	return e.list.bindingFor(e.UI().Focused())
}

func (e *Editor) saveForm() {
	if e.save == nil {
		e.setStatus("Saving is not available", true)
		return
	}
	if err := e.save(e.form.Value()); err != nil {
		logging.S().Errorf("Editor: save failed: %v", err)
		e.setStatus("Save failed: "+err.Error(), true)
		return
	}
	e.form.MarkSaved()
	e.setStatus("Saved", false)
}

func (e *Editor) removeFocused() {
	row := e.focusedRow()
	if row == nil {
		e.setStatus("Focus a field to remove it", true)
		return
	}
	if err := e.form.RemoveField(row.path); err != nil {
		e.setStatus(describe(err), true)
		return
	}
	e.rebuildRows()
	e.focusFirstRow()
	e.setStatus("Removed "+row.path, false)
}

func (e *Editor) openPrompt(mode promptMode, label, initial string) {
	if err := e.checkAllowed(mode); err != nil {
		e.setStatus(describe(err), true)
		return
	}
	e.mode = mode
	e.promptLabel.Text = label
	e.promptLabel.SetHidden(false)
	e.prompt.SetText(initial)
	e.prompt.SetHidden(false)
	e.prompt.SetFocusable(true)
	e.layout(e.w, e.h)
	e.pendingFocus = e.prompt
}

func (e *Editor) checkAllowed(mode promptMode) error {
	opts := e.form.Options()
	switch {
	case opts.ReadOnly:
		return ErrReadOnly
	case mode == promptAdd && !opts.AllowCreateNewFields:
		return ErrNotAllowed
	case mode == promptRename && (!opts.AllowCreateNewFields || !opts.AllowRemoveFields):
		return ErrNotAllowed
	}
	return nil
}

func (e *Editor) closePrompt() {
	e.mode = promptNone
	e.renameFrom = ""
	e.prompt.Blur()
	e.prompt.SetFocusable(false)
	e.prompt.SetHidden(true)
	e.promptLabel.SetHidden(true)
	e.layout(e.w, e.h)
	e.focusFirstRow()
}

func (e *Editor) submitPrompt() {
	text := strings.TrimSpace(e.prompt.Text())
	var (
		err    error
		target string
		msg    string
	)
	switch e.mode {
	case promptAdd:
		path, raw, _ := strings.Cut(text, "=")
		target = strings.TrimSpace(path)
		err = e.form.AddField(target, strings.TrimSpace(raw))
		msg = "Added " + target
	case promptRename:
		target = text
		err = e.form.RenameField(e.renameFrom, target)
		msg = fmt.Sprintf("Renamed %s to %s", e.renameFrom, target)
	}
	if err != nil {
		e.setStatus(describe(err), true)
		return
	}
	e.closePrompt()
	e.rebuildRows()
	e.focusPath(target)
	e.setStatus(msg, false)
}

func (e *Editor) onFieldError(path string, err error) {
	e.setStatus(fmt.Sprintf("%s: %s", path, describe(err)), true)
}

func (e *Editor) refreshStatus(msg string) {
	if msg == "" {
		msg = fmt.Sprintf("%d fields", len(e.list.rows))
	}
	e.setStatus(msg, false)
}

func (e *Editor) setStatus(msg string, isErr bool) {
	if e.form.Dirty() && !isErr {
		msg += " · modified"
	}
	e.status.Text = msg
	e.status.Style = widgets.DefaultTheme.Surface
	if isErr {
		e.status.Style = widgets.DefaultTheme.Error
	}
}

// describe turns form errors into status-line text.
func describe(err error) string {
	switch {
	case errors.Is(err, ErrReadOnly):
		return "This field is read-only"
	case errors.Is(err, ErrNotAllowed):
		return "Not allowed by the field options"
	case errors.Is(err, ErrFieldExists):
		return "A field with that path already exists"
	case errors.Is(err, tree.ErrInvalidPath):
		return "Invalid path: use dot-separated, non-empty keys"
	case errors.Is(err, tree.ErrNotFound):
		return "No such field"
	default:
		return err.Error()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
