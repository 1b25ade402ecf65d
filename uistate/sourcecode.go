// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uistate/sourcecode.go
// Summary: State of the "view source" drawer of the rich-text editor.

package uistate

// HTMLEditor is the editing surface whose serialized content the drawer edits.
type HTMLEditor interface {
	HTML() string
	SetHTML(html string)
	// NotifyInput tells the editor its content changed so it updates its model.
	NotifyInput()
}

// ToolbarButton describes a toolbar action.
type ToolbarButton struct {
	Icon     string
	Tooltip  string
	OnAction func()
}

// SourceCode holds the drawer flag and the buffered source.
type SourceCode struct {
	DrawerOpen *Value[bool]
	Code       *Value[string]
	Button     ToolbarButton

	editor HTMLEditor
}

// NewSourceCode creates drawer state bound to editor. editor may be nil
// until the editing surface is mounted; see Attach.
func NewSourceCode(editor HTMLEditor) *SourceCode {
	s := &SourceCode{
		DrawerOpen: NewValue(false),
		Code:       NewValue(""),
		editor:     editor,
	}
	s.Button = ToolbarButton{
		Icon:     "sourcecode",
		Tooltip:  "Source Code",
		OnAction: s.OpenAndCapture,
	}
	return s
}

// Attach binds or replaces the editing surface.
func (s *SourceCode) Attach(editor HTMLEditor) { s.editor = editor }

// OpenAndCapture copies the editor's content into the buffer and opens the
// drawer. Without an editor the buffer is cleared.
func (s *SourceCode) OpenAndCapture() {
	code := ""
	if s.editor != nil {
		code = s.editor.HTML()
	}
	s.Code.Set(code)
	s.DrawerOpen.Set(true)
}

// Close closes the drawer without writing back.
func (s *SourceCode) Close() {
	s.DrawerOpen.Set(false)
}

// Save writes the buffer back into the editor, closes the drawer and signals
// the content change. Nothing happens when no editor is attached or the
// buffer is empty; the return value reports whether the save happened.
func (s *SourceCode) Save() bool {
	code := s.Code.Get()
	if s.editor == nil || code == "" {
		return false
	}
	s.editor.SetHTML(code)
	s.Close()
	s.editor.NotifyInput()
	return true
}
