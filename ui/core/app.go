// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/core/app.go
// Summary: Contract between full-screen apps and the shell that hosts them.

package core

import "github.com/gdamore/tcell/v2"

// App is a full-screen program rendered into a cell buffer.
type App interface {
	// Run blocks until Stop is called or the app finishes on its own.
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
	GetTitle() string
}

// MouseHandler is implemented by apps that accept mouse input.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

// PasteHandler is implemented by apps that accept bracketed paste.
type PasteHandler interface {
	HandlePaste(data []byte)
}
