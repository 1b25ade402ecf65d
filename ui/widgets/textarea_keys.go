// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/textarea_keys.go
// Summary: Keyboard editing, selection and clipboard for TextArea.

package widgets

import (
	"github.com/gdamore/tcell/v2"
)

// HandleKey implements keyboard editing, selection, and clipboard operations.
// Keys the area does not use (Ctrl+S, Esc without a selection, function
// keys) are left to the caller.
func (t *TextArea) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEsc {
		if t.hasSelection() {
			t.clearSelection()
			t.invalidateViewport()
			return true
		}
		return false
	}

	prevCX, prevCY := t.CaretX, t.CaretY

	switch clipboardAction(ev) {
	case 'a':
		last := len(t.Lines) - 1
		t.selActive = true
		t.selSX, t.selSY = 0, 0
		t.selEX, t.selEY = len([]rune(t.Lines[last])), last
		t.CaretX, t.CaretY = t.selEX, t.selEY
		t.ensureVisible()
		t.invalidateViewport()
		return true
	case 'c':
		t.clip = t.getSelectedText()
		return true
	case 'x':
		t.clip = t.getSelectedText()
		if t.ReadOnly || !t.hasSelection() {
			return true
		}
		t.deleteSelection()
		t.clampCaret()
		t.ensureVisible()
		t.invalidateViewport()
		t.changed()
		return true
	case 'v':
		if t.clip == "" || t.ReadOnly {
			return true
		}
		t.deleteSelection()
		t.insertText(t.clip)
		t.changed()
		return true
	}
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		return false
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		t.CaretX--
	case tcell.KeyRight:
		t.CaretX++
	case tcell.KeyUp:
		t.CaretY--
	case tcell.KeyDown:
		t.CaretY++
	case tcell.KeyHome:
		t.CaretX = 0
	case tcell.KeyEnd:
		t.CaretX = 1 << 30
	case tcell.KeyPgUp:
		t.CaretY -= maxInt(t.Rect.H, 1)
	case tcell.KeyPgDn:
		t.CaretY += maxInt(t.Rect.H, 1)
	case tcell.KeyEnter:
		if t.ReadOnly {
			return false
		}
		t.deleteSelection()
		t.insertText("\n")
		t.changed()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.ReadOnly {
			return false
		}
		if t.hasSelection() {
			t.deleteSelection()
		} else if t.CaretX > 0 {
			t.clampCaret()
			line := []rune(t.Lines[t.CaretY])
			t.Lines[t.CaretY] = string(append(line[:t.CaretX-1], line[t.CaretX:]...))
			t.CaretX--
		} else if t.CaretY > 0 {
			prev := t.Lines[t.CaretY-1]
			t.CaretX = len([]rune(prev))
			t.Lines[t.CaretY-1] = prev + t.Lines[t.CaretY]
			t.Lines = append(t.Lines[:t.CaretY], t.Lines[t.CaretY+1:]...)
			t.CaretY--
		} else {
			return false
		}
		t.clampCaret()
		t.ensureVisible()
		t.invalidateViewport()
		t.changed()
		return true
	case tcell.KeyDelete:
		if t.ReadOnly {
			return false
		}
		t.clampCaret()
		line := []rune(t.Lines[t.CaretY])
		switch {
		case t.hasSelection():
			t.deleteSelection()
		case t.CaretX < len(line):
			t.Lines[t.CaretY] = string(append(line[:t.CaretX], line[t.CaretX+1:]...))
		case t.CaretY+1 < len(t.Lines):
			t.Lines[t.CaretY] += t.Lines[t.CaretY+1]
			t.Lines = append(t.Lines[:t.CaretY+1], t.Lines[t.CaretY+2:]...)
		default:
			return false
		}
		t.clampCaret()
		t.ensureVisible()
		t.invalidateViewport()
		t.changed()
		return true
	case tcell.KeyRune:
		if t.ReadOnly {
			return false
		}
		t.deleteSelection()
		t.insertText(string(ev.Rune()))
		t.changed()
		return true
	default:
		return false
	}

	// movement keys extend or drop the selection
	if ev.Modifiers()&tcell.ModShift != 0 {
		if !t.selActive {
			t.selActive = true
			t.selSX, t.selSY = prevCX, prevCY
		}
		t.clampCaret()
		t.selEX, t.selEY = t.CaretX, t.CaretY
	} else {
		t.clearSelection()
	}
	t.clampCaret()
	t.ensureVisible()
	t.invalidateViewport()
	return true
}

// clipboardAction maps Ctrl+A/C/X/V to 'a', 'c', 'x', 'v', or returns 0.
func clipboardAction(ev *tcell.EventKey) rune {
	switch ev.Key() {
	case tcell.KeyCtrlA:
		return 'a'
	case tcell.KeyCtrlC:
		return 'c'
	case tcell.KeyCtrlX:
		return 'x'
	case tcell.KeyCtrlV:
		return 'v'
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch r := ev.Rune(); r {
			case 'a', 'c', 'x', 'v':
				return r
			}
		}
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
