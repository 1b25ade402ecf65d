// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: uistate/focus.go
// Summary: Focus bookkeeping for a single form field.

package uistate

// Focuser is anything that can take input focus.
type Focuser interface {
	Focus()
}

// FieldFocus tracks whether a field has focus and focuses its element when
// the field becomes the active one.
type FieldFocus struct {
	focused *Value[bool]
	active  bool
	el      Focuser
}

// NewFieldFocus creates focus state for a field that starts active or not.
func NewFieldFocus(active bool) *FieldFocus {
	return &FieldFocus{
		focused: NewValue(false),
		active:  active,
	}
}

// Focused exposes the observable focus flag.
func (f *FieldFocus) Focused() *Value[bool] { return f.focused }

// IsFocused reports whether the field currently has focus.
func (f *FieldFocus) IsFocused() bool { return f.focused.Get() }

// SetFieldRef attaches the field's element. An active field focuses it
// immediately. Passing nil detaches the element.
func (f *FieldFocus) SetFieldRef(el Focuser) {
	f.el = el
	if f.active && el != nil {
		el.Focus()
	}
}

// OnFocus records that the element gained focus.
func (f *FieldFocus) OnFocus() { f.focused.Set(true) }

// OnBlur records that the element lost focus.
func (f *FieldFocus) OnBlur() { f.focused.Set(false) }

// FocusField focuses the attached element, if any.
func (f *FieldFocus) FocusField() {
	if f.el != nil {
		f.el.Focus()
	}
}

// SetActive updates the active flag. Becoming active focuses the element.
func (f *FieldFocus) SetActive(active bool) {
	if f.active == active {
		return
	}
	f.active = active
	if active && f.el != nil {
		f.el.Focus()
	}
}

// Active reports the active flag.
func (f *FieldFocus) Active() bool { return f.active }
