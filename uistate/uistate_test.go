// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package uistate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type focusCounter struct{ n int }

func (f *focusCounter) Focus() { f.n++ }

type fakeEditor struct {
	html   string
	inputs int
}

func (e *fakeEditor) HTML() string     { return e.html }
func (e *fakeEditor) SetHTML(s string) { e.html = s }
func (e *fakeEditor) NotifyInput()     { e.inputs++ }

func TestValueNotifiesOnChangeOnly(t *testing.T) {
	v := NewValue(1)
	var seen [][2]int
	cancel := v.OnChange(func(old, new int) { seen = append(seen, [2]int{old, new}) })

	v.Set(1)
	v.Set(2)
	v.Set(3)
	cancel()
	v.Set(4)

	assert.Equal(t, [][2]int{{1, 2}, {2, 3}}, seen)
	assert.Equal(t, 4, v.Get())
	v.OnChange(nil)()
}

func TestValueListenerMayCancelItself(t *testing.T) {
	v := NewValue("")
	calls := 0
	var cancel func()
	cancel = v.OnChange(func(_, _ string) {
		calls++
		cancel()
	})
	other := 0
	v.OnChange(func(_, _ string) { other++ })

	v.Set("a")
	v.Set("b")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestFieldFocus(t *testing.T) {
	f := NewFieldFocus(true)
	el := &focusCounter{}
	f.SetFieldRef(el)
	assert.Equal(t, 1, el.n, "active field focuses its element on attach")

	f.OnFocus()
	assert.True(t, f.IsFocused())
	f.OnBlur()
	assert.False(t, f.IsFocused())

	f.FocusField()
	assert.Equal(t, 2, el.n)

	f.SetActive(false)
	f.SetActive(true)
	f.SetActive(true)
	assert.Equal(t, 3, el.n, "only the inactive->active transition focuses")
}

func TestFieldFocusWithoutElement(t *testing.T) {
	f := NewFieldFocus(false)
	f.FocusField()
	f.SetActive(true)
	f.SetFieldRef(nil)
	assert.True(t, f.Active())

	el := &focusCounter{}
	f.SetFieldRef(el)
	assert.Equal(t, 1, el.n)
}

func TestSourceCodeOpenAndSave(t *testing.T) {
	editor := &fakeEditor{html: "<p>hi</p>"}
	s := NewSourceCode(editor)
	assert.Equal(t, "sourcecode", s.Button.Icon)
	assert.Equal(t, "Source Code", s.Button.Tooltip)

	s.Button.OnAction()
	assert.True(t, s.DrawerOpen.Get())
	assert.Equal(t, "<p>hi</p>", s.Code.Get())

	s.Code.Set("<p>bye</p>")
	assert.True(t, s.Save())
	assert.False(t, s.DrawerOpen.Get())
	assert.Equal(t, "<p>bye</p>", editor.html)
	assert.Equal(t, 1, editor.inputs)
}

func TestSourceCodeSaveNeedsEditorAndBuffer(t *testing.T) {
	s := NewSourceCode(nil)
	s.OpenAndCapture()
	assert.Equal(t, "", s.Code.Get())
	s.Code.Set("<b>x</b>")
	assert.False(t, s.Save(), "no editor attached")
	assert.True(t, s.DrawerOpen.Get())

	editor := &fakeEditor{html: "<i>keep</i>"}
	s.Attach(editor)
	s.Code.Set("")
	assert.False(t, s.Save(), "empty buffer is not written back")
	assert.Equal(t, "<i>keep</i>", editor.html)
	assert.Zero(t, editor.inputs)

	s.Close()
	assert.False(t, s.DrawerOpen.Get())
}
