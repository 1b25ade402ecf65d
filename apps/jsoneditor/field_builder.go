// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/jsoneditor/field_builder.go
// Summary: Encapsulates widget construction for form rows.
// Usage: Used by Editor to build one widget per leaf of the edited value.

package jsoneditor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/tree"
	"github.com/framegrace/nestedjson/ui/core"
	"github.com/framegrace/nestedjson/ui/widgets"
	"github.com/framegrace/nestedjson/uistate"
)

type fieldKind int

const (
	fieldString fieldKind = iota
	fieldNumber
	fieldBool
	fieldNull
	fieldJSON
)

func (k fieldKind) String() string {
	switch k {
	case fieldNumber:
		return "number"
	case fieldBool:
		return "bool"
	case fieldNull:
		return "null"
	case fieldJSON:
		return "json"
	default:
		return "string"
	}
}

// fieldBinding ties a widget to the path it edits.
type fieldBinding struct {
	path   string
	kind   fieldKind
	label  *widgets.Label
	widget core.Widget
	focus  *uistate.FieldFocus
	height int
	err    error
}

// labelStyle is Error while the last edit failed, Accent while the row has
// focus and Muted otherwise.
func (b *fieldBinding) labelStyle() tcell.Style {
	switch {
	case b.err != nil:
		return widgets.DefaultTheme.Error
	case b.focus != nil && b.focus.IsFocused():
		return widgets.DefaultTheme.Accent
	default:
		return widgets.DefaultTheme.Muted
	}
}

type focusNotifier interface {
	OnFocusChange(fn func(focused bool))
}

// FieldBuilder encapsulates widget construction for form rows.
type FieldBuilder struct {
	form    *Form
	onError func(path string, err error)
}

// NewFieldBuilder creates a builder writing into form. onError receives
// edits the form rejected or input that could not be parsed.
func NewFieldBuilder(form *Form, onError func(path string, err error)) *FieldBuilder {
	if onError == nil {
		onError = func(string, error) {}
	}
	return &FieldBuilder{form: form, onError: onError}
}

// Build creates the widget for one leaf.
func (fb *FieldBuilder) Build(leaf tree.Leaf) *fieldBinding {
	var b *fieldBinding
	switch v := leaf.Value.(type) {
	case bool:
		b = fb.buildCheckbox(leaf.Path, v)
	case float64, int, int64, uint64, json.Number:
		b = fb.buildNumberInput(leaf.Path, v)
	case string:
		b = fb.buildStringInput(leaf.Path, v)
	case nil:
		b = fb.buildNullInput(leaf.Path)
	default:
		b = fb.buildTextArea(leaf.Path, v)
	}
	b.label = widgets.NewLabel(0, 0, 0, humanLabel(leaf.Path))
	b.label.Style = widgets.DefaultTheme.Muted

	b.focus = uistate.NewFieldFocus(false)
	if n, ok := b.widget.(focusNotifier); ok {
		n.OnFocusChange(func(focused bool) {
			if focused {
				b.focus.OnFocus()
			} else {
				b.focus.OnBlur()
			}
		})
	}
	b.focus.Focused().OnChange(func(_, _ bool) {
		b.label.Style = b.labelStyle()
	})
	return b
}

func (fb *FieldBuilder) apply(b *fieldBinding, value interface{}) {
	b.err = fb.form.SetValue(b.path, value)
	if b.err != nil {
		fb.onError(b.path, b.err)
	}
}

func (fb *FieldBuilder) reject(b *fieldBinding, err error) {
	b.err = err
	fb.onError(b.path, err)
}

func (fb *FieldBuilder) readOnly() bool { return fb.form.Options().ReadOnly }

func (fb *FieldBuilder) buildCheckbox(path string, value bool) *fieldBinding {
	checkbox := widgets.NewCheckbox(0, 0, "")
	checkbox.Checked = value
	checkbox.ReadOnly = fb.readOnly()
	b := &fieldBinding{path: path, kind: fieldBool, widget: checkbox, height: 1}
	checkbox.OnChange = func(checked bool) {
		fb.apply(b, checked)
	}
	return b
}

// buildNumberInput edits a number leaf. Edits keep the Go type of value so
// integers and decoded JSON numbers are stored without passing through float64.
func (fb *FieldBuilder) buildNumberInput(path string, value interface{}) *fieldBinding {
	input := widgets.NewInput(0, 0, 0)
	input.SetText(FormatValue(value))
	input.ReadOnly = fb.readOnly()
	b := &fieldBinding{path: path, kind: fieldNumber, widget: input, height: 1}
	input.OnChange = func(text string) {
		parsed, err := parseNumber(text, value)
		if err != nil {
			fb.reject(b, err)
			return
		}
		fb.apply(b, parsed)
	}
	return b
}

// parseNumber reads text as a number of the same kind as like.
func parseNumber(text string, like interface{}) (interface{}, error) {
	trimmed := strings.TrimSpace(text)
	switch like.(type) {
	case float64:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("%q is not a number", text)
		}
		return f, nil
	case int:
		n, err := strconv.ParseInt(trimmed, 10, strconv.IntSize)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", text)
		}
		return int(n), nil
	case int64:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", text)
		}
		return n, nil
	case uint64:
		n, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an unsigned integer", text)
		}
		return n, nil
	}
	if !isJSONNumber(trimmed) {
		return nil, fmt.Errorf("%q is not a number", text)
	}
	return json.Number(trimmed), nil
}

// isJSONNumber reports whether s is a number literal in JSON grammar.
func isJSONNumber(s string) bool {
	v, err := document.DecodeJSON([]byte(s))
	if err != nil {
		return false
	}
	_, ok := v.(json.Number)
	return ok
}

func (fb *FieldBuilder) buildStringInput(path, value string) *fieldBinding {
	input := widgets.NewInput(0, 0, 0)
	input.SetText(value)
	input.ReadOnly = fb.readOnly()
	b := &fieldBinding{path: path, kind: fieldString, widget: input, height: 1}
	input.OnChange = func(text string) {
		fb.apply(b, text)
	}
	return b
}

// buildNullInput edits a null leaf; typed input is parsed like AddField input.
func (fb *FieldBuilder) buildNullInput(path string) *fieldBinding {
	input := widgets.NewInput(0, 0, 0)
	input.Placeholder = "null"
	input.ReadOnly = fb.readOnly()
	b := &fieldBinding{path: path, kind: fieldNull, widget: input, height: 1}
	input.OnChange = func(text string) {
		if strings.TrimSpace(text) == "" {
			fb.apply(b, nil)
			return
		}
		fb.apply(b, ParseValue(text))
	}
	return b
}

func (fb *FieldBuilder) buildTextArea(path string, value interface{}) *fieldBinding {
	textarea := widgets.NewTextArea(0, 0, 0, 0)
	textarea.SetText(formatJSON(value))
	textarea.ReadOnly = fb.readOnly()
	b := &fieldBinding{path: path, kind: fieldJSON, widget: textarea, height: 4}
	textarea.OnChange = func(text string) {
		decoded, err := document.DecodeJSON([]byte(text))
		if err != nil {
			fb.reject(b, fmt.Errorf("invalid JSON: %w", err))
			return
		}
		fb.apply(b, tree.Clone(decoded))
	}
	return b
}

func formatJSON(value interface{}) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

func formatNumber(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
