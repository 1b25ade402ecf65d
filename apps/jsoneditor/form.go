// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/jsoneditor/form.go
// Summary: Form model of the nested JSON field editor.
// Usage: Widgets call SetValue/AddField/RemoveField/RenameField; every edit
// goes through tree.UpdateNestedValue and fires OnChange with the new root.

package jsoneditor

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/tree"
)

var (
	// ErrReadOnly is returned for any edit of a read-only form.
	ErrReadOnly = errors.New("jsoneditor: form is read-only")
	// ErrNotAllowed is returned when the field options disable an edit.
	ErrNotAllowed = errors.New("jsoneditor: operation not enabled for this field")
	// ErrFieldExists is returned when adding or renaming onto an existing path.
	ErrFieldExists = errors.New("jsoneditor: field already exists")
)

// Form holds the edited value of one field.
type Form struct {
	mu       sync.Mutex
	root     tree.Tree
	pristine tree.Tree
	opts     fieldtype.Options
	query    string

	// OnChange receives the root after every successful edit.
	OnChange func(root tree.Tree)
}

// NewForm creates a form over a copy of value. A nil value starts empty.
func NewForm(value tree.Tree, opts fieldtype.Options) *Form {
	f := &Form{opts: opts}
	f.load(value)
	return f
}

func (f *Form) load(value tree.Tree) {
	if value == nil {
		value = tree.Tree{}
	}
	f.root = tree.CloneTree(value)
	f.pristine = tree.CloneTree(value)
}

// Load replaces the value and makes it the new clean state.
func (f *Form) Load(value tree.Tree) {
	f.mu.Lock()
	f.load(value)
	f.mu.Unlock()
}

// Options returns the toggles the form was created with.
func (f *Form) Options() fieldtype.Options { return f.opts }

// Value returns a copy of the current root.
func (f *Form) Value() tree.Tree {
	f.mu.Lock()
	defer f.mu.Unlock()
	return tree.CloneTree(f.root)
}

// Get returns the value at path.
func (f *Form) Get(path string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return tree.Get(f.root, path)
}

// Dirty reports whether the value differs from the last loaded or saved state.
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !reflect.DeepEqual(tree.CloneTree(f.root), f.pristine)
}

// MarkSaved makes the current value the clean state.
func (f *Form) MarkSaved() {
	f.mu.Lock()
	f.pristine = tree.CloneTree(f.root)
	f.mu.Unlock()
}

// Reset discards every edit since the last load or save.
func (f *Form) Reset() {
	f.mu.Lock()
	f.root = tree.CloneTree(f.pristine)
	root := f.root
	f.mu.Unlock()
	f.notify(root)
}

// SetQuery sets the search filter. It is ignored when search is disabled.
func (f *Form) SetQuery(q string) {
	f.mu.Lock()
	f.query = q
	f.mu.Unlock()
}

// Query returns the active search filter.
func (f *Form) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.opts.EnableSearch {
		return ""
	}
	return f.query
}

// Rows returns the leaves shown by the form. With search enabled and a
// non-empty query, only leaves whose path or rendered value contains the
// query (case-insensitively) are kept.
func (f *Form) Rows() []tree.Leaf {
	q := strings.ToLower(strings.TrimSpace(f.Query()))
	f.mu.Lock()
	leaves := tree.Leaves(f.root)
	f.mu.Unlock()
	if q == "" {
		return leaves
	}
	out := leaves[:0]
	for _, leaf := range leaves {
		if strings.Contains(strings.ToLower(leaf.Path), q) ||
			strings.Contains(strings.ToLower(FormatValue(leaf.Value)), q) {
			out = append(out, leaf)
		}
	}
	return out
}

// SetValue stores v at path. Setting a path that does not exist yet counts
// as creating a field.
func (f *Form) SetValue(path string, v interface{}) error {
	return f.edit(func(root tree.Tree) error {
		if !tree.Has(root, path) && !f.opts.AllowCreateNewFields {
			return fmt.Errorf("create %q: %w", path, ErrNotAllowed)
		}
		return tree.UpdateNestedValue(root, path, v)
	})
}

// AddField creates a field from user input. raw is parsed as JSON and
// falls back to a plain string.
func (f *Form) AddField(path, raw string) error {
	return f.edit(func(root tree.Tree) error {
		if !f.opts.AllowCreateNewFields {
			return fmt.Errorf("add %q: %w", path, ErrNotAllowed)
		}
		if tree.Has(root, path) {
			return fmt.Errorf("add %q: %w", path, ErrFieldExists)
		}
		return tree.UpdateNestedValue(root, path, ParseValue(raw))
	})
}

// RemoveField deletes the field at path.
func (f *Form) RemoveField(path string) error {
	return f.edit(func(root tree.Tree) error {
		if !f.opts.AllowRemoveFields {
			return fmt.Errorf("remove %q: %w", path, ErrNotAllowed)
		}
		if _, err := tree.SplitPath(path); err != nil {
			return &tree.PathError{Op: "remove", Path: path, Err: err}
		}
		if !tree.Has(root, path) {
			return &tree.PathError{Op: "remove", Path: path, Err: tree.ErrNotFound}
		}
		return tree.UpdateNestedValue(root, path, tree.Absent)
	})
}

// RenameField moves a field. It needs both create and remove permissions.
func (f *Form) RenameField(from, to string) error {
	return f.edit(func(root tree.Tree) error {
		if !f.opts.AllowCreateNewFields || !f.opts.AllowRemoveFields {
			return fmt.Errorf("rename %q: %w", from, ErrNotAllowed)
		}
		if from != to && tree.Has(root, to) {
			return fmt.Errorf("rename %q to %q: %w", from, to, ErrFieldExists)
		}
		return tree.Rename(root, from, to)
	})
}

// edit runs fn on a scratch copy and commits it only on success, so a
// failed edit leaves the form untouched.
func (f *Form) edit(fn func(root tree.Tree) error) error {
	if f.opts.ReadOnly {
		return ErrReadOnly
	}
	f.mu.Lock()
	scratch := tree.CloneTree(f.root)
	if err := fn(scratch); err != nil {
		f.mu.Unlock()
		return err
	}
	f.root = scratch
	f.mu.Unlock()
	f.notify(scratch)
	return nil
}

func (f *Form) notify(root tree.Tree) {
	if f.OnChange != nil {
		f.OnChange(tree.CloneTree(root))
	}
}

// ParseValue turns user input into a field value: valid JSON decodes to its
// value (objects become Trees), anything else is kept as a string.
func ParseValue(raw string) interface{} {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	decoded, err := document.DecodeJSON([]byte(trimmed))
	if err != nil {
		return raw
	}
	return tree.Clone(decoded)
}

// FormatValue renders a leaf value for display.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case float64:
		return formatNumber(val)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}

func humanLabel(value string) string {
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.ReplaceAll(value, ".", " › ")
	words := strings.Fields(value)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
