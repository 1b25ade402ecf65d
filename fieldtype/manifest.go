// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fieldtype/manifest.go
// Summary: Field interface declaration handed to the host admin panel.
// Usage: The host lists manifests to offer editors for a field type and
// renders each OptionSpec as a setting of the field.

package fieldtype

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Value types understood by the host.
const (
	TypeJSON    = "json"
	TypeBoolean = "boolean"
)

// OptionMeta carries layout hints for an option in the host's settings form.
type OptionMeta struct {
	Width     string `json:"width"`
	Interface string `json:"interface"`
}

// OptionSpec declares one configurable option of a field interface.
type OptionSpec struct {
	Field    string      `json:"field"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Required bool        `json:"required"`
	Default  interface{} `json:"default"`
	Meta     OptionMeta  `json:"meta"`
}

// Manifest describes a field interface to the host.
type Manifest struct {
	// ID is the unique identifier (e.g., "nested-json-field-editor").
	ID string `json:"id"`

	// Name is the human-readable name shown in the host.
	Name string `json:"name"`

	// Icon is a host icon name.
	Icon string `json:"icon"`

	// Description is a one-line explanation of the interface.
	Description string `json:"description"`

	// Options lists the settings the host shows for fields using this interface.
	Options []OptionSpec `json:"options"`

	// Types are the value types the interface can edit.
	Types []string `json:"types"`

	// Renders names the built-in interface that draws this declaration.
	// Empty for built-ins themselves.
	Renders string `json:"renders,omitempty"`
}

// NestedJSON is the manifest of the nested JSON field editor.
var NestedJSON = Manifest{
	ID:          "nested-json-field-editor",
	Name:        "Nested JSON field Editor",
	Icon:        "account_tree",
	Description: "This field allows you to store and edit nested JSON data in a structured form.",
	Options: []OptionSpec{
		booleanOption(OptionAllowCreate, "Allow create new fields", false),
		booleanOption(OptionAllowRemove, "Allow remove fields", false),
		booleanOption(OptionEnableSearch, "Enable search", true),
		booleanOption(OptionReadOnly, "Read Only", false),
	},
	Types: []string{TypeJSON},
}

func booleanOption(field, name string, def bool) OptionSpec {
	return OptionSpec{
		Field:    field,
		Name:     name,
		Type:     TypeBoolean,
		Required: true,
		Default:  def,
		Meta: OptionMeta{
			Width:     "full",
			Interface: TypeBoolean,
		},
	}
}

// SupportsType reports whether the interface edits values of type t.
func (m *Manifest) SupportsType(t string) bool {
	for _, candidate := range m.Types {
		if candidate == t {
			return true
		}
	}
	return false
}

// Option returns the spec for the named option.
func (m *Manifest) Option(field string) (OptionSpec, bool) {
	for _, opt := range m.Options {
		if opt.Field == field {
			return opt, true
		}
	}
	return OptionSpec{}, false
}

// Validate checks the required fields of the manifest.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("manifest missing required field: id")
	}
	if m.Name == "" {
		return fmt.Errorf("manifest missing required field: name")
	}
	if len(m.Types) == 0 {
		return fmt.Errorf("manifest %q declares no types", m.ID)
	}
	seen := make(map[string]bool, len(m.Options))
	for _, opt := range m.Options {
		if opt.Field == "" {
			return fmt.Errorf("manifest %q has an option without a field name", m.ID)
		}
		if seen[opt.Field] {
			return fmt.Errorf("manifest %q declares option %q twice", m.ID, opt.Field)
		}
		seen[opt.Field] = true
	}
	return nil
}

// LoadManifest reads and validates a manifest.json file from dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
