// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the editor configuration file.

package config

// Section names used by the editor.
const (
	SectionField  = "field"
	SectionEditor = "editor"
	SectionStore  = "store"
	SectionWatch  = "watch"
)

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(SectionField, Section{
		"allow_create_new_fields": false,
		"allow_remove_fields":     false,
		"enable_search":           true,
		"readonly":                false,
	})
	cfg.RegisterDefaults(SectionEditor, Section{
		"highlight_style": "catppuccin-mocha",
		"tab_width":       2,
		"log_file":        "",
	})
	cfg.RegisterDefaults(SectionStore, Section{
		"path": "",
	})
	cfg.RegisterDefaults(SectionWatch, Section{
		"enabled":     true,
		"debounce_ms": 200,
	})
}
