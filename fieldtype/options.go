// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: fieldtype/options.go
// Summary: Boolean toggles passed from the host to the form editor.

package fieldtype

import (
	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/internal/logging"
)

// Option field names as stored by the host.
const (
	OptionAllowCreate  = "allow_create_new_fields"
	OptionAllowRemove  = "allow_remove_fields"
	OptionEnableSearch = "enable_search"
	OptionReadOnly     = "readonly"
)

// Options are the per-field toggles of the nested JSON editor. They are
// passed to the form unmodified.
type Options struct {
	AllowCreateNewFields bool
	AllowRemoveFields    bool
	EnableSearch         bool
	ReadOnly             bool
}

// DefaultOptions returns the manifest defaults.
func DefaultOptions() Options {
	return OptionsFromValues(nil)
}

// OptionsFromValues reads options from host-provided values. Missing keys
// take the manifest default. Strings such as "true" and numbers are
// converted with a warning; values that do not read as a bool fall back to
// the default, also with a warning.
func OptionsFromValues(values map[string]interface{}) Options {
	get := func(field string) bool {
		def := false
		if spec, ok := NestedJSON.Option(field); ok {
			def, _ = spec.Default.(bool)
		}
		raw, ok := values[field]
		if !ok {
			return def
		}
		if b, ok := raw.(bool); ok {
			return b
		}
		// Parse with both defaults to tell a conversion from a rejection.
		parsed := config.ParseBool(raw, false)
		if parsed != config.ParseBool(raw, true) {
			logging.S().Warnf("Field: option %s has non-bool value %#v, using default %t", field, raw, def)
			return def
		}
		logging.S().Warnf("Field: option %s has non-bool value %#v, read as %t", field, raw, parsed)
		return parsed
	}
	return Options{
		AllowCreateNewFields: get(OptionAllowCreate),
		AllowRemoveFields:    get(OptionAllowRemove),
		EnableSearch:         get(OptionEnableSearch),
		ReadOnly:             get(OptionReadOnly),
	}
}

// OptionsFromConfig reads the field section of the editor configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return OptionsFromValues(cfg.Section(config.SectionField))
}

// Values returns the options keyed by their host field names.
func (o Options) Values() map[string]interface{} {
	return map[string]interface{}{
		OptionAllowCreate:  o.AllowCreateNewFields,
		OptionAllowRemove:  o.AllowRemoveFields,
		OptionEnableSearch: o.EnableSearch,
		OptionReadOnly:     o.ReadOnly,
	}
}
