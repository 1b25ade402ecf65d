// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/jsoneditor/register.go
// Summary: Registers the nested JSON field editor with the interface registry.

package jsoneditor

import (
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/registry"
	"github.com/framegrace/nestedjson/tree"
)

func init() {
	registry.RegisterBuiltInProvider(func(reg *registry.Registry) (*fieldtype.Manifest, registry.Factory) {
		return &fieldtype.NestedJSON, func(opts fieldtype.Options, value tree.Tree) registry.Field {
			return New(NewForm(value, opts), fieldtype.NestedJSON.Name, nil)
		}
	})
}
