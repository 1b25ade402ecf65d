// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_demo.go
// Summary: Demo apps with sample content, runnable without a file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/nestedjson/apps/jsoneditor"
	"github.com/framegrace/nestedjson/apps/richtext"
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/internal/devshell"
	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/tree"
	"github.com/framegrace/nestedjson/ui/core"
)

const sampleHTML = `<h1>Release notes</h1>
<p>The editor now keeps <em>nested</em> values.</p>
<ul>
  <li>Dot paths</li>
  <li>Source view</li>
</ul>
`

func sampleTree() tree.Tree {
	return tree.Tree{
		"name": "Ada Lovelace",
		"profile": map[string]interface{}{
			"city":    "London",
			"born":    1815.0,
			"active":  false,
			"address": map[string]interface{}{"street": "St James's Square", "number": 12.0},
		},
		"tags": []interface{}{"math", "engines"},
		"meta": map[string]interface{}{},
	}
}

func init() {
	devshell.Register("jsoneditor", func(args []string) (core.App, error) {
		opts := fieldtype.Options{
			AllowCreateNewFields: true,
			AllowRemoveFields:    true,
			EnableSearch:         true,
		}
		return jsoneditor.New(jsoneditor.NewForm(sampleTree(), opts), "Demo document", func(v tree.Tree) error {
			logging.S().Infof("Demo: save requested with %d fields", len(tree.Leaves(v)))
			return nil
		}), nil
	})
	devshell.Register("richtext", func(args []string) (core.App, error) {
		return richtext.New(sampleHTML, richtext.Config{Title: "Demo content"}, func(html string) error {
			logging.S().Infof("Demo: save requested with %d bytes", len(html))
			return nil
		}), nil
	})
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "demo [NAME]",
		Short:       "Run a demo editor on sample content",
		Long:        "Without NAME the available demos are listed. Saves are only logged.",
		Args:        cobra.MaximumNArgs(1),
		Annotations: tuiAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range devshell.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			return devshell.RunApp(args[0], args[1:])
		},
	}
}
