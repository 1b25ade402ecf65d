// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_source.go
// Summary: The source command: HTML editor with the view-source drawer.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/nestedjson/apps/richtext"
	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/internal/devshell"
)

func newSourceCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "source FILE",
		Short: "Edit an HTML file with a syntax highlighted source drawer",
		Long: `Opens FILE in the rich-text content editor.

F2 opens the source drawer with the current content, Ctrl+S inside the drawer
applies the source back to the content and Esc closes the drawer without
applying. Ctrl+S outside the drawer writes FILE.`,
		Args:        cobra.ExactArgs(1),
		Annotations: tuiAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			editor, err := newSourceEditor(path, style)
			if err != nil {
				return err
			}
			return devshell.RunWith(editor)
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "chroma style for the source drawer (default from config)")
	return cmd
}

func newSourceEditor(path, style string) (*richtext.Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	cfg := config.System()
	if style == "" {
		style = cfg.GetString(config.SectionEditor, "highlight_style", richtext.DefaultStyleName)
	}
	return richtext.New(string(data), richtext.Config{
		Title:     filepath.Base(path),
		Highlight: style,
		TabWidth:  cfg.GetInt(config.SectionEditor, "tab_width", 2),
	}, func(html string) error {
		return document.WriteFile(path, []byte(html))
	}), nil
}
