// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_value.go
// Summary: get, set and unset: single path operations on a document file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/nestedjson/apps/jsoneditor"
	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/tree"
)

type printFlags struct {
	indent bool
	raw    bool
}

func (p *printFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.indent, "indent", false, "indent output even when not writing to a terminal")
	cmd.Flags().BoolVar(&p.raw, "raw", false, "print strings without JSON quoting")
}

func newGetCmd() *cobra.Command {
	var p printFlags
	cmd := &cobra.Command{
		Use:   "get FILE [PATH]",
		Short: "Print the value at PATH, or the whole document",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _, err := document.Load(args[0])
			if err != nil {
				return err
			}
			var value interface{} = root
			if len(args) == 2 {
				value, err = lookup(root, args[1])
				if err != nil {
					return err
				}
			}
			return printValue(cmd.OutOrStdout(), value, p)
		},
	}
	p.register(cmd)
	return cmd
}

func newSetCmd() *cobra.Command {
	var asString bool
	cmd := &cobra.Command{
		Use:   "set FILE PATH VALUE",
		Short: "Set the value at PATH, creating missing parents",
		Long: `Sets PATH to VALUE and writes FILE back in its own format.

VALUE is parsed as JSON when it is valid JSON (numbers, true, null, arrays,
objects, quoted strings) and taken as a plain string otherwise. Use --string
to always store it as a string.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value interface{} = args[2]
			if !asString {
				value = jsoneditor.ParseValue(args[2])
			}
			return updateFile(args[0], args[1], value)
		},
	}
	cmd.Flags().BoolVar(&asString, "string", false, "store VALUE as a string")
	return cmd
}

func newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset FILE PATH",
		Short: "Remove the leaf at PATH",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateFile(args[0], args[1], tree.Absent)
		},
	}
}

func updateFile(path, key string, value interface{}) error {
	root, format, err := document.Load(path)
	if err != nil {
		return err
	}
	if err := tree.UpdateNestedValue(root, key, value); err != nil {
		return err
	}
	return document.Save(path, root, format)
}

func lookup(root tree.Tree, path string) (interface{}, error) {
	if _, err := tree.SplitPath(path); err != nil {
		return nil, &tree.PathError{Op: "get", Path: path, Err: err}
	}
	value, ok := tree.Get(root, path)
	if !ok {
		return nil, &tree.PathError{Op: "get", Path: path, Err: tree.ErrNotFound}
	}
	return value, nil
}

// printValue writes value as JSON. Output is indented on a terminal and
// compact otherwise so it composes with other tools.
func printValue(out io.Writer, value interface{}, p printFlags) error {
	if s, ok := value.(string); ok && p.raw {
		_, err := fmt.Fprintln(out, s)
		return err
	}
	var (
		data []byte
		err  error
	)
	if p.indent || isTerminal(out) {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = json.Marshal(value)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
