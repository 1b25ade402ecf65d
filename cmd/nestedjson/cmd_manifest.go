// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_manifest.go
// Summary: Prints field interface manifests for the host.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/registry"
)

func newManifestCmd() *cobra.Command {
	var (
		dir   string
		all   bool
		vtype string
	)
	cmd := &cobra.Command{
		Use:   "manifest [ID]",
		Short: "Print a field interface manifest as JSON",
		Long: `Prints the manifest the host uses to offer the interface for a field.

Without ID the nested JSON field editor is printed. --all lists every
registered interface, including declarations loaded with --interfaces.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.New()
			registry.RegisterBuiltIns(reg)
			if dir != "" {
				if err := reg.Scan(dir); err != nil {
					return err
				}
			}

			var out interface{}
			switch {
			case all || vtype != "":
				var manifests []*fieldtype.Manifest
				entries := reg.List()
				if vtype != "" {
					entries = reg.ForType(vtype)
				}
				for _, entry := range entries {
					manifests = append(manifests, entry.Manifest)
				}
				out = manifests
			default:
				id := fieldtype.NestedJSON.ID
				if len(args) == 1 {
					id = args[0]
				}
				entry := reg.Get(id)
				if entry == nil {
					return fmt.Errorf("interface not found: %s", id)
				}
				out = entry.Manifest
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVar(&dir, "interfaces", "", "directory of interface declarations to load")
	cmd.Flags().BoolVar(&all, "all", false, "list every registered interface")
	cmd.Flags().StringVar(&vtype, "type", "", "list the interfaces able to edit this value type")
	return cmd
}
