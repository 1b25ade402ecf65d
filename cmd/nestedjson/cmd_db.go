// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_db.go
// Summary: The db command group over the local field store.

package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/nestedjson/apps/jsoneditor"
	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/store"
	"github.com/framegrace/nestedjson/tree"
)

type dbFlags struct {
	path string
}

// storePath resolves the database: flag, then config, then the data dir.
func (f *dbFlags) storePath() (string, error) {
	if f.path != "" {
		return f.path, nil
	}
	if p := config.System().GetString(config.SectionStore, "path", ""); p != "" {
		return p, nil
	}
	dir, err := config.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fields.db"), nil
}

func (f *dbFlags) withStore(fn func(s *store.Store) error) error {
	path, err := f.storePath()
	if err != nil {
		return err
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func newDBCmd() *cobra.Command {
	var f dbFlags
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Keep field values in the local store",
		Long: `Stores nested JSON field values by collection and field name, the way
the host keeps them on its items. Records are addressed by id.`,
	}
	cmd.PersistentFlags().StringVar(&f.path, "db", "", "store database (default from config, then the data directory)")
	cmd.AddCommand(
		newDBPutCmd(&f),
		newDBGetCmd(&f),
		newDBListCmd(&f),
		newDBSetCmd(&f),
		newDBUnsetCmd(&f),
		newDBRemoveCmd(&f),
		newDBExportCmd(&f),
	)
	return cmd
}

func newDBPutCmd(f *dbFlags) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "put COLLECTION FIELD FILE",
		Short: "Store the content of FILE as a field value",
		Long: `Stores FILE (JSON or YAML) under COLLECTION and FIELD and prints the record
id. Without --id the latest record for COLLECTION and FIELD is replaced, or a
new one is created.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _, err := document.Load(args[2])
			if err != nil {
				return err
			}
			return f.withStore(func(s *store.Store) error {
				ctx := cmd.Context()
				rec := store.Record{ID: id, Collection: args[0], Field: args[1], Value: value}
				if rec.ID == "" {
					existing, err := s.Find(ctx, rec.Collection, rec.Field)
					switch {
					case err == nil:
						rec.ID = existing.ID
					case !errors.Is(err, store.ErrNotFound):
						return err
					}
				}
				newID, err := s.Put(ctx, rec)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "record id to write")
	return cmd
}

func newDBGetCmd(f *dbFlags) *cobra.Command {
	var p printFlags
	cmd := &cobra.Command{
		Use:   "get ID [PATH]",
		Short: "Print a stored value, or the value at PATH",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withStore(func(s *store.Store) error {
				rec, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				var value interface{} = rec.Value
				if len(args) == 2 {
					if value, err = lookup(rec.Value, args[1]); err != nil {
						return err
					}
				}
				return printValue(cmd.OutOrStdout(), value, p)
			})
		},
	}
	p.register(cmd)
	return cmd
}

func newDBListCmd(f *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [COLLECTION]",
		Short: "List stored records",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection := ""
			if len(args) == 1 {
				collection = args[0]
			}
			return f.withStore(func(s *store.Store) error {
				recs, err := s.List(cmd.Context(), collection)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tCOLLECTION\tFIELD\tLEAVES\tUPDATED")
				for _, rec := range recs {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
						rec.ID, rec.Collection, rec.Field, len(tree.Leaves(rec.Value)),
						rec.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	}
}

func newDBSetCmd(f *dbFlags) *cobra.Command {
	var asString bool
	cmd := &cobra.Command{
		Use:   "set ID PATH VALUE",
		Short: "Set the value at PATH inside a stored record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value interface{} = args[2]
			if !asString {
				value = jsoneditor.ParseValue(args[2])
			}
			return f.withStore(func(s *store.Store) error {
				_, err := s.Update(cmd.Context(), args[0], args[1], value)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&asString, "string", false, "store VALUE as a string")
	return cmd
}

func newDBUnsetCmd(f *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unset ID PATH",
		Short: "Remove the leaf at PATH inside a stored record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withStore(func(s *store.Store) error {
				_, err := s.Update(cmd.Context(), args[0], args[1], tree.Absent)
				return err
			})
		},
	}
}

func newDBRemoveCmd(f *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.withStore(func(s *store.Store) error {
				return s.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func newDBExportCmd(f *dbFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export ID FILE",
		Short: "Write a stored value to FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := document.FormatFor(args[1])
			if format != "" {
				parsed, err := document.ParseFormat(format)
				if err != nil {
					return err
				}
				out = parsed
			}
			return f.withStore(func(s *store.Store) error {
				rec, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return document.Save(args[1], rec.Value, out)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from the file extension)")
	return cmd
}
