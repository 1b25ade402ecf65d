// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/cmd_edit.go
// Summary: The edit command: terminal form editor over a document file.

package main

import (
	"context"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/framegrace/nestedjson/apps/jsoneditor"
	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/document"
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/internal/devshell"
	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/internal/watch"
	"github.com/framegrace/nestedjson/registry"
	"github.com/framegrace/nestedjson/tree"
	"github.com/framegrace/nestedjson/ui/core"
)

type editFlags struct {
	readonly      bool
	allowCreate   bool
	allowRemove   bool
	noSearch      bool
	noWatch       bool
	iface         string
	interfacesDir string
}

func newEditCmd() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a JSON or YAML document as a form",
		Long: `Opens the nested JSON field editor on FILE.

Keys: Tab moves between fields, Ctrl+S saves, Ctrl+N adds a field (path=value),
Ctrl+D removes the focused field, Ctrl+R renames it, Ctrl+F searches,
Ctrl+Z reverts and Ctrl+Q quits.

The field options default to the "field" section of the config file; the
flags below override them. The file is reloaded when it changes on disk and
the form has no unsaved edits.`,
		Args:        cobra.ExactArgs(1),
		Annotations: tuiAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, format, err := buildField(cmd, args[0], f)
			if err != nil {
				return err
			}
			watchOn := !f.noWatch && config.System().GetBool(config.SectionWatch, "enabled", true)
			return runEditor(cmd.Context(), args[0], format, field, watchOn)
		},
	}
	f.register(cmd)
	return cmd
}

func (f *editFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.readonly, "readonly", false, "open the document read-only")
	flags.BoolVar(&f.allowCreate, "allow-create", false, "allow adding fields")
	flags.BoolVar(&f.allowRemove, "allow-remove", false, "allow removing fields")
	flags.BoolVar(&f.noSearch, "no-search", false, "hide the search box")
	flags.BoolVar(&f.noWatch, "no-watch", false, "do not reload on external changes")
	flags.StringVar(&f.iface, "interface", fieldtype.NestedJSON.ID, "field interface to edit with")
	flags.StringVar(&f.interfacesDir, "interfaces", "", "directory of interface declarations to load")
}

// editOptions resolves the field options from config and explicitly set flags.
func editOptions(cmd *cobra.Command, f editFlags) fieldtype.Options {
	opts := fieldtype.OptionsFromConfig(config.System())
	flags := cmd.Flags()
	if flags.Changed("readonly") {
		opts.ReadOnly = f.readonly
	}
	if flags.Changed("allow-create") {
		opts.AllowCreateNewFields = f.allowCreate
	}
	if flags.Changed("allow-remove") {
		opts.AllowRemoveFields = f.allowRemove
	}
	if flags.Changed("no-search") {
		opts.EnableSearch = !f.noSearch
	}
	return opts
}

type saveSetter interface {
	SetSaveFunc(save jsoneditor.SaveFunc)
}

type reloader interface {
	Reload(value tree.Tree)
}

// buildField loads path and creates the editor through the interface
// registry, wired to save back to path.
func buildField(cmd *cobra.Command, path string, f editFlags) (registry.Field, document.Format, error) {
	value, format, err := document.Load(path)
	if err != nil {
		return nil, format, err
	}

	reg := registry.New()
	registry.RegisterBuiltIns(reg)
	if f.interfacesDir != "" {
		if err := reg.Scan(f.interfacesDir); err != nil {
			return nil, format, err
		}
	}
	field, err := reg.Create(f.iface, editOptions(cmd, f), value)
	if err != nil {
		return nil, format, err
	}
	if s, ok := field.(saveSetter); ok {
		s.SetSaveFunc(func(v tree.Tree) error {
			if err := document.Save(path, v, format); err != nil {
				return err
			}
			logging.S().Infof("Edit: saved %s", path)
			return nil
		})
	}
	return field, format, nil
}

// runEditor runs the field full screen, reloading it from path on external
// changes until the editor exits.
func runEditor(ctx context.Context, path string, format document.Format, field registry.Field, watchOn bool) error {
	app, ok := field.(core.App)
	if !ok {
		return fmt.Errorf("interface %q cannot run in a terminal", field.Manifest().ID)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if r, ok := field.(reloader); ok && watchOn {
		debounce := config.System().GetDurationMS(config.SectionWatch, "debounce_ms", watch.DefaultDebounce)
		w, err := watch.New(path, debounce, func(string) { reloadField(path, field, r) })
		if err != nil {
			return err
		}
		if err := w.Start(gctx); err != nil {
			logging.S().Warnf("Edit: not watching %s: %v", path, err)
		} else {
			g.Go(func() error {
				<-gctx.Done()
				w.Stop()
				return nil
			})
		}
	}

	g.Go(func() error {
		defer cancel()
		return devshell.RunWith(app)
	})
	return g.Wait()
}

func reloadField(path string, field registry.Field, r reloader) {
	value, _, err := document.Load(path)
	if err != nil {
		logging.S().Warnf("Edit: reload of %s failed: %v", path, err)
		return
	}
	if reflect.DeepEqual(value, field.Value()) {
		return
	}
	logging.S().Infof("Edit: %s changed on disk", path)
	r.Reload(value)
}
