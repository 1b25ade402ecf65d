// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/nestedjson/main.go
// Summary: Entry point of the nestedjson command line tool.
// Usage: nestedjson edit doc.json, nestedjson get doc.json profile.city, ...

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/internal/logging"
)

// tuiAnnotation marks commands that take over the terminal; they log to a
// file instead of stderr.
var tuiAnnotation = map[string]string{"tui": "true"}

type rootOptions struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions
	root := &cobra.Command{
		Use:   "nestedjson",
		Short: "Edit nested JSON field values as forms",
		Long: `nestedjson edits nested JSON values addressed by dot paths.

It runs the nested JSON field editor in the terminal, reads and writes single
values from the command line, and keeps field values in a local store the
way a host application would.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/nestedjson/nestedjson.json)")

	root.AddCommand(
		newEditCmd(),
		newGetCmd(),
		newSetCmd(),
		newUnsetCmd(),
		newManifestCmd(),
		newSourceCmd(),
		newDBCmd(),
		newDemoCmd(),
		newConfigCmd(),
	)
	return root
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.configPath != "" {
		config.SetPath(o.configPath)
		if err := config.Reload(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: config: %v\n", err)
		}
	}

	if cmd.Annotations["tui"] != "true" {
		return logging.Init(o.verbose)
	}
	logFile, err := tuiLogFile()
	if err != nil {
		return err
	}
	return logging.Init(o.verbose, logFile)
}

func tuiLogFile() (string, error) {
	path := config.System().GetString(config.SectionEditor, "log_file", "")
	if path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return "", fmt.Errorf("resolve log directory: %w", err)
		}
		path = filepath.Join(dir, "nestedjson.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return path, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
