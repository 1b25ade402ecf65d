// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Registry of field interfaces the host can attach to fields.
// Usage: Hosts register built-ins, scan a directory of manifest.json
// declarations, then create a Field for a value of a given type.

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/internal/logging"
	"github.com/framegrace/nestedjson/tree"
)

// Field is an editor instance bound to one field value.
type Field interface {
	Manifest() *fieldtype.Manifest
	Value() tree.Tree
}

// Factory creates a Field for the provided options and current value.
type Factory func(opts fieldtype.Options, value tree.Tree) Field

// Entry is a registered interface with its manifest and factory.
type Entry struct {
	Manifest *fieldtype.Manifest
	Dir      string
	Factory  Factory
}

// Registry manages the collection of available field interfaces.
type Registry struct {
	mu       sync.RWMutex
	declared map[string]*Entry // id -> entry (scanned declarations)
	builtIn  map[string]*Entry // id -> entry (compiled in)
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		declared: make(map[string]*Entry),
		builtIn:  make(map[string]*Entry),
	}
}

// RegisterBuiltIn registers an interface compiled into the binary.
// Built-ins have priority over scanned declarations with the same id.
func (r *Registry) RegisterBuiltIn(manifest *fieldtype.Manifest, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtIn[manifest.ID] = &Entry{
		Manifest: manifest,
		Factory:  factory,
	}
	logging.S().Debugf("Registry: Registered built-in interface '%s'", manifest.ID)
}

// Scan loads manifest.json declarations from the subdirectories of baseDir.
// A declaration must name the built-in it renders with.
func (r *Registry) Scan(baseDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.declared = make(map[string]*Entry)

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		logging.S().Debugf("Registry: Interface directory does not exist: %s", baseDir)
		return nil
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("read interface directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		if err := r.loadDeclarationLocked(dir); err != nil {
			logging.S().Warnf("Registry: Failed to load interface from %s: %v", dir, err)
		}
	}

	logging.S().Debugf("Registry: Loaded %d declared interfaces, %d built-in", len(r.declared), len(r.builtIn))
	return nil
}

func (r *Registry) loadDeclarationLocked(dir string) error {
	manifest, err := fieldtype.LoadManifest(dir)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}
	if manifest.Renders == "" {
		return fmt.Errorf("interface %q must specify 'renders'", manifest.ID)
	}
	if _, ok := r.builtIn[manifest.ID]; ok {
		return fmt.Errorf("interface %q shadows a built-in", manifest.ID)
	}
	r.declared[manifest.ID] = &Entry{
		Manifest: manifest,
		Dir:      dir,
		Factory:  r.renderFactory(manifest),
	}
	return nil
}

// renderFactory resolves the rendering built-in lazily so declarations can be
// scanned before every built-in is registered.
func (r *Registry) renderFactory(manifest *fieldtype.Manifest) Factory {
	return func(opts fieldtype.Options, value tree.Tree) Field {
		r.mu.RLock()
		target, ok := r.builtIn[manifest.Renders]
		r.mu.RUnlock()
		if !ok || target.Factory == nil {
			logging.S().Warnf("Registry: Rendering interface not found: %s (for %s)", manifest.Renders, manifest.ID)
			return nil
		}
		return target.Factory(opts, value)
	}
}

// Get retrieves an entry by id, or nil.
func (r *Registry) Get(id string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.builtIn[id]; ok {
		return entry
	}
	return r.declared[id]
}

// List returns all entries sorted by id.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, len(r.builtIn)+len(r.declared))
	for _, entry := range r.builtIn {
		entries = append(entries, entry)
	}
	for _, entry := range r.declared {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.ID < entries[j].Manifest.ID
	})
	return entries
}

// ForType returns the entries able to edit values of type t.
func (r *Registry) ForType(t string) []*Entry {
	var out []*Entry
	for _, entry := range r.List() {
		if entry.Manifest.SupportsType(t) {
			out = append(out, entry)
		}
	}
	return out
}

// Create builds a Field with the named interface.
func (r *Registry) Create(id string, opts fieldtype.Options, value tree.Tree) (Field, error) {
	entry := r.Get(id)
	if entry == nil {
		return nil, fmt.Errorf("interface not found: %s", id)
	}
	if entry.Factory == nil {
		return nil, fmt.Errorf("interface %q has no factory", id)
	}
	field := entry.Factory(opts, value)
	if field == nil {
		return nil, fmt.Errorf("interface %q could not be created", id)
	}
	return field, nil
}

// Count returns the total number of registered interfaces.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.builtIn) + len(r.declared)
}
