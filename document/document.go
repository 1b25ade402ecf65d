// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: document/document.go
// Summary: Reads and writes field values as JSON or YAML files.
// Usage: The CLI loads the edited document with Load and writes it back
// with Save; the store encodes values with Encode.

// Package document converts between files and trees.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/nestedjson/tree"
)

// Format is a document encoding.
type Format int

const (
	JSON Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// ErrNotObject is returned when a document's top level is not a mapping.
var ErrNotObject = errors.New("document: top level is not an object")

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return JSON, fmt.Errorf("document: unknown format %q", name)
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Load reads path. A missing or empty file yields an empty tree.
func Load(path string) (tree.Tree, Format, error) {
	format := FormatFor(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tree.Tree{}, format, nil
		}
		return nil, format, err
	}
	t, err := Decode(data, format)
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", path, err)
	}
	return t, format, nil
}

// Decode parses data. Blank input yields an empty tree; null is accepted
// as an empty object.
func Decode(data []byte, format Format) (tree.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.Tree{}, nil
	}
	var raw interface{}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		raw = normalize(raw)
	default:
		v, err := DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		raw = v
	}
	if raw == nil {
		return tree.Tree{}, nil
	}
	t, ok := tree.AsTree(tree.Clone(raw))
	if !ok {
		return nil, ErrNotObject
	}
	return t, nil
}

// DecodeJSON parses a single JSON value. Numbers are kept as json.Number
// so integers beyond float64 precision survive a load and save.
func DecodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level value")
	}
	return v, nil
}

// Encode renders t as indented JSON or YAML, ending with a newline.
func Encode(t tree.Tree, format Format) ([]byte, error) {
	if t == nil {
		t = tree.Tree{}
	}
	if format == YAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(yamlValue(t)); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes t to path atomically: the data goes to a temporary file in
// the same directory which is then renamed over path.
func Save(path string, t tree.Tree, format Format) error {
	data, err := Encode(t, format)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteFile atomically replaces path with data, keeping the mode of an
// existing file.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
