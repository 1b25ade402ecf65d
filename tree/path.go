// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/path.go
// Summary: Dot-delimited path parsing.

package tree

import "strings"

// Separator splits path segments.
const Separator = "."

// Path is an ordered list of keys.
type Path []string

// SplitPath parses a dot-delimited path. Empty paths and empty segments
// ("a..b", ".a", "a.") are rejected with ErrInvalidPath.
func SplitPath(path string) (Path, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	segments := strings.Split(path, Separator)
	for _, segment := range segments {
		if segment == "" {
			return nil, ErrInvalidPath
		}
	}
	return Path(segments), nil
}

// JoinPath joins segments into a dot-delimited path.
func JoinPath(segments ...string) string {
	return strings.Join(segments, Separator)
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return JoinPath(p...)
}

// Leaf returns the final segment.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Prefix returns every segment before the leaf.
func (p Path) Prefix() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}
