// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/ops.go
// Summary: Set/Remove operations and batch application.

package tree

// Operation is a single field-level edit.
type Operation struct {
	Path  string
	Value interface{}
}

// Set builds an operation storing value at path.
func Set(path string, value interface{}) Operation {
	return Operation{Path: path, Value: value}
}

// Remove builds an operation deleting the leaf at path.
func Remove(path string) Operation {
	return Operation{Path: path, Value: Absent}
}

// IsRemove reports whether the operation deletes its leaf.
func (o Operation) IsRemove() bool {
	return IsAbsent(o.Value)
}

// Apply runs ops against root in order. Every path is validated first, so an
// invalid operation anywhere in the batch leaves root untouched.
func Apply(root Tree, ops ...Operation) error {
	parsed := make([]Path, len(ops))
	for i, op := range ops {
		segments, err := validate("apply", root, op.Path)
		if err != nil {
			return err
		}
		parsed[i] = segments
	}
	for i, op := range ops {
		update(root, parsed[i], op.Value)
	}
	return nil
}
