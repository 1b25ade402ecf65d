// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/update.go
// Summary: In-place nested value updates addressed by dotted paths.

package tree

// UpdateNestedValue sets the value at path inside root, creating intermediate
// Trees as needed. A missing prefix segment, or one holding a non-Tree value,
// is replaced by a fresh empty Tree. When value is Absent the leaf key is
// deleted from its parent; emptied ancestors are kept.
//
// The path is validated before root is touched.
func UpdateNestedValue(root Tree, path string, value interface{}) error {
	segments, err := validate("update", root, path)
	if err != nil {
		return err
	}
	update(root, segments, value)
	return nil
}

// Get returns the value at path and whether it exists.
func Get(root Tree, path string) (interface{}, bool) {
	segments, err := SplitPath(path)
	if err != nil || root == nil {
		return nil, false
	}
	var current interface{} = root
	for _, segment := range segments {
		node, ok := AsTree(current)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Has reports whether a value exists at path.
func Has(root Tree, path string) bool {
	_, ok := Get(root, path)
	return ok
}

// Rename moves the value at from to to by removing and re-setting it.
func Rename(root Tree, from, to string) error {
	if _, err := validate("rename", root, from); err != nil {
		return err
	}
	toSegments, err := validate("rename", root, to)
	if err != nil {
		return err
	}
	value, ok := Get(root, from)
	if !ok {
		return &PathError{Op: "rename", Path: from, Err: ErrNotFound}
	}
	if from == to {
		return nil
	}
	fromSegments, _ := SplitPath(from)
	update(root, fromSegments, Absent)
	update(root, toSegments, value)
	return nil
}

func validate(op string, root Tree, path string) (Path, error) {
	if root == nil {
		return nil, &PathError{Op: op, Path: path, Err: ErrNilRoot}
	}
	segments, err := SplitPath(path)
	if err != nil {
		return nil, &PathError{Op: op, Path: path, Err: err}
	}
	return segments, nil
}

func update(root Tree, segments Path, value interface{}) {
	parent := root
	for _, segment := range segments.Prefix() {
		child, ok := AsTree(parent[segment])
		if !ok {
			child = make(Tree)
			parent[segment] = child
		}
		parent = child
	}
	leaf := segments.Leaf()
	if IsAbsent(value) {
		delete(parent, leaf)
		return
	}
	parent[leaf] = value
}
