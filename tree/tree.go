// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/tree.go
// Summary: Tree type and the absence sentinel used by path updates.
// Usage: Field editors hold a Tree as the authoritative JSON value and mutate
// it in place with UpdateNestedValue.

// Package tree implements path-addressed mutation of nested JSON-like data.
//
// A Tree is a plain map from string keys to scalars, arrays or other Trees,
// so values decoded by encoding/json or yaml.v3 can be used directly. Paths
// are dot-delimited strings ("profile.address.city"). The package keeps no
// state between calls and never logs; callers own the Tree and any
// synchronisation around it.
package tree

import "sort"

// Tree is a nested mapping from string keys to JSON-compatible values.
type Tree map[string]interface{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent is the absence sentinel. Passing it as a value deletes the leaf key.
var Absent interface{} = absent{}

// IsAbsent reports whether v is the absence sentinel.
func IsAbsent(v interface{}) bool {
	_, ok := v.(absent)
	return ok
}

// AsTree returns v as a Tree when it is a container. Both Tree and
// map[string]interface{} are accepted; the returned Tree shares storage with v.
func AsTree(v interface{}) (Tree, bool) {
	switch t := v.(type) {
	case Tree:
		return t, t != nil
	case map[string]interface{}:
		return Tree(t), t != nil
	default:
		return nil, false
	}
}

// Keys returns the tree's keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
