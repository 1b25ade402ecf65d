// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/clone.go
// Summary: Deep copy helpers for trees.

package tree

// CloneTree returns a deep copy of t. Nested maps are copied as Trees.
func CloneTree(t Tree) Tree {
	if t == nil {
		return nil
	}
	return Clone(t).(Tree)
}

// Clone deep-copies Trees, maps and arrays. Scalars are returned as-is.
func Clone(v interface{}) interface{} {
	switch val := v.(type) {
	case Tree:
		return cloneMap(val)
	case map[string]interface{}:
		return cloneMap(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	default:
		return val
	}
}

func cloneMap(m map[string]interface{}) Tree {
	if m == nil {
		return nil
	}
	out := make(Tree, len(m))
	for key, value := range m {
		out[key] = Clone(value)
	}
	return out
}
