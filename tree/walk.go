// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tree/walk.go
// Summary: Depth-first traversal over tree leaves.

package tree

// Leaf is a value addressed by its full dotted path.
type Leaf struct {
	Path  string
	Value interface{}
}

// Walk visits every leaf of root depth-first in sorted key order. Scalars,
// arrays and empty Trees are leaves. Returning false from fn stops the walk.
func Walk(root Tree, fn func(path string, value interface{}) bool) {
	walk(root, nil, fn)
}

func walk(node Tree, prefix []string, fn func(string, interface{}) bool) bool {
	for _, key := range node.Keys() {
		value := node[key]
		segments := append(prefix[:len(prefix):len(prefix)], key)
		if child, ok := AsTree(value); ok && len(child) > 0 {
			if !walk(child, segments, fn) {
				return false
			}
			continue
		}
		if !fn(JoinPath(segments...), value) {
			return false
		}
	}
	return true
}

// Leaves collects the leaves of root in Walk order.
func Leaves(root Tree) []Leaf {
	var leaves []Leaf
	Walk(root, func(path string, value interface{}) bool {
		leaves = append(leaves, Leaf{Path: path, Value: value})
		return true
	})
	return leaves
}
