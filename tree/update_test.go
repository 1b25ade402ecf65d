// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tree_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/tree"
)

func TestUpdateNestedValueCreatesIntermediates(t *testing.T) {
	root := tree.Tree{}
	require.NoError(t, tree.UpdateNestedValue(root, "a.b.c", 5))

	a, ok := tree.AsTree(root["a"])
	require.True(t, ok, "a should be a tree")
	b, ok := tree.AsTree(a["b"])
	require.True(t, ok, "a.b should be a tree")
	assert.Equal(t, 5, b["c"])
}

func TestUpdateNestedValueOverwritesScalarAncestor(t *testing.T) {
	root := tree.Tree{"a": 1}
	require.NoError(t, tree.UpdateNestedValue(root, "a.b", 2))

	want := tree.Tree{"a": tree.Tree{"b": 2}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestUpdateNestedValueOverwritesArrayAncestor(t *testing.T) {
	root := tree.Tree{"list": []interface{}{"x"}}
	require.NoError(t, tree.UpdateNestedValue(root, "list.first", "y"))

	want := tree.Tree{"list": tree.Tree{"first": "y"}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestUpdateNestedValueDescendsDecodedMaps(t *testing.T) {
	inner := map[string]interface{}{"keep": true}
	root := tree.Tree{"meta": inner}
	require.NoError(t, tree.UpdateNestedValue(root, "meta.added", "v"))

	assert.Equal(t, "v", inner["added"], "existing map must be mutated in place")
	assert.Equal(t, true, inner["keep"])
}

func TestUpdateNestedValueRemovesLeaf(t *testing.T) {
	root := tree.Tree{
		"name": "x",
		"meta": tree.Tree{"tags": []interface{}{"a"}},
	}
	require.NoError(t, tree.UpdateNestedValue(root, "meta.tags", tree.Absent))

	want := tree.Tree{"name": "x", "meta": tree.Tree{}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestUpdateNestedValueBuildsDeepPath(t *testing.T) {
	root := tree.Tree{}
	require.NoError(t, tree.UpdateNestedValue(root, "profile.address.city", "Berlin"))

	want := tree.Tree{"profile": tree.Tree{"address": tree.Tree{"city": "Berlin"}}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestUpdateNestedValueRemoveKeepsCreatedPrefix(t *testing.T) {
	root := tree.Tree{}
	require.NoError(t, tree.UpdateNestedValue(root, "x.y", tree.Absent))

	want := tree.Tree{"x": tree.Tree{}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestUpdateNestedValueStoresNil(t *testing.T) {
	root := tree.Tree{}
	require.NoError(t, tree.UpdateNestedValue(root, "a", nil))

	value, ok := tree.Get(root, "a")
	assert.True(t, ok, "nil is a value, not the absence sentinel")
	assert.Nil(t, value)
}

func TestRoundTripAndDeletion(t *testing.T) {
	cases := []struct {
		name  string
		root  tree.Tree
		path  string
		value interface{}
	}{
		{name: "top level", root: tree.Tree{}, path: "a", value: "x"},
		{name: "existing branch", root: tree.Tree{"a": tree.Tree{"b": 1}}, path: "a.c", value: 2.5},
		{name: "replace leaf", root: tree.Tree{"a": tree.Tree{"b": 1}}, path: "a.b", value: false},
		{name: "tree value", root: tree.Tree{}, path: "a.b", value: tree.Tree{"c": "d"}},
		{name: "array value", root: tree.Tree{"a": "s"}, path: "a.b.c", value: []interface{}{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tree.UpdateNestedValue(tc.root, tc.path, tc.value))
			got, ok := tree.Get(tc.root, tc.path)
			require.True(t, ok)
			assert.Equal(t, tc.value, got)

			require.NoError(t, tree.UpdateNestedValue(tc.root, tc.path, tree.Absent))
			assert.False(t, tree.Has(tc.root, tc.path))
		})
	}
}

func TestSetIsIdempotent(t *testing.T) {
	once := tree.Tree{"a": 1}
	twice := tree.Tree{"a": 1}

	require.NoError(t, tree.UpdateNestedValue(once, "b.c", "v"))
	require.NoError(t, tree.UpdateNestedValue(twice, "b.c", "v"))
	require.NoError(t, tree.UpdateNestedValue(twice, "b.c", "v"))

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second set changed the tree (-once +twice):\n%s", diff)
	}
}

func TestUpdateNestedValueRejectsInvalidPaths(t *testing.T) {
	for _, path := range []string{"", ".", "a..b", ".a", "a."} {
		t.Run(path, func(t *testing.T) {
			root := tree.Tree{"a": 1}
			err := tree.UpdateNestedValue(root, path, 2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tree.ErrInvalidPath), "got %v", err)

			var pathErr *tree.PathError
			require.True(t, errors.As(err, &pathErr))
			assert.Equal(t, path, pathErr.Path)
			assert.Equal(t, tree.Tree{"a": 1}, root, "root must not change")
		})
	}
}

func TestUpdateNestedValueRejectsNilRoot(t *testing.T) {
	err := tree.UpdateNestedValue(nil, "a", 1)
	assert.ErrorIs(t, err, tree.ErrNilRoot)
}

func TestGetMissing(t *testing.T) {
	root := tree.Tree{"a": tree.Tree{"b": 1}, "s": "text"}

	_, ok := tree.Get(root, "a.c")
	assert.False(t, ok)
	_, ok = tree.Get(root, "s.x")
	assert.False(t, ok, "scalars have no children")
	_, ok = tree.Get(root, "a..b")
	assert.False(t, ok)
	_, ok = tree.Get(nil, "a")
	assert.False(t, ok)
}

func TestRename(t *testing.T) {
	root := tree.Tree{"old": tree.Tree{"name": "x"}, "other": 1}
	require.NoError(t, tree.Rename(root, "old.name", "new.title"))

	want := tree.Tree{
		"old":   tree.Tree{},
		"new":   tree.Tree{"title": "x"},
		"other": 1,
	}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestRenameErrors(t *testing.T) {
	root := tree.Tree{"a": 1}

	assert.ErrorIs(t, tree.Rename(root, "missing", "b"), tree.ErrNotFound)
	assert.ErrorIs(t, tree.Rename(root, "a", "b..c"), tree.ErrInvalidPath)
	assert.Equal(t, tree.Tree{"a": 1}, root)

	require.NoError(t, tree.Rename(root, "a", "a"))
	assert.Equal(t, tree.Tree{"a": 1}, root)
}
