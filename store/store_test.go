// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/tree"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fields.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	value := tree.Tree{"name": "x", "meta": tree.Tree{"tags": []interface{}{"a"}}}

	id, err := s.Put(ctx, Record{Collection: "articles", Field: "data", Value: value})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated ids are UUIDs")

	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "articles", rec.Collection)
	assert.Equal(t, "data", rec.Field)
	assert.False(t, rec.UpdatedAt.IsZero())
	if diff := cmp.Diff(value, rec.Value); diff != "" {
		t.Fatalf("stored value mismatch (-want +got):\n%s", diff)
	}

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	id, err := s.Put(ctx, Record{ID: "r1", Collection: "c", Field: "f", Value: tree.Tree{"a": 1.0}})
	require.NoError(t, err)
	assert.Equal(t, "r1", id)

	_, err = s.Put(ctx, Record{ID: "r1", Collection: "c", Field: "f", Value: tree.Tree{"b": true}})
	require.NoError(t, err)
	rec, err := s.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, tree.Tree{"b": true}, rec.Value)

	all, err := s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestListAndFind(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	clock := time.Unix(100, 0)
	s.now = func() time.Time { clock = clock.Add(time.Second); return clock }

	for _, rec := range []Record{
		{ID: "1", Collection: "b", Field: "z"},
		{ID: "2", Collection: "a", Field: "y"},
		{ID: "3", Collection: "a", Field: "x"},
		{ID: "4", Collection: "a", Field: "x", Value: tree.Tree{"newest": true}},
	} {
		_, err := s.Put(ctx, rec)
		require.NoError(t, err)
	}

	recs, err := s.List(ctx, "a")
	require.NoError(t, err)
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"3", "4", "2"}, ids)
	assert.Equal(t, tree.Tree{}, recs[0].Value, "nil values are stored as empty objects")

	found, err := s.Find(ctx, "a", "x")
	require.NoError(t, err)
	assert.Equal(t, "4", found.ID)

	_, err = s.Find(ctx, "a", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	id, err := s.Put(ctx, Record{Collection: "c", Field: "f"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	id, err := s.Put(ctx, Record{Collection: "c", Field: "f", Value: tree.Tree{
		"name": "x",
		"meta": tree.Tree{"tags": []interface{}{"a", "b"}},
	}})
	require.NoError(t, err)

	rec, err := s.Update(ctx, id, "meta.tags", tree.Absent)
	require.NoError(t, err)
	want := tree.Tree{"name": "x", "meta": tree.Tree{}}
	assert.Equal(t, want, rec.Value)

	_, err = s.Update(ctx, id, "profile.address.city", "Berlin")
	require.NoError(t, err)
	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	v, ok := tree.Get(stored.Value, "profile.address.city")
	require.True(t, ok)
	assert.Equal(t, "Berlin", v)

	_, err = s.Update(ctx, id, "bad..path", 1.0)
	assert.ErrorIs(t, err, tree.ErrInvalidPath)
	_, err = s.Update(ctx, "missing", "a", 1.0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "fields.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Put(ctx, Record{Collection: "c", Field: "f", Value: tree.Tree{"k": "v"}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	rec, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, tree.Tree{"k": "v"}, rec.Value)
}

func TestNumbersKeepPrecision(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	id, err := s.Put(ctx, Record{Collection: "c", Field: "f", Value: tree.Tree{
		"id":    json.Number("9007199254740993"),
		"count": int64(1000000),
	}})
	require.NoError(t, err)

	rec, err := s.Update(ctx, id, "ratio", json.Number("0.1"))
	require.NoError(t, err)
	want := tree.Tree{
		"id":    json.Number("9007199254740993"),
		"count": json.Number("1000000"),
		"ratio": json.Number("0.1"),
	}
	assert.Equal(t, want, rec.Value)

	stored, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want, stored.Value)
}

func TestMemoryDatabase(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()
	_, err = s.Put(context.Background(), Record{ID: "m", Collection: "c", Field: "f"})
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "m")
	assert.NoError(t, err)
}
