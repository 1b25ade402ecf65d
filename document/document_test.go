// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/tree"
)

func sample() tree.Tree {
	return tree.Tree{
		"name": "x",
		"meta": tree.Tree{
			"tags":  []interface{}{"a", "b"},
			"count": json.Number("2"),
			"ok":    true,
			"none":  nil,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{JSON, YAML} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Encode(sample(), format)
			require.NoError(t, err)
			got, err := Decode(data, format)
			require.NoError(t, err)
			if diff := cmp.Diff(sample(), got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeYAMLNormalizes(t *testing.T) {
	src := []byte("1: one\nnested:\n  true: yes-key\n  n: 3\nlist:\n  - 1\n  - x\n")
	got, err := Decode(src, YAML)
	require.NoError(t, err)
	want := tree.Tree{
		"1":      "one",
		"nested": tree.Tree{"true": "yes-key", "n": json.Number("3")},
		"list":   []interface{}{json.Number("1"), "x"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestNumbersSurviveRoundTrip(t *testing.T) {
	src := []byte(`{"id": 9007199254740993, "ratio": 0.1, "big": 1e400, "neg": -12}`)
	got, err := Decode(src, JSON)
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), got["id"])

	out, err := Encode(got, JSON)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"id": 9007199254740993`)
	assert.Contains(t, string(out), `"ratio": 0.1`)
	assert.Contains(t, string(out), `"big": 1e400`)
	assert.Contains(t, string(out), `"neg": -12`)
}

func TestYAMLIntegersStayIntegers(t *testing.T) {
	got, err := Decode([]byte("port: 8080\ntimeout: 1000000\nratio: 0.5\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, json.Number("1000000"), got["timeout"])

	out, err := Encode(got, YAML)
	require.NoError(t, err)
	assert.Equal(t, "port: 8080\nratio: 0.5\ntimeout: 1000000\n", string(out))

	// A value loaded from JSON is written as a YAML number, not a string.
	fromJSON, err := Decode([]byte(`{"n": 9007199254740993, "f": 2.5}`), JSON)
	require.NoError(t, err)
	out, err = Encode(fromJSON, YAML)
	require.NoError(t, err)
	assert.Equal(t, "f: 2.5\nn: 9007199254740993\n", string(out))
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	v, err := DecodeJSON([]byte(" 7 \n"))
	require.NoError(t, err)
	assert.Equal(t, json.Number("7"), v)
}

func TestDecodeEdgeCases(t *testing.T) {
	got, err := Decode([]byte("  \n"), JSON)
	require.NoError(t, err)
	assert.Equal(t, tree.Tree{}, got)

	got, err = Decode([]byte("null"), JSON)
	require.NoError(t, err)
	assert.Equal(t, tree.Tree{}, got)

	_, err = Decode([]byte("[1,2]"), JSON)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte("- a\n"), YAML)
	assert.ErrorIs(t, err, ErrNotObject)

	_, err = Decode([]byte("{"), JSON)
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, YAML, FormatFor("a/b.YML"))
	assert.Equal(t, YAML, FormatFor("b.yaml"))
	assert.Equal(t, JSON, FormatFor("b.json"))
	assert.Equal(t, JSON, FormatFor("b"))

	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "doc.yaml")

	got, format, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, YAML, format)
	assert.Empty(t, got)

	require.NoError(t, Save(path, sample(), format))
	got, _, err = Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sample(), got); diff != "" {
		t.Fatalf("reloaded mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestSaveKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))
	require.NoError(t, Save(path, tree.Tree{"a": 1.0}, JSON))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
