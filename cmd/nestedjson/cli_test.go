// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/nestedjson/config"
	"github.com/framegrace/nestedjson/fieldtype"
	"github.com/framegrace/nestedjson/store"
	"github.com/framegrace/nestedjson/tree"
)

type cliEnv struct {
	t    *testing.T
	dir  string
	conf string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Cleanup(func() {
		config.SetPath("")
		config.SetSystem(nil)
	})
	return &cliEnv{t: t, dir: dir, conf: filepath.Join(dir, "nestedjson.json")}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", e.conf}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "nestedjson %s", strings.Join(args, " "))
	return out
}

func (e *cliEnv) write(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGetSetUnsetJSON(t *testing.T) {
	env := newCLIEnv(t)
	doc := env.write("doc.json", `{"name":"Ada","profile":{"city":"London"}}`)

	assert.Equal(t, "\"London\"\n", env.mustRun("get", doc, "profile.city"))
	assert.Equal(t, "London\n", env.mustRun("get", "--raw", doc, "profile.city"))

	env.mustRun("set", doc, "profile.address.zip", "10115")
	env.mustRun("set", "--string", doc, "profile.code", "007")
	env.mustRun("unset", doc, "name")

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("get", doc)), &got))
	assert.Equal(t, map[string]interface{}{
		"profile": map[string]interface{}{
			"city":    "London",
			"code":    "007",
			"address": map[string]interface{}{"zip": 10115.0},
		},
	}, got)
}

func TestGetReportsPathErrors(t *testing.T) {
	env := newCLIEnv(t)
	doc := env.write("doc.json", `{"a":{"b":1}}`)

	_, err := env.run("get", doc, "a.c")
	assert.ErrorIs(t, err, tree.ErrNotFound)

	_, err = env.run("get", doc, "a..b")
	assert.ErrorIs(t, err, tree.ErrInvalidPath)

	_, err = env.run("set", doc, ".a", "1")
	assert.ErrorIs(t, err, tree.ErrInvalidPath)
}

func TestSetKeepsYAMLFormat(t *testing.T) {
	env := newCLIEnv(t)
	doc := env.write("doc.yaml", "profile:\n  city: London\n")

	env.mustRun("set", doc, "profile.city", "Berlin")

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "city: Berlin")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(string(data)), "{"))
	assert.Equal(t, "\"Berlin\"\n", env.mustRun("get", doc, "profile.city"))
}

func TestSetCreatesMissingFile(t *testing.T) {
	env := newCLIEnv(t)
	doc := filepath.Join(env.dir, "new.json")

	env.mustRun("set", doc, "a.b", "true")
	assert.Equal(t, "true\n", env.mustRun("get", doc, "a.b"))
}

func TestManifestCommand(t *testing.T) {
	env := newCLIEnv(t)

	var m fieldtype.Manifest
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("manifest")), &m))
	assert.Equal(t, fieldtype.NestedJSON.ID, m.ID)
	assert.Equal(t, fieldtype.NestedJSON.Name, m.Name)

	var list []fieldtype.Manifest
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("manifest", "--type", fieldtype.TypeJSON)), &list))
	require.NotEmpty(t, list)
	assert.Equal(t, fieldtype.NestedJSON.ID, list[0].ID)

	_, err := env.run("manifest", "no-such-interface")
	assert.Error(t, err)
}

func TestDBCommands(t *testing.T) {
	env := newCLIEnv(t)
	db := filepath.Join(env.dir, "fields.db")
	doc := env.write("doc.json", `{"profile":{"city":"London"}}`)

	id := strings.TrimSpace(env.mustRun("db", "--db", db, "put", "people", "details", doc))
	require.NotEmpty(t, id)
	again := strings.TrimSpace(env.mustRun("db", "--db", db, "put", "people", "details", doc))
	assert.Equal(t, id, again, "put replaces the latest record of the field")

	assert.Equal(t, "\"London\"\n", env.mustRun("db", "--db", db, "get", id, "profile.city"))

	env.mustRun("db", "--db", db, "set", id, "profile.zip", "10115")
	env.mustRun("db", "--db", db, "unset", id, "profile.city")
	assert.Equal(t, "{\"profile\":{\"zip\":10115}}\n", env.mustRun("db", "--db", db, "get", id))

	list := env.mustRun("db", "--db", db, "list", "people")
	assert.Contains(t, list, id)
	assert.Contains(t, list, "details")

	exported := filepath.Join(env.dir, "out.yaml")
	env.mustRun("db", "--db", db, "export", id, exported)
	assert.Equal(t, "10115\n", env.mustRun("get", exported, "profile.zip"))

	env.mustRun("db", "--db", db, "rm", id)
	_, err := env.run("db", "--db", db, "get", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = env.run("db", "--db", db, "rm", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDBDefaultsToDataDir(t *testing.T) {
	env := newCLIEnv(t)
	doc := env.write("doc.json", `{"a":1}`)

	env.mustRun("db", "put", "c", "f", doc)
	_, err := os.Stat(filepath.Join(env.dir, "data", "nestedjson", "fields.db"))
	assert.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("config")
	assert.True(t, strings.HasPrefix(out, "# "+env.conf+"\n"))
	assert.Contains(t, out, config.SectionField)
	_, err := os.Stat(env.conf)
	assert.NoError(t, err, "defaults are written on first load")
}

func TestDemoListsApps(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("demo")
	assert.Equal(t, "jsoneditor\nrichtext\n", out)
}

func TestEditOptionsFlagsOverrideConfig(t *testing.T) {
	newCLIEnv(t)
	config.SetSystem(config.Config{
		config.SectionField: map[string]interface{}{
			fieldtype.OptionAllowCreate: true,
			fieldtype.OptionReadOnly:    true,
		},
	})

	parse := func(args ...string) fieldtype.Options {
		var f editFlags
		cmd := &cobra.Command{Use: "edit"}
		f.register(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return editOptions(cmd, f)
	}

	assert.Equal(t, fieldtype.Options{
		AllowCreateNewFields: true,
		EnableSearch:         true,
		ReadOnly:             true,
	}, parse())
	assert.Equal(t, fieldtype.Options{
		AllowCreateNewFields: false,
		AllowRemoveFields:    true,
		EnableSearch:         false,
		ReadOnly:             false,
	}, parse("--readonly=false", "--allow-create=false", "--allow-remove", "--no-search"))
}

func TestBuildFieldCreatesEditor(t *testing.T) {
	env := newCLIEnv(t)
	doc := env.write("doc.json", `{"a":{"b":1}}`)

	var f editFlags
	cmd := &cobra.Command{Use: "edit"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags(nil))

	field, _, err := buildField(cmd, doc, f)
	require.NoError(t, err)
	assert.Equal(t, tree.Tree{"a": tree.Tree{"b": json.Number("1")}}, field.Value())
	_, ok := field.(saveSetter)
	assert.True(t, ok)
	_, ok = field.(reloader)
	assert.True(t, ok)

	f.iface = "missing"
	_, _, err = buildField(cmd, doc, f)
	assert.Error(t, err)
}
