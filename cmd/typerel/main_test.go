package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/typerel/internal/config"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func (r result) lines() []string {
	return strings.Split(strings.TrimSpace(r.stdout), "\n")
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv(config.ConfigEnvVar, "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestParseCommand(t *testing.T) {
	r := runCLI(t, "parse", "-i", "java.util.*", "Map<String, List<Integer>>", "int[]")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{
		"java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>",
		"int[]",
	}, r.lines())

	r = runCLI(t, "parse", "--var", "T", "java.util.List<T extends Number>", "T")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{"java.util.List<T extends java.lang.Number>", "T extends java.lang.Number"}, r.lines())

	r = runCLI(t, "parse", "--var", "T", "--bind", "T=Integer", "java.util.List<T extends Number>", "T[]")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{"java.util.List<java.lang.Integer>", "java.lang.Integer[]"}, r.lines())

	r = runCLI(t, "parse", "-i", "java.util.*", "--var", "T", "--erase", "List<T extends Number>", "T", "Map<String, T>[]")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Equal(t, []string{"java.util.List", "java.lang.Number", "java.util.Map[]"}, r.lines())

	r = runCLI(t, "parse", "--var", "T", "--bind", "U=Integer", "java.util.List<T>")
	assert.Equal(t, exitError, r.code)
}

func TestAssignableCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"covariant wildcard", []string{"-i", "java.util.*", "List<? extends Number>", "ArrayList<Integer>"}, exitOK, "true"},
		{"invariant argument", []string{"-i", "java.util.*", "List<Number>", "ArrayList<Integer>"}, exitFalse, "false"},
		{"bound variable", []string{"--var", "T", "java.util.List<T>", "java.util.List<String>"}, exitFalse, "false"},
		{"free variable", []string{"--var", "T", "--free", "java.util.List<T>", "java.util.List<String>"}, exitOK, "true"},
		{"binding", []string{"--var", "T", "--bind", "T=String", "java.util.List<T>", "java.util.List<String>"}, exitOK, "true"},
		{"widening", []string{"double", "int"}, exitOK, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runCLI(t, append([]string{"assignable"}, tt.args...)...)
			assert.Equal(t, tt.code, r.code, r.stderr)
			assert.Equal(t, tt.out+"\n", r.stdout)
		})
	}
}

func TestSupertypesCommand(t *testing.T) {
	r := runCLI(t, "supertypes", "--raw", "java.util.ArrayList")
	require.Equal(t, exitOK, r.code, r.stderr)
	lines := r.lines()
	assert.Len(t, lines, 10)
	assert.Equal(t, "java.util.ArrayList", lines[0])

	r = runCLI(t, "supertypes", "-i", "java.util.*", "Set<Integer>")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.lines(), "java.util.Collection<? extends java.lang.Number>")

	r = runCLI(t, "supertypes", "--generic", "java.util.HashMap")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.lines(), "java.util.AbstractMap<K, V>")

	r = runCLI(t, "supertypes", "--raw", "--generic", "java.util.HashMap")
	assert.Equal(t, exitError, r.code)
}

func TestBoundsCommand(t *testing.T) {
	r := runCLI(t, "bounds", "upper", "--old", "Number", "--old", "String", "--add", "Integer")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.ElementsMatch(t, []string{"java.lang.Integer", "java.lang.String"}, r.lines())

	r = runCLI(t, "bounds", "lower", "--old", "Integer", "--add", "Number", "--add", "java.util.Map<String, String>")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.ElementsMatch(t, []string{"java.lang.Number", "java.util.Map<java.lang.String, java.lang.String>"}, r.lines())

	r = runCLI(t, "bounds", "sideways", "--old", "Number")
	assert.Equal(t, exitError, r.code)
}

func TestErrors(t *testing.T) {
	r := runCLI(t, "parse", "java.util.List<String")
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "Error:")
	assert.Empty(t, r.stdout)

	r = runCLI(t, "parse", "-i", "java.util.*", "-i", "java.awt.*", "List")
	assert.Equal(t, exitError, r.code)
	assert.Contains(t, r.stderr, "ambiguous name")
	assert.Contains(t, r.stderr, "Hint: candidates: java.util.List, java.awt.List")

	r = runCLI(t, "assignable", "--bind", "T", "Object", "String")
	assert.Equal(t, exitError, r.code)

	r = runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "parse", "String")
	assert.Equal(t, exitError, r.code)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(`
classes:
  - name: test.Pair
    params: [A, B]
    implements: "java.lang.Comparable<test.Pair<A, B>>"
`), 0o644))

	for _, name := range []string{"classes.yaml", "classes.db"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			r := runCLI(t, "--universe", extra, "export", out)
			require.Equal(t, exitOK, r.code, r.stderr)
			assert.Contains(t, r.stdout, "to "+out)

			key := "universe: [" + name + "]"
			if filepath.Ext(name) == ".db" {
				key = "catalog: " + name
			}
			cfg := filepath.Join(dir, "typerel-"+name+".yaml")
			require.NoError(t, os.WriteFile(cfg, []byte("no_default_universe: true\n"+key+"\n"), 0o644))

			r = runCLI(t, "--config", cfg, "--var", "X",
				"assignable", "--free", "Comparable<X>", "test.Pair<String, java.util.List<Integer>>")
			require.Equal(t, exitOK, r.code, r.stderr)

			r = runCLI(t, "--config", cfg, "assignable", "java.util.Collection<Integer>", "java.util.TreeSet<Integer>")
			require.Equal(t, exitOK, r.code, r.stderr)
		})
	}
}

func TestVerbose(t *testing.T) {
	r := runCLI(t, "-v", "parse", "String")
	require.Equal(t, exitOK, r.code, r.stderr)
	assert.Contains(t, r.stderr, "parsed type")
	assert.Equal(t, "java.lang.String\n", r.stdout)
}
