package typerel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/internal/typeparser"
	"github.com/funvibe/typerel/internal/typesystem"
	"github.com/funvibe/typerel/internal/universe"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(append([]Option{WithImports("java.util.*"), WithTypeVariables("T", "U")}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestIsAssignable(t *testing.T) {
	s := newSession(t)

	tests := []struct {
		to, from string
		checks   []Check
		want     bool
	}{
		{"List<? extends Number>", "ArrayList<Integer>", nil, true},
		{"List<Number>", "ArrayList<Integer>", nil, false},
		{"long", "int", nil, true},
		{"Long", "int", nil, false},
		{"Object", "int[]", nil, true},
		{"List<T>", "ArrayList<T>", nil, true},
		{"List<T>", "List<String>", nil, false},
		{"List<T>", "List<String>", []Check{Free()}, true},
		{"List<T>", "List<String>", []Check{Bind("T", "String")}, true},
		{"List<T>", "List<String>", []Check{Bind("T", "Integer")}, false},
		{"Collection<? super U>", "List<T>", []Check{Bind("U", "Integer"), Bind("T", "Number")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.to+" <- "+tt.from, func(t *testing.T) {
			got, err := s.IsAssignable(tt.to, tt.from, tt.checks...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAssignableErrors(t *testing.T) {
	s := newSession(t)

	_, err := s.IsAssignable("List<", "List<String>")
	assert.True(t, errors.Is(err, typesystem.ErrMalformedInput), "got %v", err)

	_, err = s.IsAssignable("List<T>", "List<String>", Bind("U", "String"))
	assert.True(t, errors.Is(err, typeparser.ErrNameNotFound), "got %v", err)

	_, err = s.IsAssignable("List<T>", "List<String>", Bind("T", "Nope"))
	assert.True(t, errors.Is(err, typeparser.ErrNameNotFound), "got %v", err)

	_, err = s.IsAssignable("Map<String>", "HashMap<String, String>")
	assert.True(t, errors.Is(err, typesystem.ErrArityMismatch), "got %v", err)
}

func TestInstantiate(t *testing.T) {
	s := newSession(t)

	types, err := s.Instantiate([]string{"Map<T, List<U>>", "U[]", "T"}, Bind("T", "String"), Bind("U", "Integer"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"java.util.Map<java.lang.String, java.util.List<java.lang.Integer>>",
		"java.lang.Integer[]",
		"java.lang.String",
	}, typesystem.TypeNames(types))

	types, err = s.Instantiate([]string{"List<T>"})
	require.NoError(t, err)
	assert.Equal(t, "java.util.List<T>", types[0].String())

	_, err = s.Instantiate([]string{"List<T>"}, Bind("V", "String"))
	assert.True(t, errors.Is(err, typeparser.ErrNameNotFound), "got %v", err)
}

func TestParseBinding(t *testing.T) {
	c, err := ParseBinding(" T = java.util.List<String> ")
	require.NoError(t, err)
	var chk check
	c(&chk)
	assert.Equal(t, [][2]string{{"T", "java.util.List<String>"}}, chk.bindings)

	for _, bad := range []string{"T", "=String", "T=", ""} {
		_, err := ParseBinding(bad)
		assert.True(t, errors.Is(err, typesystem.ErrMalformedInput), bad)
	}
}

func TestSessionMode(t *testing.T) {
	s := newSession(t, WithMode(typesystem.FreeMode))
	assert.Equal(t, typesystem.FreeMode, s.Mode())
	ok, err := s.IsAssignable("List<T>", "List<String>")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSupertypes(t *testing.T) {
	s := newSession(t)

	supers, err := s.Supertypes("Set<Integer>")
	require.NoError(t, err)
	for _, want := range []string{
		"java.util.Set<java.lang.Integer>",
		"java.util.Collection<? extends java.lang.Number>",
		"java.lang.Iterable<java.lang.Integer>",
		"java.util.Set",
		"java.lang.Object",
	} {
		assert.Contains(t, supers.Strings(), want)
	}
	assert.NotContains(t, supers.Strings(), "java.util.List<java.lang.Integer>")

	raw, err := s.RawSupertypes("ArrayList<String>")
	require.NoError(t, err)
	assert.Equal(t, "java.util.ArrayList", raw.Strings()[0])
	assert.Equal(t, 10, raw.Len())

	generic, err := s.GenericSupertypes("ArrayList<String>")
	require.NoError(t, err)
	assert.Contains(t, generic.Strings(), "java.util.AbstractList<E>")

	_, err = s.Supertypes("Nope")
	assert.Error(t, err)
}

func TestMergeBounds(t *testing.T) {
	s := newSession(t)

	upper, err := s.MergeUpperBounds([]string{"Number", "String"}, []string{"Integer"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"java.lang.Integer", "java.lang.String"}, typesystem.TypeNames(upper))

	lower, err := s.MergeLowerBounds([]string{"Integer", "String"}, []string{"Number"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"java.lang.Number", "java.lang.String"}, typesystem.TypeNames(lower))

	_, err = s.MergeUpperBounds([]string{"Number"}, []string{"List<"})
	assert.Error(t, err)
}

func TestNewSessionValidates(t *testing.T) {
	_, err := NewSession(WithImports("java..util.*"))
	assert.True(t, errors.Is(err, typesystem.ErrMalformedInput), "got %v", err)

	_, err = NewSession(WithTypeVariables("int"))
	assert.True(t, errors.Is(err, typesystem.ErrMalformedInput), "got %v", err)
}

const registryYAML = `
classes:
  - name: test.Registry
    params: [V]
    extends: "java.util.HashMap<java.lang.String, V>"
`

func TestFromConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registry.yaml"), []byte(registryYAML), 0o644))

	catalog := filepath.Join(dir, "extra.db")
	db, err := universe.OpenCatalog(ctx, catalog)
	require.NoError(t, err)
	require.NoError(t, universe.WriteCatalog(ctx, db, []universe.ClassSpec{
		{Name: "test.Box", Params: []universe.ParamSpec{{Name: "T"}}, Implements: universe.StringList{"java.lang.Iterable<T>"}},
	}))
	require.NoError(t, db.Close())

	cfgPath := filepath.Join(dir, config.ConfigFileName)
	cfg, err := config.ParseConfig([]byte(`
universe: [registry.yaml]
catalog: extra.db
imports: [java.util.*, test.*]
type_variables: [X]
mode: free
`), cfgPath)
	require.NoError(t, err)

	s, err := FromConfig(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, typesystem.FreeMode, s.Mode())

	ok, err := s.IsAssignable("Map<String, Integer>", "Registry<Integer>")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAssignable("Iterable<X>", "Box<String>")
	require.NoError(t, err)
	assert.True(t, ok)

	_, found := s.Universe().LookupClass("test.Box")
	assert.True(t, found)
}

func TestFromConfigErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg, err := config.ParseConfig([]byte("universe: [missing.yaml]\n"), filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	_, err = FromConfig(ctx, cfg, nil)
	assert.Error(t, err)

	cfg, err = config.ParseConfig([]byte("no_default_universe: true\nimports: [java.util.List]\n"), filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	s, err := FromConfig(ctx, cfg, nil)
	require.NoError(t, err, "imports are not resolved eagerly")
	_, err = s.Parse("List")
	assert.True(t, errors.Is(err, typeparser.ErrNameNotFound), "got %v", err)
}
