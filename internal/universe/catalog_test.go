package universe

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "catalog.db")
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := catalogPath(t)
	specs := Default().Specs()

	db, err := OpenCatalog(ctx, path)
	require.NoError(t, err)
	require.NoError(t, WriteCatalog(ctx, db, specs))
	require.NoError(t, db.Close())

	db, err = OpenCatalog(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	read, err := ReadCatalog(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, specs, read)

	u := New()
	require.NoError(t, u.LoadCatalog(ctx, db))
	assert.Equal(t, specs, u.Specs())

	_, ok := u.LookupClass("java.util.TreeMap")
	assert.True(t, ok)
}

func TestCatalogAppends(t *testing.T) {
	ctx := context.Background()
	db, err := OpenCatalog(ctx, catalogPath(t))
	require.NoError(t, err)
	defer db.Close()

	first := []ClassSpec{{Name: "test.A", Params: []ParamSpec{{Name: "T", Bounds: StringList{"Number", "Runnable"}}}}}
	second := []ClassSpec{{Name: "test.B", Kind: "interface", Extends: StringList{"Comparable<test.B>"}}}
	require.NoError(t, WriteCatalog(ctx, db, first))
	require.NoError(t, WriteCatalog(ctx, db, second))

	read, err := ReadCatalog(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, append(first, second...), read)

	assert.Error(t, WriteCatalog(ctx, db, first), "class names are unique")
	read, err = ReadCatalog(ctx, db)
	require.NoError(t, err)
	assert.Len(t, read, 2, "a failed write stores nothing")
}

func TestReadCatalogWithoutSchema(t *testing.T) {
	ctx := context.Background()
	db, err := OpenCatalog(ctx, catalogPath(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = ReadCatalog(ctx, db)
	assert.Error(t, err)
}

func TestReadCatalogRejectsBadParameterIndex(t *testing.T) {
	for _, param := range []int{-1, 1} {
		ctx := context.Background()
		db, err := OpenCatalog(ctx, catalogPath(t))
		require.NoError(t, err)

		specs := []ClassSpec{{Name: "test.A", Params: []ParamSpec{{Name: "T"}}}}
		require.NoError(t, WriteCatalog(ctx, db, specs))
		_, err = db.ExecContext(ctx,
			"INSERT INTO bounds (class, param, position, type) VALUES (?, ?, ?, ?)",
			"test.A", param, 0, "Number")
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			_, err = ReadCatalog(ctx, db)
		})
		assert.ErrorContains(t, err, "unknown parameter", "param %d", param)
		require.NoError(t, db.Close())
	}
}
