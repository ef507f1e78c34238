package catalog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLCatalog(t *testing.T) Catalog {
	t.Helper()
	c, err := NewSQLCatalog(context.Background(), "sqlite", ":memory:", Defaults())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSQLCatalog(t *testing.T) {
	runCatalogTests(t, newTestSQLCatalog)
}

func TestSQLCatalogUnsupportedDriver(t *testing.T) {
	_, err := NewSQLCatalog(context.Background(), "postgres", "", nil)
	assert.Error(t, err)
}

func TestSQLCatalogKeepsEditsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.db")
	ctx := context.Background()

	c, err := NewSQLCatalog(ctx, "sqlite", path, Defaults())
	require.NoError(t, err)
	require.NoError(t, c.Update(ctx, time.Monday, Lunch, Item{Item: "Kadhi Chawal", Carbs: "85g", Fat: "9g", Protein: "11g"}))
	require.NoError(t, c.Close())

	c, err = NewSQLCatalog(ctx, "sqlite", path, Defaults())
	require.NoError(t, err)
	defer c.Close()

	item, err := c.Lookup(ctx, time.Monday, Lunch)
	require.NoError(t, err)
	assert.Equal(t, "Kadhi Chawal", item.Item)

	// Untouched defaults are still present.
	item, err = c.Lookup(ctx, time.Monday, Dinner)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Butter Masala + Rice, Curd, Pickle", item.Item)
}

func TestSQLCatalogMissingEntry(t *testing.T) {
	c, err := NewSQLCatalog(context.Background(), "sqlite", ":memory:", nil)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Lookup(context.Background(), time.Monday, Lunch)
	assert.ErrorIs(t, err, ErrNotFound)

	menu, err := c.Day(context.Background(), time.Monday)
	require.NoError(t, err)
	assert.Nil(t, menu.Lunch)
}
