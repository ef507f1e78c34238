package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudharshan-del/Hostel-Management/catalog"
)

func newTestCatalog(t *testing.T) (*Catalog, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := New(client, "test:")
	require.NoError(t, c.Seed(context.Background(), catalog.Defaults()))
	return c, mr
}

func TestCatalogLookup(t *testing.T) {
	c, _ := newTestCatalog(t)

	item, err := c.Lookup(context.Background(), time.Wednesday, catalog.Lunch)
	require.NoError(t, err)
	assert.Equal(t, "Rajma Masala + Rice, Curd, Pickle", item.Item)
	assert.Equal(t, "85g", item.Carbs)
}

func TestCatalogDay(t *testing.T) {
	c, _ := newTestCatalog(t)

	menu, err := c.Day(context.Background(), time.Saturday)
	require.NoError(t, err)
	require.NotNil(t, menu.Breakfast)
	require.NotNil(t, menu.Dinner)
	assert.Equal(t, "Aloo Paratha + Milk/Tea, Bread & Jam", menu.Breakfast.Item)
	assert.Equal(t, "Mix Veg Curry + Rice, Curd, Pickle", menu.Dinner.Item)
}

func TestCatalogUpdateSurvivesReseed(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	want := catalog.Item{Item: "Gulab Jamun", Carbs: "50g", Fat: "12g", Protein: "3g"}

	require.NoError(t, c.Update(ctx, time.Sunday, catalog.Snacks, want))
	require.NoError(t, c.Seed(ctx, catalog.Defaults()))

	got, err := c.Lookup(ctx, time.Sunday, catalog.Snacks)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCatalogKeys(t *testing.T) {
	c, mr := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, c.Update(ctx, time.Monday, catalog.Dinner, catalog.Item{Item: "Thali"}))
	assert.True(t, mr.Exists("test:menu:MONDAY"))
	fields, err := mr.HKeys("test:menu:MONDAY")
	require.NoError(t, err)
	assert.Len(t, fields, 4)
}

func TestCatalogNotFound(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	c := New(client, "")
	defer c.Close()

	_, err := c.Lookup(context.Background(), time.Monday, catalog.Lunch)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = c.Lookup(context.Background(), time.Monday, catalog.Meal(12))
	assert.ErrorIs(t, err, catalog.ErrInvalidKey)
}

func TestCatalogCorruptValue(t *testing.T) {
	c, mr := newTestCatalog(t)
	mr.HSet("test:menu:FRIDAY", "LUNCH", "")

	_, err := c.Lookup(context.Background(), time.Friday, catalog.Lunch)
	assert.Error(t, err)
}
