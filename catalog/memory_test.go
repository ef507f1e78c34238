package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	runCatalogTests(t, func(t *testing.T) Catalog {
		return NewMemoryCatalog(Defaults())
	})
}

func TestMemoryCatalogEmpty(t *testing.T) {
	c := NewMemoryCatalog(nil)
	ctx := context.Background()

	_, err := c.Lookup(ctx, time.Monday, Lunch)
	assert.ErrorIs(t, err, ErrNotFound)

	menu, err := c.Day(ctx, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, DayMenu{}, menu)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCatalogConcurrentUpdates(t *testing.T) {
	c := NewMemoryCatalog(Defaults())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Update(ctx, time.Friday, Dinner, Item{Item: "Khichdi"}))
		}()
		go func() {
			defer wg.Done()
			_, err := c.Day(ctx, time.Friday)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	item, err := c.Lookup(ctx, time.Friday, Dinner)
	require.NoError(t, err)
	assert.Equal(t, "Khichdi", item.Item)
	assert.Equal(t, 28, c.Len())
}
