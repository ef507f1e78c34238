package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/llxisdsh/pb"
)

// Compile-time interface check.
var _ Catalog = (*MemoryCatalog)(nil)

// MemoryCatalog is an in-memory Catalog. It is safe for concurrent use.
// Admin edits are lost on process restart.
type MemoryCatalog struct {
	items pb.MapOf[Key, Item]
}

// NewMemoryCatalog creates a catalog holding seed. Pass Defaults() for the
// standard weekly menu or nil for an empty catalog.
func NewMemoryCatalog(seed map[Key]Item) *MemoryCatalog {
	c := &MemoryCatalog{}
	for k, v := range seed {
		c.items.Store(k, v)
	}
	return c
}

// Lookup returns the item for a day and meal.
func (c *MemoryCatalog) Lookup(_ context.Context, day time.Weekday, meal Meal) (Item, error) {
	if err := checkKey(day, meal); err != nil {
		return Item{}, err
	}
	k := Key{Day: day, Meal: meal}
	item, ok := c.items.Load(k)
	if !ok {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	return item, nil
}

// Day returns every meal scheduled for day.
func (c *MemoryCatalog) Day(ctx context.Context, day time.Weekday) (DayMenu, error) {
	return dayFromLookups(ctx, c.Lookup, day)
}

// Update overwrites the item for a day and meal.
func (c *MemoryCatalog) Update(_ context.Context, day time.Weekday, meal Meal, item Item) error {
	if err := checkKey(day, meal); err != nil {
		return err
	}
	c.items.Store(Key{Day: day, Meal: meal}, item)
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryCatalog) Len() int {
	n := 0
	c.items.Range(func(Key, Item) bool {
		n++
		return true
	})
	return n
}

// Close is a no-op for the in-memory catalog.
func (c *MemoryCatalog) Close() error {
	return nil
}
