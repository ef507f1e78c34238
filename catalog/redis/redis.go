// Package redis provides a Redis-backed menu catalog. Each weekday is a Redis
// hash whose fields are meal names and whose values are msgpack-encoded items.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/ugorji/go/codec"
)

// Compile-time interface check.
var _ catalog.Catalog = (*Catalog)(nil)

var msgpackHandle = &codec.MsgpackHandle{}

// record is the wire form of a catalog.Item.
type record struct {
	Item    string `codec:"item"`
	Carbs   string `codec:"carbs"`
	Fat     string `codec:"fat"`
	Protein string `codec:"protein"`
}

// Catalog is a catalog.Catalog backed by Redis. Several service instances may
// share one Redis and see each other's admin edits immediately.
type Catalog struct {
	client *redis.Client
	prefix string
}

// New creates a Redis-backed catalog. Keys are written under prefix, which
// defaults to "mess:".
func New(client *redis.Client, prefix string) *Catalog {
	if prefix == "" {
		prefix = "mess:"
	}
	return &Catalog{client: client, prefix: prefix}
}

// Seed stores every entry of items that is not present yet. Existing entries
// are left untouched.
func (c *Catalog) Seed(ctx context.Context, items map[catalog.Key]catalog.Item) error {
	pipe := c.client.Pipeline()
	for k, v := range items {
		b, err := encode(v)
		if err != nil {
			return fmt.Errorf("mess/catalog/redis: encode %s: %w", k, err)
		}
		pipe.HSetNX(ctx, c.dayKey(k.Day), k.Meal.String(), b)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mess/catalog/redis: seed: %w", err)
	}
	return nil
}

// Lookup returns the item for a day and meal.
func (c *Catalog) Lookup(ctx context.Context, day time.Weekday, meal catalog.Meal) (catalog.Item, error) {
	k := catalog.Key{Day: day, Meal: meal}
	if !k.Valid() {
		return catalog.Item{}, fmt.Errorf("%w: %d/%d", catalog.ErrInvalidKey, int(day), int(meal))
	}

	b, err := c.client.HGet(ctx, c.dayKey(day), meal.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return catalog.Item{}, fmt.Errorf("%w: %s", catalog.ErrNotFound, k)
	}
	if err != nil {
		return catalog.Item{}, fmt.Errorf("mess/catalog/redis: lookup %s: %w", k, err)
	}
	return decode(b)
}

// Day returns every meal scheduled for day.
func (c *Catalog) Day(ctx context.Context, day time.Weekday) (catalog.DayMenu, error) {
	if !(catalog.Key{Day: day}).Valid() {
		return catalog.DayMenu{}, fmt.Errorf("%w: day %d", catalog.ErrInvalidKey, int(day))
	}

	vals, err := c.client.HGetAll(ctx, c.dayKey(day)).Result()
	if err != nil {
		return catalog.DayMenu{}, fmt.Errorf("mess/catalog/redis: day %s: %w", day, err)
	}

	var menu catalog.DayMenu
	for field, raw := range vals {
		meal, err := catalog.ParseMeal(field)
		if err != nil {
			continue
		}
		item, err := decode([]byte(raw))
		if err != nil {
			return catalog.DayMenu{}, err
		}
		menu.Set(meal, item)
	}
	return menu, nil
}

// Update overwrites the item for a day and meal.
func (c *Catalog) Update(ctx context.Context, day time.Weekday, meal catalog.Meal, item catalog.Item) error {
	k := catalog.Key{Day: day, Meal: meal}
	if !k.Valid() {
		return fmt.Errorf("%w: %d/%d", catalog.ErrInvalidKey, int(day), int(meal))
	}

	b, err := encode(item)
	if err != nil {
		return fmt.Errorf("mess/catalog/redis: encode %s: %w", k, err)
	}
	if err := c.client.HSet(ctx, c.dayKey(day), meal.String(), b).Err(); err != nil {
		return fmt.Errorf("mess/catalog/redis: update %s: %w", k, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (c *Catalog) Close() error {
	return c.client.Close()
}

func (c *Catalog) dayKey(day time.Weekday) string {
	return c.prefix + "menu:" + strings.ToUpper(day.String())
}

func encode(item catalog.Item) ([]byte, error) {
	var b []byte
	err := codec.NewEncoderBytes(&b, msgpackHandle).Encode(record{
		Item:    item.Item,
		Carbs:   item.Carbs,
		Fat:     item.Fat,
		Protein: item.Protein,
	})
	return b, err
}

func decode(b []byte) (catalog.Item, error) {
	if len(b) == 0 {
		return catalog.Item{}, errors.New("mess/catalog/redis: empty item")
	}
	var r record
	if err := codec.NewDecoderBytes(b, msgpackHandle).Decode(&r); err != nil {
		return catalog.Item{}, fmt.Errorf("mess/catalog/redis: decode: %w", err)
	}
	return catalog.Item{Item: r.Item, Carbs: r.Carbs, Fat: r.Fat, Protein: r.Protein}, nil
}
