// Package redis provides a vote counter store shared through a Redis hash.
package redis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sudharshan-del/Hostel-Management/store"
)

// Compile-time interface check.
var _ store.Store = (*RedisStore)(nil)

// RedisStore keeps every counter slot as a field of one Redis hash, keyed by
// slot index. Increments run as a Lua script so the overflow check and the
// add are atomic across all clients.
type RedisStore struct {
	client *redis.Client
	key    string
	layout store.Layout
}

// NewRedisStore creates a Redis-backed store. The hash lives at
// prefix+"counters"; an empty prefix defaults to "mess:" and a zero layout to
// store.VoteLayout.
func NewRedisStore(client *redis.Client, prefix string, layout ...store.Layout) *RedisStore {
	if prefix == "" {
		prefix = "mess:"
	}
	l := store.VoteLayout
	if len(layout) > 0 {
		l = layout[0]
	}
	if l.Slots() == 0 {
		l = store.VoteLayout
	}
	return &RedisStore{client: client, key: prefix + "counters", layout: l}
}

// initScript creates missing slots at zero and returns the hash size.
//
// KEYS[1] = counter hash
// ARGV[1] = number of slots
var initScript = redis.NewScript(`
local n = tonumber(ARGV[1])
for i = 0, n - 1 do
    redis.call("HSETNX", KEYS[1], tostring(i), "0")
end
return redis.call("HLEN", KEYS[1])
`)

// incrementScript adds one to a slot. Returns -1 when the slot does not exist
// and -2 when it is already at the maximum.
//
// KEYS[1] = counter hash
// ARGV[1] = slot index
// ARGV[2] = maximum value
var incrementScript = redis.NewScript(`
local v = redis.call("HGET", KEYS[1], ARGV[1])
if not v then
    return -1
end
if tonumber(v) >= tonumber(ARGV[2]) then
    return -2
end
return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
`)

// Initialize creates the counter hash with every slot at zero. Existing
// counts are left alone.
func (r *RedisStore) Initialize(ctx context.Context) error {
	n, err := initScript.Run(ctx, r.client, []string{r.key}, r.layout.Slots()).Int64()
	if err != nil {
		return fmt.Errorf("%w: initialize %s: %v", store.ErrStorageUnavailable, r.key, err)
	}
	if n != int64(r.layout.Slots()) {
		return fmt.Errorf("%w: %s has %d slots, want %d", store.ErrStorageUnavailable, r.key, n, r.layout.Slots())
	}
	return nil
}

// Increment adds one to the counter at index.
func (r *RedisStore) Increment(ctx context.Context, index int) error {
	if _, err := r.layout.Offset(index); err != nil {
		return err
	}

	res, err := incrementScript.Run(ctx, r.client, []string{r.key}, strconv.Itoa(index), uint64(math.MaxUint32)).Int64()
	if err != nil {
		return fmt.Errorf("%w: increment %s: %v", store.ErrStorageUnavailable, r.key, err)
	}
	switch res {
	case -1:
		return fmt.Errorf("%w: %s slot %d missing", store.ErrStorageUnavailable, r.key, index)
	case -2:
		return fmt.Errorf("%w: slot %d", store.ErrCounterOverflow, index)
	}
	return nil
}

// ReadAll returns every counter in slot order.
func (r *RedisStore) ReadAll(ctx context.Context) (store.Counts, error) {
	fields := make([]string, r.layout.Slots())
	for i := range fields {
		fields[i] = strconv.Itoa(i)
	}

	vals, err := r.client.HMGet(ctx, r.key, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", store.ErrStorageUnreadable, r.key, err)
	}

	counts := make(store.Counts, len(fields))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s slot %d missing", store.ErrStorageUnreadable, r.key, i)
		}
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %s slot %d: %v", store.ErrStorageUnreadable, r.key, i, err)
		}
		counts[i] = uint32(n)
	}
	return counts, nil
}

// Close closes the underlying Redis client.
func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
		return err
	}
	return nil
}
