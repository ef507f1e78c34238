package mess

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/sudharshan-del/Hostel-Management/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingStore struct {
	store.Store
	readErr error
}

func (f failingStore) ReadAll(context.Context) (store.Counts, error) {
	return nil, f.readErr
}

func newStarted(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc := New(opts...)
	require.NoError(t, svc.Start(context.Background()))
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestServiceVoteAndStats(t *testing.T) {
	svc := newStarted(t)
	ctx := context.Background()

	for _, v := range []Vote{Good, Good, Poor, Good} {
		require.NoError(t, svc.Vote(ctx, v))
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Good: 3, Average: 0, Poor: 1}, stats)
	assert.EqualValues(t, 4, stats.Total())
}

func TestServiceRejectsInvalidVote(t *testing.T) {
	svc := newStarted(t)
	err := svc.Vote(context.Background(), Vote(7))
	assert.ErrorIs(t, err, ErrInvalidVote)
}

func TestServiceBeforeStart(t *testing.T) {
	svc := New()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Vote(ctx, Good), store.ErrStorageUnavailable)
	_, err := svc.Stats(ctx)
	assert.ErrorIs(t, err, store.ErrStorageUnreadable)
	assert.Error(t, svc.Ready(ctx))
}

func TestServiceFileStore(t *testing.T) {
	path := t.TempDir() + "/mess_stats.dat"
	ctx := context.Background()

	svc := newStarted(t, WithStore(store.NewFileStore(path)))
	require.NoError(t, svc.Vote(ctx, Average))
	require.NoError(t, svc.Close())

	// A second service over the same file sees the earlier vote.
	svc = newStarted(t, WithStore(store.NewFileStore(path)))
	require.NoError(t, svc.Vote(ctx, Average))
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Average: 2}, stats)
}

func TestServiceConcurrentVotes(t *testing.T) {
	svc := newStarted(t, WithStore(store.NewFileStore(t.TempDir()+"/mess_stats.dat")))
	ctx := context.Background()

	const perVote = 50
	var wg sync.WaitGroup
	for i := 0; i < perVote*len(Votes); i++ {
		wg.Add(1)
		go func(v Vote) {
			defer wg.Done()
			assert.NoError(t, svc.Vote(ctx, v))
		}(Votes[i%len(Votes)])
	}
	wg.Wait()

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Good: perVote, Average: perVote, Poor: perVote}, stats)
}

func TestServiceOnVote(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []Stats
	)
	svc := newStarted(t, WithOnVote(func(_ Vote, s Stats) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	}))
	ctx := context.Background()

	require.NoError(t, svc.Vote(ctx, Poor))
	require.NoError(t, svc.Vote(ctx, Good))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, Stats{Poor: 1}, seen[0])
	assert.Equal(t, Stats{Good: 1, Poor: 1}, seen[1])
}

func TestServiceOnVoteSkippedWhenUnreadable(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mem := store.NewMemoryStore()
	called := false

	svc := newStarted(t,
		WithStore(failingStore{Store: mem, readErr: store.ErrStorageUnreadable}),
		WithLogger(zap.New(core)),
		WithOnVote(func(Vote, Stats) { called = true }),
	)

	require.NoError(t, svc.Vote(context.Background(), Good))
	assert.False(t, called)
	assert.Equal(t, 1, logs.FilterMessage("read stats after vote").Len())
}

func TestServiceStatsUnreadable(t *testing.T) {
	svc := newStarted(t, WithStore(failingStore{Store: store.NewMemoryStore(), readErr: errors.New("disk gone")}))
	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
	assert.Error(t, svc.Ready(context.Background()))
}

func TestServiceMenu(t *testing.T) {
	monday := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := newStarted(t, WithClock(func() time.Time { return monday }))
	ctx := context.Background()

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	byDay, err := svc.Menu(ctx, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, byDay, today)
	require.NotNil(t, today.Snacks)
	assert.Equal(t, "Samosa", today.Snacks.Item)

	item := catalog.Item{Item: "Vada Pav", Carbs: "35g", Fat: "11g", Protein: "5g"}
	require.NoError(t, svc.UpdateMenu(ctx, time.Monday, catalog.Snacks, item))

	today, err = svc.Today(ctx)
	require.NoError(t, err)
	require.NotNil(t, today.Snacks)
	assert.Equal(t, item, *today.Snacks)

	assert.ErrorIs(t, svc.UpdateMenu(ctx, time.Monday, catalog.Meal(9), item), catalog.ErrInvalidKey)
}

func TestStatsFromCounts(t *testing.T) {
	stats, err := StatsFromCounts(store.Counts{5, 6, 7})
	require.NoError(t, err)
	assert.Equal(t, Stats{Good: 5, Average: 6, Poor: 7}, stats)

	_, err = StatsFromCounts(store.Counts{1})
	assert.ErrorIs(t, err, store.ErrStorageUnreadable)
}

func TestStatsJSON(t *testing.T) {
	b, err := json.Marshal(Stats{Good: 1, Average: 2, Poor: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"good":1,"avg":2,"poor":3}`, string(b))
}
