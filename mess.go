package mess

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/sudharshan-del/Hostel-Management/store"
	"go.uber.org/zap"
)

// Stats is a point-in-time view of the vote counters.
type Stats struct {
	Good    uint32 `json:"good"`
	Average uint32 `json:"avg"`
	Poor    uint32 `json:"poor"`
}

// Total returns the number of votes cast.
func (s Stats) Total() uint64 {
	return uint64(s.Good) + uint64(s.Average) + uint64(s.Poor)
}

// StatsFromCounts maps the first three counter slots to a Stats value.
func StatsFromCounts(c store.Counts) (Stats, error) {
	if len(c) < len(Votes) {
		return Stats{}, fmt.Errorf("%w: %d slots, want %d", store.ErrStorageUnreadable, len(c), len(Votes))
	}
	return Stats{Good: c[Good.Index()], Average: c[Average.Index()], Poor: c[Poor.Index()]}, nil
}

// Service is the main entry point: it records votes in a counter store and
// serves the weekly menu from a catalog.
type Service struct {
	store   store.Store
	catalog catalog.Catalog
	logger  *zap.Logger
	onVote  func(Vote, Stats)
	now     func() time.Time
}

// New creates a new Service with the given options.
// If no store is provided, an in-memory store is used. If no catalog is
// provided, an in-memory catalog holding the default menu is used.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, o := range opts {
		o(s)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.catalog == nil {
		s.catalog = catalog.NewMemoryCatalog(catalog.Defaults())
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Start prepares the counter store. A failure here means the service cannot
// record votes and should not start.
func (s *Service) Start(ctx context.Context) error {
	if err := s.store.Initialize(ctx); err != nil {
		return fmt.Errorf("mess: initialize store: %w", err)
	}
	s.logger.Debug("counter store ready")
	return nil
}

// Vote records one vote. On error nothing has been counted.
func (s *Service) Vote(ctx context.Context, v Vote) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidVote, int(v))
	}
	if err := s.store.Increment(ctx, v.Index()); err != nil {
		return fmt.Errorf("mess: record %s vote: %w", v, err)
	}

	if s.onVote != nil {
		stats, err := s.Stats(ctx)
		if err != nil {
			s.logger.Warn("read stats after vote", zap.Stringer("vote", v), zap.Error(err))
			return nil
		}
		s.onVote(v, stats)
	}
	return nil
}

// Stats returns the current vote counts. When the store cannot be read the
// error is returned and the counts must be treated as unknown.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.store.ReadAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("mess: read stats: %w", err)
	}
	stats, err := StatsFromCounts(counts)
	if err != nil {
		return Stats{}, fmt.Errorf("mess: read stats: %w", err)
	}
	return stats, nil
}

// Menu returns the menu for a weekday.
func (s *Service) Menu(ctx context.Context, day time.Weekday) (catalog.DayMenu, error) {
	menu, err := s.catalog.Day(ctx, day)
	if err != nil {
		return catalog.DayMenu{}, fmt.Errorf("mess: menu for %s: %w", day, err)
	}
	return menu, nil
}

// Today returns the menu for the current weekday.
func (s *Service) Today(ctx context.Context) (catalog.DayMenu, error) {
	return s.Menu(ctx, s.now().Weekday())
}

// UpdateMenu overwrites one meal of the weekly menu.
func (s *Service) UpdateMenu(ctx context.Context, day time.Weekday, meal catalog.Meal, item catalog.Item) error {
	if err := s.catalog.Update(ctx, day, meal, item); err != nil {
		return fmt.Errorf("mess: update menu: %w", err)
	}
	s.logger.Info("menu updated",
		zap.Stringer("key", catalog.Key{Day: day, Meal: meal}),
		zap.String("item", item.Item),
	)
	return nil
}

// Ready reports whether the counter store can be read.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.Stats(ctx)
	return err
}

// Close releases resources held by the service's store and catalog.
func (s *Service) Close() error {
	return errors.Join(s.store.Close(), s.catalog.Close())
}
