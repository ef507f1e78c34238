package mess

import (
	"time"

	"github.com/sudharshan-del/Hostel-Management/catalog"
	"github.com/sudharshan-del/Hostel-Management/store"
	"go.uber.org/zap"
)

// Option configures the Service.
type Option func(*Service)

// WithStore sets the backing store for vote counters.
// If not provided, an in-memory store is used by default.
func WithStore(s store.Store) Option {
	return func(svc *Service) {
		svc.store = s
	}
}

// WithCatalog sets the menu catalog.
// If not provided, an in-memory catalog with the default menu is used.
func WithCatalog(c catalog.Catalog) Option {
	return func(svc *Service) {
		svc.catalog = c
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(svc *Service) {
		svc.logger = l
	}
}

// WithOnVote sets a callback that fires after every recorded vote with the
// counts read back from the store. It is skipped when that read fails.
func WithOnVote(fn func(Vote, Stats)) Option {
	return func(svc *Service) {
		svc.onVote = fn
	}
}

// WithClock overrides the time source used to pick today's menu.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) {
		svc.now = now
	}
}
