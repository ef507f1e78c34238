package cli

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	mess "github.com/sudharshan-del/Hostel-Management"
	"github.com/sudharshan-del/Hostel-Management/catalog"
	catalogredis "github.com/sudharshan-del/Hostel-Management/catalog/redis"
	"github.com/sudharshan-del/Hostel-Management/internal/config"
	"github.com/sudharshan-del/Hostel-Management/internal/logging"
	"github.com/sudharshan-del/Hostel-Management/store"
	storeredis "github.com/sudharshan-del/Hostel-Management/store/redis"
	"go.uber.org/zap"
)

// openStore builds the counter store selected by cfg. It does not
// initialize it.
func openStore(cfg config.CounterConfig) (store.Store, error) {
	switch cfg.Backend {
	case config.CounterFile:
		return store.NewFileStore(cfg.Path), nil
	case config.CounterSQLite:
		return store.NewSQLiteStore(cfg.DSN)
	case config.CounterRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return storeredis.NewRedisStore(client, cfg.RedisPrefix), nil
	case config.CounterMemory:
		return store.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown counter backend %q", cfg.Backend)
}

// openCatalog builds the menu catalog selected by cfg, seeded with the
// default menu where it is empty.
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (catalog.Catalog, error) {
	switch cfg.Backend {
	case config.CatalogMemory:
		return catalog.NewMemoryCatalog(catalog.Defaults()), nil
	case config.CatalogSQL:
		return catalog.NewSQLCatalog(ctx, cfg.Driver, cfg.DSN, catalog.Defaults())
	case config.CatalogRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		c := catalogredis.New(client, cfg.RedisPrefix)
		if err := c.Seed(ctx, catalog.Defaults()); err != nil {
			return nil, errors.Join(err, c.Close())
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
}

// app bundles what every command needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  store.Store
	svc    *mess.Service
}

func newApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cfg.Counter)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, store: st}, nil
}

// service builds a started Service over the app's store. Extra options are
// applied after the defaults.
func (a *app) service(ctx context.Context, opts ...mess.Option) (*mess.Service, error) {
	cat, err := openCatalog(ctx, a.cfg.Catalog)
	if err != nil {
		return nil, err
	}

	base := []mess.Option{
		mess.WithStore(a.store),
		mess.WithCatalog(cat),
		mess.WithLogger(a.logger),
	}
	a.svc = mess.New(append(base, opts...)...)
	if err := a.svc.Start(ctx); err != nil {
		return nil, err
	}
	return a.svc, nil
}

// close releases the service when one was built, or the bare store.
func (a *app) close() error {
	_ = a.logger.Sync()
	if a.svc != nil {
		return a.svc.Close()
	}
	return a.store.Close()
}
