// Package app wires the configured components into an http.Handler.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"addrgen/db"
	"addrgen/internal/address"
	"addrgen/internal/addresscache"
	"addrgen/internal/config"
	"addrgen/internal/country"
	"addrgen/internal/generator"
	"addrgen/internal/geocode"
	"addrgen/internal/identity"
	"addrgen/internal/phone"
	"addrgen/internal/random"
	"addrgen/internal/web"
	"addrgen/middleware"
)

// App is the assembled service.
type App struct {
	Handler http.Handler
	Cache   addresscache.Cache

	sqliteCache *db.SQLiteAddressCache
	closers     []func() error
	logger      *slog.Logger
}

// Build constructs every component from cfg. The caller must Close the App.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{logger: logger}

	cache, err := a.buildCache(ctx, cfg.Cache)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Cache = cache

	locales, err := identity.BuiltinLocales()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load locales: %w", err)
	}

	src := random.New()
	resolver := address.NewResolver(
		geocode.NewClient(cfg.Geocode, logger),
		country.NewSampler(src),
		cache,
		logger,
	)
	names := identity.NewSynthesizer(locales, identity.NewPeopleClient(cfg.People), src, logger)
	phones := phone.NewSynthesizer(src)
	gen := generator.NewGeneratorService(resolver, names, phones, src, logger)

	webHandler, err := web.NewWebHandler(gen, cfg, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("build web handler: %w", err)
	}

	var handler http.Handler = webHandler.SetupRoutes()
	handler = middleware.Deadline(cfg.RequestTimeout)(handler)
	handler = middleware.SetupCORS()(handler)
	a.Handler = middleware.LoggingMiddleware(logger)(handler)

	return a, nil
}

func (a *App) buildCache(ctx context.Context, cfg config.CacheConfig) (addresscache.Cache, error) {
	opts := db.CacheOptions{Capacity: cfg.Capacity, TTL: cfg.TTL}

	switch cfg.Backend {
	case config.SQLiteCache:
		conn, err := db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		if err := db.InitializeSchema(conn); err != nil {
			return nil, err
		}
		a.logger.Info("using sqlite address cache", "path", cfg.SQLitePath)
		a.sqliteCache = db.NewSQLiteAddressCache(conn, opts, a.logger)
		return a.sqliteCache, nil

	case config.RedisCache:
		client, err := db.ConnectToRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.logger.Info("using redis address cache")
		return db.NewRedisAddressCache(client, "", opts, a.logger), nil

	default:
		return addresscache.NewMemory(cfg.Capacity, cfg.TTL), nil
	}
}

// RunMaintenance purges expired rows from a persistent cache every interval
// until ctx is done. Other backends expire entries on read and return at once.
func (a *App) RunMaintenance(ctx context.Context, interval time.Duration) error {
	if a.sqliteCache == nil {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.sqliteCache.CleanupExpired(ctx); err != nil && ctx.Err() == nil {
				a.logger.Warn("address cache cleanup failed", "err", err)
			}
		}
	}
}

// Close releases database connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
