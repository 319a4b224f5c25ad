package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"addrgen/internal/metrics"
	"addrgen/models"
)

// SQLiteAddressCache persists the per-country address cache in the
// address_cache table so it survives restarts.
type SQLiteAddressCache struct {
	db     *sql.DB
	opts   CacheOptions
	logger *slog.Logger
}

func NewSQLiteAddressCache(db *sql.DB, opts CacheOptions, logger *slog.Logger) *SQLiteAddressCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteAddressCache{db: db, opts: opts.withDefaults(), logger: logger}
}

// Get implements the cache lookup. Storage errors are logged and reported as a
// miss.
func (r *SQLiteAddressCache) Get(ctx context.Context, country models.Country) (models.FormattedAddress, bool) {
	entry, err := r.FindByCountry(ctx, country)
	if errors.Is(err, ErrNotFound) {
		return models.FormattedAddress{}, false
	}
	if err != nil {
		r.logger.Warn("address cache read failed", "country", country, "err", err)
		return models.FormattedAddress{}, false
	}

	if r.opts.Now().Sub(entry.CachedAt) >= r.opts.TTL {
		if err := r.Delete(ctx, country); err != nil {
			r.logger.Warn("address cache delete failed", "country", country, "err", err)
		}
		return models.FormattedAddress{}, false
	}
	return entry.Address, true
}

// Put implements the cache store. Storage errors are logged.
func (r *SQLiteAddressCache) Put(ctx context.Context, country models.Country, addr models.FormattedAddress) {
	if err := r.Upsert(ctx, country, addr); err != nil {
		r.logger.Warn("address cache write failed", "country", country, "err", err)
	}
}

// FindByCountry retrieves the cached entry for country regardless of age.
func (r *SQLiteAddressCache) FindByCountry(ctx context.Context, country models.Country) (*models.AddressCacheEntry, error) {
	query := `
		SELECT full_address, state, city, street, postal_code, cached_at
		FROM address_cache
		WHERE country = ?
	`

	entry := models.AddressCacheEntry{Country: country}
	var cachedAt int64
	err := r.db.QueryRowContext(ctx, query, string(country)).Scan(
		&entry.Address.Full, &entry.Address.State, &entry.Address.City,
		&entry.Address.Street, &entry.Address.PostalCode, &cachedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find address cache by country: %w", err)
	}

	entry.CachedAt = time.Unix(0, cachedAt)
	return &entry, nil
}

// Upsert stores addr for country, evicting the oldest row first when a new
// country would exceed the capacity.
func (r *SQLiteAddressCache) Upsert(ctx context.Context, country models.Country, addr models.FormattedAddress) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin address cache transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM address_cache WHERE country = ?)`, string(country),
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check address cache entry: %w", err)
	}

	if !exists {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM address_cache`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count address cache entries: %w", err)
		}
		if count >= r.opts.Capacity {
			_, err := tx.ExecContext(ctx, `
				DELETE FROM address_cache WHERE country = (
					SELECT country FROM address_cache ORDER BY cached_at ASC LIMIT 1
				)`)
			if err != nil {
				return fmt.Errorf("failed to evict oldest address cache entry: %w", err)
			}
			metrics.AddressCacheEvictions.Inc()
		}
	}

	query := `
		INSERT INTO address_cache (country, full_address, state, city, street, postal_code, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(country) DO UPDATE SET
			full_address = excluded.full_address,
			state = excluded.state,
			city = excluded.city,
			street = excluded.street,
			postal_code = excluded.postal_code,
			cached_at = excluded.cached_at
	`
	_, err = tx.ExecContext(ctx, query,
		string(country), addr.Full, addr.State, addr.City, addr.Street, addr.PostalCode,
		r.opts.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert address cache: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit address cache: %w", err)
	}
	return nil
}

// Delete removes the entry for country.
func (r *SQLiteAddressCache) Delete(ctx context.Context, country models.Country) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM address_cache WHERE country = ?`, string(country))
	if err != nil {
		return fmt.Errorf("failed to delete address cache entry: %w", err)
	}
	return nil
}

// CleanupExpired removes every entry older than the TTL.
func (r *SQLiteAddressCache) CleanupExpired(ctx context.Context) (int64, error) {
	cutoff := r.opts.Now().Add(-r.opts.TTL).UnixNano()
	result, err := r.db.ExecContext(ctx, `DELETE FROM address_cache WHERE cached_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired address cache: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		r.logger.Debug("cleaned up expired address cache entries", "count", n)
	}
	return n, nil
}

// Count returns the number of stored rows.
func (r *SQLiteAddressCache) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM address_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count address cache entries: %w", err)
	}
	return n, nil
}

// Close closes the repository (satisfies Repository interface)
func (r *SQLiteAddressCache) Close() error {
	// SQLite connection is owned by the caller
	return nil
}
