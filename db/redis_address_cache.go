package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"addrgen/internal/metrics"
	"addrgen/models"
)

const defaultRedisPrefix = "addrgen:address_cache"

// RedisAddressCache shares the address cache between instances. Entries live
// in a hash keyed by country; insertion times live in a sorted set so the
// oldest entry is ZRANGE 0 0.
type RedisAddressCache struct {
	client  *redis.Client
	opts    CacheOptions
	logger  *slog.Logger
	entries string
	stamps  string
}

type redisEntry struct {
	Address  models.FormattedAddress `json:"address"`
	CachedAt int64                   `json:"cached_at"`
}

// ConnectToRedis parses url and pings the server.
func ConnectToRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func NewRedisAddressCache(client *redis.Client, prefix string, opts CacheOptions, logger *slog.Logger) *RedisAddressCache {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisAddressCache{
		client:  client,
		opts:    opts.withDefaults(),
		logger:  logger,
		entries: prefix + ":entries",
		stamps:  prefix + ":stamps",
	}
}

func (c *RedisAddressCache) Get(ctx context.Context, country models.Country) (models.FormattedAddress, bool) {
	raw, err := c.client.HGet(ctx, c.entries, string(country)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.FormattedAddress{}, false
	}
	if err != nil {
		c.logger.Warn("address cache read failed", "country", country, "err", err)
		return models.FormattedAddress{}, false
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Warn("address cache entry corrupt", "country", country, "err", err)
		c.remove(ctx, country)
		return models.FormattedAddress{}, false
	}

	if c.opts.Now().Sub(time.Unix(0, e.CachedAt)) >= c.opts.TTL {
		c.remove(ctx, country)
		return models.FormattedAddress{}, false
	}
	return e.Address, true
}

func (c *RedisAddressCache) Put(ctx context.Context, country models.Country, addr models.FormattedAddress) {
	if err := c.put(ctx, country, addr); err != nil {
		c.logger.Warn("address cache write failed", "country", country, "err", err)
	}
}

func (c *RedisAddressCache) put(ctx context.Context, country models.Country, addr models.FormattedAddress) error {
	exists, err := c.client.HExists(ctx, c.entries, string(country)).Result()
	if err != nil {
		return fmt.Errorf("hexists: %w", err)
	}

	if !exists {
		n, err := c.client.HLen(ctx, c.entries).Result()
		if err != nil {
			return fmt.Errorf("hlen: %w", err)
		}
		if n >= int64(c.opts.Capacity) {
			oldest, err := c.client.ZRange(ctx, c.stamps, 0, 0).Result()
			if err != nil {
				return fmt.Errorf("zrange: %w", err)
			}
			if len(oldest) == 1 {
				c.remove(ctx, models.Country(oldest[0]))
				metrics.AddressCacheEvictions.Inc()
			}
		}
	}

	now := c.opts.Now().UnixNano()
	payload, err := json.Marshal(redisEntry{Address: addr, CachedAt: now})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, c.entries, string(country), payload)
		p.ZAdd(ctx, c.stamps, redis.Z{Score: float64(now), Member: string(country)})
		return nil
	})
	if err != nil {
		return fmt.Errorf("store entry: %w", err)
	}
	return nil
}

func (c *RedisAddressCache) remove(ctx context.Context, country models.Country) {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HDel(ctx, c.entries, string(country))
		p.ZRem(ctx, c.stamps, string(country))
		return nil
	})
	if err != nil {
		c.logger.Warn("address cache delete failed", "country", country, "err", err)
	}
}

// Count returns the number of stored entries.
func (c *RedisAddressCache) Count(ctx context.Context) (int64, error) {
	return c.client.HLen(ctx, c.entries).Result()
}

// Clear drops both keys.
func (c *RedisAddressCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.entries, c.stamps).Err()
}

func (c *RedisAddressCache) Close() error {
	return c.client.Close()
}
