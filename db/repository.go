package db

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repository defines a common interface for all repositories
type Repository interface {
	Close() error
}

// CacheOptions bounds a persistent address cache.
type CacheOptions struct {
	Capacity int
	TTL      time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o CacheOptions) withDefaults() CacheOptions {
	if o.Capacity <= 0 {
		o.Capacity = 50
	}
	if o.TTL <= 0 {
		o.TTL = 5 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
