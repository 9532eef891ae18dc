// Package cache stores resolved comp results keyed by query fingerprint.
package cache

import (
	"context"
	"time"
)

// ResultCache holds encoded results. Get reports a miss with ok == false.
type ResultCache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

const keyPrefix = "skinset:comps:"
