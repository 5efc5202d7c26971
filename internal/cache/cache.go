package cache

import (
	"context"
	"time"
)

const StoreDetailTTL = 5 * time.Minute

// Cache is a JSON read-through cache. Misses are reported with found=false,
// not an error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Invalidator is called after every write that changes what store reads
// return.
type Invalidator interface {
	InvalidateStore(ctx context.Context, storeID string) error
}

// StoreCache is what the application wires: reads plus invalidation.
type StoreCache interface {
	Cache
	Invalidator
}

func StoreDetailKey(storeID string) string {
	return "carcare:store:" + storeID + ":detail"
}

// Noop is used when Redis is not configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                { return nil }
func (Noop) InvalidateStore(context.Context, string) error          { return nil }

var _ StoreCache = Noop{}
