package routes

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a cached result set with its expiry.
type cacheEntry struct {
	set     *ResultSet
	expires time.Time
}

// ResultCache is a thread-safe TTL cache for opportunity result sets,
// keyed by the canonical query string. A singleflight.Group prevents
// duplicate in-flight fetches for the same key.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	group   singleflight.Group
	ttl     time.Duration
}

// NewResultCache creates an empty cache. ttl <= 0 disables storage
// (every Get misses) but keeps in-flight deduplication.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
}

// Get returns a copy of the cached result set if it has not expired.
func (rc *ResultCache) Get(key string) (*ResultSet, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	e, ok := rc.entries[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	// Copy so callers can stamp Metadata without poisoning the cache.
	cp := *e.set
	return &cp, true
}

// Put stores a result set under key.
func (rc *ResultCache) Put(key string, set *ResultSet) {
	if rc.ttl <= 0 {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = &cacheEntry{set: set, expires: time.Now().Add(rc.ttl)}
}

// Fetch runs fn through the singleflight group and caches a successful
// result. A joiner that inherits a leader's context.Canceled failure
// retries once on its own, so a superseded search cannot poison the
// request that replaced it.
func (rc *ResultCache) Fetch(ctx context.Context, key string, fn func() (*ResultSet, error)) (*ResultSet, error) {
	do := func() (interface{}, error) { return fn() }

	v, err, _ := rc.group.Do(key, do)
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() == nil {
		rc.group.Forget(key)
		v, err, _ = rc.group.Do(key, do)
	}
	if err != nil {
		rc.group.Forget(key)
		return nil, err
	}

	rs := v.(*ResultSet)
	rc.Put(key, rs)
	return rs, nil
}
