package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/erazemk/lostfound/internal/table"
)

// DefaultCacheTTL is how long an identical query keeps being served from memory.
const DefaultCacheTTL = 300 * time.Second

// DefaultCacheSize caps the number of cached results.
const DefaultCacheSize = 256

// keyNamespace scopes cache keys generated with uuid.NewSHA1.
var keyNamespace = uuid.MustParse("3f1c52d4-7f0e-4d8a-9a4e-1c2b7d6e5a90")

// Cache stores query results keyed by the exact (query, params) tuple.
// Entries are immutable snapshots: tables are copied on the way in and out.
type Cache struct {
	lru *expirable.LRU[string, *table.Table]
}

// NewCache creates a cache whose entries expire ttl after insertion.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{lru: expirable.NewLRU[string, *table.Table](size, nil, ttl)}
}

// Key canonicalizes a query and its parameters. Whitespace differences in
// the query are ignored; parameter types are significant.
func Key(query string, params []any) string {
	var b strings.Builder
	b.WriteString(compact(query))
	for _, p := range params {
		b.WriteByte(0)
		switch v := p.(type) {
		case time.Time:
			fmt.Fprintf(&b, "time:%s", v.UTC().Format(time.RFC3339Nano))
		default:
			fmt.Fprintf(&b, "%T:%v", v, v)
		}
	}
	return uuid.NewSHA1(keyNamespace, []byte(b.String())).String()
}

// Get returns a copy of the cached table, if present and not expired.
func (c *Cache) Get(query string, params []any) (*table.Table, bool) {
	t, ok := c.lru.Get(Key(query, params))
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Put stores a copy of t.
func (c *Cache) Put(query string, params []any, t *table.Table) {
	c.lru.Add(Key(query, params), t.Clone())
}

// Len returns the number of live entries.
func (c *Cache) Len() int { return c.lru.Len() }

// Purge drops every entry.
func (c *Cache) Purge() { c.lru.Purge() }

// CachedRunner serves repeated queries from a Cache and delegates misses.
// Fallback results are never cached, so a recovered database is seen on
// the next request.
type CachedRunner struct {
	next  Runner
	cache *Cache
}

// NewCachedRunner wraps next with cache.
func NewCachedRunner(next Runner, cache *Cache) *CachedRunner {
	return &CachedRunner{next: next, cache: cache}
}

// Run implements Runner.
func (r *CachedRunner) Run(ctx context.Context, query string, params []any, fallback *table.Table) Result {
	if t, ok := r.cache.Get(query, params); ok {
		return Result{Table: t, Cached: true}
	}

	res := r.next.Run(ctx, query, params, fallback)
	if !res.Fallback {
		r.cache.Put(query, params, res.Table)
	}
	return res
}
