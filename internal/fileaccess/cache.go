package fileaccess

import (
	"sync"
	"time"
)

// DecisionCache memoizes resolved (actor, mode, key) decisions. The mode
// is part of the cache key because the two route modes can legitimately
// disagree for the same actor and object.
type DecisionCache interface {
	Get(actorID string, mode Mode, key string) (allowed bool, found bool)
	Put(actorID string, mode Mode, key string, allowed bool)
}

type cacheEntry struct {
	allowed   bool
	expiresAt time.Time
}

// sweepThreshold is the number of inserts since the last sweep after
// which Put clears expired entries.
const sweepThreshold = 1024

// MemoryDecisionCache is a process-local TTL cache. Entries expire by
// timestamp comparison at read time; there is no invalidation hook tied
// to relationship changes, so a revoked relationship can stay cached as
// allowed for up to the TTL. That staleness window is an accepted
// latency/consistency trade-off.
type MemoryDecisionCache struct {
	ttl        time.Duration
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	sinceSweep int
}

func NewMemoryDecisionCache(ttl time.Duration) *MemoryDecisionCache {
	return &MemoryDecisionCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *MemoryDecisionCache) Get(actorID string, mode Mode, key string) (bool, bool) {
	c.mu.RLock()
	entry, found := c.entries[cacheKey(actorID, mode, key)]
	c.mu.RUnlock()
	if !found || time.Now().After(entry.expiresAt) {
		return false, false
	}
	return entry.allowed, true
}

func (c *MemoryDecisionCache) Put(actorID string, mode Mode, key string, allowed bool) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	// Opportunistic sweep of expired entries; keeps the map bounded
	// without a background goroutine.
	c.sinceSweep++
	if c.sinceSweep >= sweepThreshold {
		c.sinceSweep = 0
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
	}
	c.entries[cacheKey(actorID, mode, key)] = cacheEntry{
		allowed:   allowed,
		expiresAt: now.Add(c.ttl),
	}
}

func cacheKey(actorID string, mode Mode, key string) string {
	return actorID + "\x00" + string(mode) + "\x00" + key
}

// NopDecisionCache disables memoization. Used in tests and available for
// deployments that cannot tolerate the staleness window.
type NopDecisionCache struct{}

func (NopDecisionCache) Get(string, Mode, string) (bool, bool) { return false, false }
func (NopDecisionCache) Put(string, Mode, string, bool)        {}
