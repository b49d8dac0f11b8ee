package fileaccess

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDecisionCacheRoundTrip(t *testing.T) {
	c := NewMemoryDecisionCache(time.Minute)

	_, found := c.Get("a1", ModeStrictDocument, "users/a1/documents/cv.pdf")
	assert.False(t, found)

	c.Put("a1", ModeStrictDocument, "users/a1/documents/cv.pdf", true)
	allowed, found := c.Get("a1", ModeStrictDocument, "users/a1/documents/cv.pdf")
	assert.True(t, found)
	assert.True(t, allowed)

	c.Put("a2", ModeStrictDocument, "users/a1/documents/cv.pdf", false)
	allowed, found = c.Get("a2", ModeStrictDocument, "users/a1/documents/cv.pdf")
	assert.True(t, found)
	assert.False(t, allowed)
}

func TestMemoryDecisionCacheSeparatesModes(t *testing.T) {
	c := NewMemoryDecisionCache(time.Minute)

	c.Put("admin1", ModeGeneralImage, "users/a1/documents/cv.pdf", true)

	// The strict route must not inherit the general route's allow.
	_, found := c.Get("admin1", ModeStrictDocument, "users/a1/documents/cv.pdf")
	assert.False(t, found)
}

func TestMemoryDecisionCacheExpires(t *testing.T) {
	c := NewMemoryDecisionCache(10 * time.Millisecond)

	c.Put("a1", ModeStrictDocument, "users/a1/documents/cv.pdf", true)
	time.Sleep(20 * time.Millisecond)

	_, found := c.Get("a1", ModeStrictDocument, "users/a1/documents/cv.pdf")
	assert.False(t, found)
}

func TestMemoryDecisionCacheSweepsExpired(t *testing.T) {
	c := NewMemoryDecisionCache(time.Millisecond)

	for i := 0; i < sweepThreshold-1; i++ {
		c.Put("a1", ModeStrictDocument, fmt.Sprintf("users/a1/documents/%d.pdf", i), true)
	}
	time.Sleep(5 * time.Millisecond)

	// The next insert crosses the threshold and must drop every expired
	// entry regardless of the current map size.
	c.Put("a1", ModeStrictDocument, "users/a1/documents/fresh.pdf", true)

	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	assert.Equal(t, 1, size)
}

func TestNopDecisionCacheNeverStores(t *testing.T) {
	var c NopDecisionCache

	c.Put("a1", ModeStrictDocument, "k", true)
	_, found := c.Get("a1", ModeStrictDocument, "k")
	assert.False(t, found)
}
