package findserver

import (
	"sync/atomic"

	"github.com/buildkite/orffinder/orf"
	"github.com/puzpuzpuz/xsync/v2"
)

// resultCache holds the matches of recent queries. It stops admitting new
// entries once it holds maxEntries queries or maxMatches matches in total;
// the index is immutable, so entries never go stale.
type resultCache struct {
	maxEntries int
	maxMatches int64
	matches    atomic.Int64
	entries    *xsync.MapOf[string, []orf.Match]
}

func newResultCache(maxEntries, maxMatches int) *resultCache {
	return &resultCache{
		maxEntries: maxEntries,
		maxMatches: int64(maxMatches),
		entries:    xsync.NewMapOf[[]orf.Match](),
	}
}

func cacheKey(start, end string) string {
	// '\x00' is never an alphabet symbol.
	return start + "\x00" + end
}

// get returns the cached matches for (start, end), computing them with fn on a
// miss. hit reports whether the result came from the cache.
func (c *resultCache) get(start, end string, fn func() []orf.Match) (matches []orf.Match, hit bool) {
	key := cacheKey(start, end)
	if m, ok := c.entries.Load(key); ok {
		return m, true
	}

	matches = fn()
	c.admit(key, matches)
	return matches, false
}

func (c *resultCache) admit(key string, matches []orf.Match) {
	if c.entries.Size() >= c.maxEntries {
		return
	}

	n := int64(len(matches))
	if c.matches.Add(n) > c.maxMatches {
		c.matches.Add(-n)
		return
	}
	if _, loaded := c.entries.LoadOrStore(key, matches); loaded {
		c.matches.Add(-n)
	}
}

func (c *resultCache) len() int {
	return c.entries.Size()
}

func (c *resultCache) matchCount() int {
	return int(c.matches.Load())
}
