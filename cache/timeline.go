package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL matches the original index-page cache interval.
const DefaultTTL = 20 * time.Second

// Timeline caches assembled listing pages keyed by (scope, page). Entries
// expire after the configured TTL; writes to the post table call
// Invalidate so readers never see a stale page longer than one TTL.
type Timeline struct {
	store *gocache.Cache
}

func NewTimeline(ttl time.Duration) *Timeline {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Timeline{store: gocache.New(ttl, 2*ttl)}
}

// TTLFromSeconds builds the cache interval from an externally supplied
// setting; zero or garbage falls back to the default.
func TTLFromSeconds(s string) time.Duration {
	var seconds int
	if _, err := fmt.Sscanf(s, "%d", &seconds); err != nil || seconds <= 0 {
		return DefaultTTL
	}
	return time.Duration(seconds) * time.Second
}

func key(scope string, page int) string {
	return fmt.Sprintf("%s:%d", scope, page)
}

func (t *Timeline) Get(scope string, page int) (interface{}, bool) {
	return t.store.Get(key(scope, page))
}

func (t *Timeline) Set(scope string, page int, value interface{}) {
	t.store.SetDefault(key(scope, page), value)
}

// Invalidate drops every cached page.
func (t *Timeline) Invalidate() {
	t.store.Flush()
}
