package providers

import (
	"strings"

	"emotrack/internal/structures"
)

// MetricsCacheProvider wraps the view cache that memoises record-list,
// dashboard, statistics and alert-feed payloads. Keys are built as
// "<view>:<revision>:<date>:..." so lookups are counted per view; a miss
// after a declaration or resolution means the payload was recomputed for the
// new store revision.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	view := viewOf(key)
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(view)
	} else {
		c.metrics.IncCacheMisses(view)
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// viewOf returns the key prefix naming the memoised view.
func viewOf(key string) string {
	view, _, found := strings.Cut(key, ":")
	if !found || view == "" {
		return "other"
	}
	return view
}

// NewInstrumentedCacheProvider returns the configured view cache with
// per-view hit/miss counting. A disabled cache is returned unwrapped so it
// reports no misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
