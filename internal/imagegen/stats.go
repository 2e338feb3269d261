package imagegen

import (
	"maps"
	"sync"
)

// Stats is a snapshot of what the gateway has produced since start.
type Stats struct {
	RemoteImages       int64            `json:"remote_images"`
	LocalImages        int64            `json:"local_images"`
	Variations         int64            `json:"variations"`
	DegradedVariations int64            `json:"degraded_variations"`
	FallbackReasons    map[string]int64 `json:"fallback_reasons"`
}

type counters struct {
	mu    sync.Mutex
	stats Stats
}

func (c *counters) record(fn func(s *Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats.FallbackReasons == nil {
		c.stats.FallbackReasons = make(map[string]int64)
	}
	fn(&c.stats)
}

func (c *counters) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.stats
	out.FallbackReasons = maps.Clone(c.stats.FallbackReasons)
	if out.FallbackReasons == nil {
		out.FallbackReasons = map[string]int64{}
	}
	return out
}

// Stats reports counters for images served by each path.
func (g *Gateway) Stats() Stats {
	return g.stats.snapshot()
}
