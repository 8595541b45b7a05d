package logview

import (
	"time"

	"github.com/phersys/unifi-log-insight-sub001/internal/metrics"
)

// probeTick runs while a detail view pauses the live page. It issues a
// count-only probe with the current criteria and surfaces how many new
// matching records have appeared since the last accepted fetch, without
// disturbing the visible page. Each probe's delta replaces the prior value:
// the probe is always relative to the last accepted full fetch, not to the
// last probe.
func (c *Controller) probeTick() {
	c.mu.Lock()
	if c.closed || c.modeLocked() != ModePausedDetail {
		c.mu.Unlock()
		return
	}
	st := c.filters.CountProbe()
	ctx := c.fetchCtxLocked()
	if c.probeTimer != nil {
		c.probeTimer.Stop()
	}
	c.probeTimer = time.AfterFunc(c.probeInterval, c.probeTick)
	c.mu.Unlock()

	total, err := c.backend.Count(ctx, st)
	if err != nil {
		// Advisory only: swallowed, no user-visible effect.
		metrics.ProbeFailuresTotal.Inc()
		c.log.WithError(err).Debug("delta probe failed")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.modeLocked() != ModePausedDetail || c.lastTotal < 0 {
		return
	}
	if delta := total - c.lastTotal; delta > 0 && delta != c.pending {
		c.setPendingLocked(delta)
		c.publishLocked()
	}
}

func (c *Controller) setPendingLocked(n int) {
	c.pending = n
	metrics.PendingRecords.Set(float64(n))
}
