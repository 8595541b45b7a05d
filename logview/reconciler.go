package logview

import (
	"github.com/sirupsen/logrus"

	"github.com/phersys/unifi-log-insight-sub001/client"
	"github.com/phersys/unifi-log-insight-sub001/filter"
	"github.com/phersys/unifi-log-insight-sub001/internal/metrics"
)

// fetchLocked issues a query for the current filters. Each request carries a
// monotonically increasing sequence number; a completion is applied only if
// its number is still the highest issued, so the visible page always
// reflects the latest request even when responses arrive out of order.
// There is no transport-level cancellation: overtaken responses are ignored
// on arrival.
//
// background suppresses the loading flag so timer-driven refreshes do not
// flicker the UI.
func (c *Controller) fetchLocked(background bool) {
	c.seq++
	seq := c.seq
	st := c.filters
	if !background {
		c.loading = true
	}
	mode := "background"
	if !background {
		mode = "foreground"
	}
	metrics.FetchesTotal.WithLabelValues(mode).Inc()

	ctx := c.fetchCtxLocked()
	go func() {
		page, err := c.backend.Query(ctx, st)
		c.applyFetch(seq, st, page, err)
	}()
}

// applyFetch reconciles a completed request against the latest issued one.
func (c *Controller) applyFetch(seq uint64, st filter.State, page *client.ResultPage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if seq != c.seq {
		metrics.StaleDropsTotal.Inc()
		c.log.WithFields(logrus.Fields{"seq": seq, "latest": c.seq}).
			Debug("dropping overtaken response")
		return
	}
	// This is the latest request; nothing newer is pending, so the loading
	// indicator clears either way.
	c.loading = false
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		c.log.WithError(err).WithField("page", st.Page).Warn("log fetch failed")
		// Keep the last good page visible; the error surfaces non-fatally
		// and the next poll tick retries naturally.
		c.lastErr = err
	} else {
		c.page = page
		c.lastTotal = page.Total
		c.lastErr = nil
		c.setPendingLocked(0)
	}
	c.publishLocked()
}
