package logview

import "time"

// Mode is the composite poll/detail state of the view.
type Mode int

const (
	// ModeLive means the poll timer is armed and the page refreshes.
	ModeLive Mode = iota
	// ModePausedDetail means a detail view is open; the delta watcher runs.
	ModePausedDetail
	// ModePausedPage means the view shows a page other than 1, a
	// point-in-time snapshot.
	ModePausedPage
	// ModePausedManual means the user disabled auto-refresh.
	ModePausedManual
)

func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModePausedDetail:
		return "paused-detail"
	case ModePausedPage:
		return "paused-page"
	case ModePausedManual:
		return "paused-manual"
	default:
		return "unknown"
	}
}

// modeLocked recomputes the effective state from its inputs. Only page 1
// with auto-refresh on can be live; a detail view downgrades live to
// paused-detail, where the delta watcher takes over.
func (c *Controller) modeLocked() Mode {
	switch {
	case c.filters.Page != 1:
		return ModePausedPage
	case !c.enabled:
		return ModePausedManual
	case c.detailID != "":
		return ModePausedDetail
	default:
		return ModeLive
	}
}

// rearmLocked stops the poll and probe timers and arms the one the current
// mode calls for. Every state change funnels through here, so two timers
// serving the same purpose can never coexist.
func (c *Controller) rearmLocked() {
	if c.pollTimer != nil {
		c.pollTimer.Stop()
		c.pollTimer = nil
	}
	if c.probeTimer != nil {
		c.probeTimer.Stop()
		c.probeTimer = nil
	}
	if c.closed {
		return
	}
	switch c.modeLocked() {
	case ModeLive:
		c.pollTimer = time.AfterFunc(c.pollInterval, c.pollTick)
	case ModePausedDetail:
		c.probeTimer = time.AfterFunc(c.probeInterval, c.probeTick)
	}
}

// pollTick runs on poll timer expiry: issue a background fetch and re-arm.
func (c *Controller) pollTick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.modeLocked() != ModeLive {
		return
	}
	c.fetchLocked(true)
	c.rearmLocked()
}
