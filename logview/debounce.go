package logview

import (
	"time"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// TextField identifies a debounced free-text filter field.
type TextField int

const (
	// FieldIP filters by source or destination address.
	FieldIP TextField = iota
	// FieldRule filters by rule name.
	FieldRule
	// FieldSearch is the raw free-text search.
	FieldSearch
)

func (f TextField) String() string {
	switch f {
	case FieldIP:
		return "ip"
	case FieldRule:
		return "rule"
	case FieldSearch:
		return "search"
	default:
		return "unknown"
	}
}

// SetText buffers a free-text edit and commits it after the quiet period.
// Each field debounces independently; edits to one field never cancel
// another's pending timer. Clearing a field commits immediately.
//
// The typed value is captured at keystroke time, but it merges into the
// filter state as it stands when the timer fires. Against concurrent filter
// changes this is last-write-wins; accepted as a known limitation.
func (c *Controller) SetText(field TextField, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if value == "" {
		if t := c.debounce[field]; t != nil {
			t.Stop()
			delete(c.debounce, field)
		}
		st := c.filters
		applyText(&st, field, "")
		c.commitCriteriaLocked(st)
		c.publishLocked()
		return
	}
	if t := c.debounce[field]; t != nil {
		t.Stop()
	}
	c.debounce[field] = time.AfterFunc(c.debounceDelay, func() {
		c.fireText(field, value)
	})
}

func (c *Controller) fireText(field TextField, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	delete(c.debounce, field)
	st := c.filters
	applyText(&st, field, value)
	c.commitCriteriaLocked(st)
	c.publishLocked()
}

func applyText(st *filter.State, field TextField, value string) {
	switch field {
	case FieldIP:
		st.IP = value
	case FieldRule:
		st.Rule = value
	case FieldSearch:
		st.Search = value
	}
}
