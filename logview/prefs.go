package logview

import (
	"slices"
	"strings"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// Store is an injected key/value capability for remembered filter choices
// and hidden columns. Absence or failure of the store must never affect the
// controller: every error is swallowed.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// Store keys for remembered choices.
const (
	prefTypes         = "logview.types"
	prefActions       = "logview.actions"
	prefDirections    = "logview.directions"
	prefServices      = "logview.services"
	prefInterfaces    = "logview.interfaces"
	prefHiddenColumns = "logview.hidden_columns"
)

// loadPrefs applies remembered multi-select values to the initial filter
// state. Stored members outside the field's domain are dropped; a stored
// set covering the whole domain collapses to the canonical unfiltered form.
func (c *Controller) loadPrefs() {
	if c.store == nil {
		return
	}
	types := loadSet(c.store, prefTypes, filter.LogTypes)
	actions := loadSet(c.store, prefActions, filter.Actions)
	directions := loadSet(c.store, prefDirections, filter.Directions)
	services := loadList(c.store, prefServices)
	interfaces := loadList(c.store, prefInterfaces)
	hidden := loadList(c.store, prefHiddenColumns)

	c.mu.Lock()
	c.filters.Types = types
	c.filters.Actions = actions
	c.filters.Directions = directions
	c.filters.Services = services
	c.filters.Interfaces = interfaces
	c.filters.Normalize(c.maxLookbackDays)
	c.hiddenColumns = hidden
	c.mu.Unlock()
}

// savePrefsLocked persists the multi-select fields. Unfiltered fields are
// removed so absence round-trips as absence.
func (c *Controller) savePrefsLocked() {
	if c.store == nil {
		return
	}
	saveSet(c.store, prefTypes, c.filters.Types)
	saveSet(c.store, prefActions, c.filters.Actions)
	saveSet(c.store, prefDirections, c.filters.Directions)
	saveList(c.store, prefServices, c.filters.Services)
	saveList(c.store, prefInterfaces, c.filters.Interfaces)
}

func (c *Controller) saveHiddenColumnsLocked() {
	if c.store == nil {
		return
	}
	saveList(c.store, prefHiddenColumns, c.hiddenColumns)
}

func loadSet[T ~string](store Store, key string, domain []T) []T {
	raw, err := store.Get(key)
	if err != nil || raw == "" {
		return nil
	}
	var out []T
	for _, p := range strings.Split(raw, ",") {
		v := T(p)
		if slices.Contains(domain, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 || len(out) == len(domain) {
		return nil
	}
	return out
}

func loadList(store Store, key string) []string {
	raw, err := store.Get(key)
	if err != nil || raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func saveSet[T ~string](store Store, key string, vals []T) {
	if vals == nil {
		store.Remove(key) //nolint:errcheck // store failures are swallowed
		return
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	store.Set(key, strings.Join(parts, ",")) //nolint:errcheck // store failures are swallowed
}

func saveList(store Store, key string, vals []string) {
	if vals == nil {
		store.Remove(key) //nolint:errcheck // store failures are swallowed
		return
	}
	store.Set(key, strings.Join(vals, ",")) //nolint:errcheck // store failures are swallowed
}
