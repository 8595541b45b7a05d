// Package mockapi implements the log-query backend contract in memory. It
// backs the demo mode of the CLI and the end-to-end tests; it is not a
// product backend.
package mockapi

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phersys/unifi-log-insight-sub001/client"
	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// Store holds an append-only sequence of log records.
type Store struct {
	mu      sync.RWMutex
	records []client.LogRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds records to the dataset.
func (s *Store) Append(recs ...client.LogRecord) {
	s.mu.Lock()
	s.records = append(s.records, recs...)
	s.mu.Unlock()
}

// Len returns the total number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (client.LogRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return client.LogRecord{}, false
}

// Query applies the filter criteria and returns one page plus the total
// match count.
func (s *Store) Query(st filter.State) *client.ResultPage {
	matches := s.Matches(st)

	desc := st.SortOrder != filter.OrderAsc
	sort.SliceStable(matches, func(i, j int) bool {
		if desc {
			return matches[i].Timestamp.After(matches[j].Timestamp)
		}
		return matches[i].Timestamp.Before(matches[j].Timestamp)
	})

	total := len(matches)
	pages := (total + st.PageSize - 1) / st.PageSize
	start := (st.Page - 1) * st.PageSize
	if start > total {
		start = total
	}
	end := start + st.PageSize
	if end > total {
		end = total
	}

	return &client.ResultPage{
		Data:  matches[start:end],
		Total: total,
		Page:  st.Page,
		Pages: pages,
	}
}

// Matches returns every record satisfying the criteria, unsorted.
func (s *Store) Matches(st filter.State) []client.LogRecord {
	cutoff := time.Now().Add(-st.TimeRange.Duration())

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []client.LogRecord
	for _, r := range s.records {
		if matches(r, st, cutoff) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r client.LogRecord, st filter.State, cutoff time.Time) bool {
	if r.Timestamp.Before(cutoff) {
		return false
	}
	if st.Types != nil && !slices.Contains(st.Types, filter.LogType(r.Type)) {
		return false
	}
	if st.Actions != nil && !slices.Contains(st.Actions, filter.Action(r.Action)) {
		return false
	}
	if st.Directions != nil && !slices.Contains(st.Directions, filter.Direction(r.Direction)) {
		return false
	}
	if st.VPNOnly && !r.VPN {
		return false
	}
	if st.IP != "" && !strings.Contains(r.SourceIP, st.IP) && !strings.Contains(r.DestIP, st.IP) {
		return false
	}
	if st.Rule != "" && !strings.Contains(strings.ToLower(r.Rule), strings.ToLower(st.Rule)) {
		return false
	}
	if st.Search != "" && !searchHit(r, st.Search) {
		return false
	}
	if st.Services != nil && !slices.Contains(st.Services, r.Service) {
		return false
	}
	if st.Interfaces != nil && !slices.Contains(st.Interfaces, r.Interface) {
		return false
	}
	return true
}

func searchHit(r client.LogRecord, needle string) bool {
	needle = strings.ToLower(needle)
	for _, hay := range []string{r.SourceIP, r.DestIP, r.Rule, r.Service, r.Message, r.Protocol} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
