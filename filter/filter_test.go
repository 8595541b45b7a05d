package filter

import (
	"net/url"
	"slices"
	"testing"
)

func TestToggleCollapsesFullDomainToNil(t *testing.T) {
	var s State

	// Absence means the full domain; removing one member downgrades to an
	// explicit list.
	if err := s.ToggleType(TypeDNS); err != nil {
		t.Fatalf("ToggleType: %v", err)
	}
	if s.Types == nil {
		t.Fatal("expected explicit list after removing a member from the full set")
	}
	if slices.Contains(s.Types, TypeDNS) {
		t.Errorf("dns still selected: %v", s.Types)
	}
	if len(s.Types) != len(LogTypes)-1 {
		t.Errorf("got %d members, want %d", len(s.Types), len(LogTypes)-1)
	}

	// Toggling it back restores the full set, which collapses to nil.
	if err := s.ToggleType(TypeDNS); err != nil {
		t.Fatalf("ToggleType: %v", err)
	}
	if s.Types != nil {
		t.Errorf("full set should collapse to nil, got %v", s.Types)
	}
}

func TestToggleRejectsEmptySelection(t *testing.T) {
	s := State{Directions: []Direction{DirectionIn}}
	if err := s.ToggleDirection(DirectionIn); err != ErrLastMember {
		t.Fatalf("got %v, want ErrLastMember", err)
	}
	if !slices.Equal(s.Directions, []Direction{DirectionIn}) {
		t.Errorf("state mutated on rejected toggle: %v", s.Directions)
	}
}

func TestToggleRejectsUnknownValue(t *testing.T) {
	var s State
	if err := s.ToggleAction(Action("shrug")); err == nil {
		t.Fatal("expected error for unknown action")
	}
}

func TestToggleServiceAgainstCatalog(t *testing.T) {
	catalog := []string{"http", "https", "ssh"}
	var s State

	if err := s.ToggleService("ssh", catalog); err != nil {
		t.Fatalf("ToggleService: %v", err)
	}
	if !slices.Equal(s.Services, []string{"http", "https"}) {
		t.Errorf("got %v", s.Services)
	}

	if err := s.ToggleService("ssh", catalog); err != nil {
		t.Fatalf("ToggleService: %v", err)
	}
	if s.Services != nil {
		t.Errorf("full catalog should collapse to nil, got %v", s.Services)
	}
}

func TestClampTimeRange(t *testing.T) {
	tests := []struct {
		in      TimeRange
		maxDays int
		want    TimeRange
	}{
		{Range30d, 14, Range7d},   // over the cap, largest fitting range
		{Range6h, 14, Range6h},    // sub-day, always allowed
		{Range1h, 14, Range1h},
		{Range365d, 14, Range7d},
		{Range7d, 14, Range7d},    // at or below the cap, unchanged
		{Range365d, 0, Range365d}, // no cap
		{Range30d, 90, Range30d},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(tt.maxDays); got != tt.want {
			t.Errorf("Clamp(%s, %d) = %s, want %s", tt.in, tt.maxDays, got, tt.want)
		}
	}
}

func TestNormalizeVPNOnlyClearsDirections(t *testing.T) {
	s := Default()
	s.VPNOnly = true
	s.Directions = []Direction{DirectionIn}
	s.Normalize(0)
	if s.Directions != nil {
		t.Errorf("VPN-only should clear directions, got %v", s.Directions)
	}
}

func TestNormalizeClampsAndFloors(t *testing.T) {
	s := State{TimeRange: Range90d, Page: 0, PageSize: -3}
	s.Normalize(14)
	if s.TimeRange != Range7d {
		t.Errorf("time range: got %s, want 7d", s.TimeRange)
	}
	if s.Page != 1 || s.PageSize != DefaultPageSize {
		t.Errorf("pagination not floored: page=%d size=%d", s.Page, s.PageSize)
	}
	if s.SortKey != DefaultSortKey || s.SortOrder != OrderDesc {
		t.Errorf("sort defaults not applied: %s %s", s.SortKey, s.SortOrder)
	}
}

func TestValuesOmitsAbsentFields(t *testing.T) {
	s := Default()
	v := s.Values()
	for _, key := range []string{"types", "actions", "directions", "vpn_only", "ip", "rule", "search", "services", "interfaces"} {
		if v.Has(key) {
			t.Errorf("unfiltered state should omit %q, got %q", key, v.Get(key))
		}
	}
	if v.Get("time_range") != "24h" || v.Get("page") != "1" {
		t.Errorf("unexpected encoding: %v", v)
	}
}

func TestValuesRoundTrip(t *testing.T) {
	s := Default()
	s.TimeRange = Range7d
	s.Types = []LogType{TypeFirewall, TypeIDS}
	s.Actions = []Action{ActionDeny}
	s.VPNOnly = true
	s.IP = "10.0.0.5"
	s.Search = "blocked"
	s.Services = []string{"https"}
	s.Page = 3
	s.PageSize = 25

	got, err := FromValues(s.Values())
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if !CriteriaEqual(got, s) {
		t.Errorf("criteria mismatch:\n got %+v\nwant %+v", got, s)
	}
	if got.Page != 3 || got.PageSize != 25 {
		t.Errorf("pagination mismatch: page=%d size=%d", got.Page, got.PageSize)
	}
}

func TestFromValuesRejectsBadInput(t *testing.T) {
	for _, raw := range []string{
		"time_range=2y",
		"types=firewall,bogus",
		"actions=allowish",
		"directions=sideways",
		"page=0",
		"page_size=-1",
		"order=upward",
	} {
		v, err := url.ParseQuery(raw)
		if err != nil {
			t.Fatalf("ParseQuery(%q): %v", raw, err)
		}
		if _, err := FromValues(v); err == nil {
			t.Errorf("FromValues(%q): expected error", raw)
		}
	}
}

func TestCountProbe(t *testing.T) {
	s := Default()
	s.Page = 4
	s.Types = []LogType{TypeVPN}
	probe := s.CountProbe()
	if probe.Page != 1 || probe.PageSize != 1 {
		t.Errorf("probe pagination: page=%d size=%d", probe.Page, probe.PageSize)
	}
	if !CriteriaEqual(probe, s) {
		t.Error("probe must carry the same criteria")
	}
}
