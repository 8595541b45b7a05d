package main

import (
	"testing"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

func TestStateFlagsDefaults(t *testing.T) {
	f := stateFlags{
		timeRange: string(filter.DefaultTimeRange),
		page:      1,
		pageSize:  filter.DefaultPageSize,
		order:     string(filter.OrderDesc),
	}
	st, err := f.state()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if !filter.CriteriaEqual(st, filter.Default()) {
		t.Errorf("defaults diverge: %+v", st)
	}
}

func TestStateFlagsParsesLists(t *testing.T) {
	f := stateFlags{
		timeRange:  "7d",
		types:      "firewall,ids",
		actions:    "deny",
		directions: "in",
		vpnOnly:    true,
		ip:         "192.168.",
		page:       3,
		pageSize:   25,
		order:      "asc",
	}
	st, err := f.state()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if st.TimeRange != filter.Range7d {
		t.Errorf("TimeRange = %v", st.TimeRange)
	}
	if len(st.Types) != 2 || st.Types[0] != filter.TypeFirewall {
		t.Errorf("Types = %v", st.Types)
	}
	if !st.VPNOnly || st.Page != 3 || st.PageSize != 25 || st.SortOrder != filter.OrderAsc {
		t.Errorf("parsed state = %+v", st)
	}
}

func TestStateFlagsRejectsUnknownMembers(t *testing.T) {
	tests := []stateFlags{
		{timeRange: "2fortnights", page: 1, pageSize: 50, order: "desc"},
		{timeRange: "24h", types: "syslog", page: 1, pageSize: 50, order: "desc"},
		{timeRange: "24h", actions: "drop", page: 1, pageSize: 50, order: "desc"},
		{timeRange: "24h", page: 1, pageSize: 50, order: "sideways"},
	}
	for i, f := range tests {
		if _, err := f.state(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestResolveConfigEnvFallback(t *testing.T) {
	flagURL = defaultURL
	flagKey = ""
	t.Setenv("ULOG_URL", "http://gateway:9999")
	t.Setenv("ULOG_API_KEY", "from-env")
	t.Setenv("HOME", t.TempDir()) // no config file

	resolveConfig()
	if flagURL != "http://gateway:9999" {
		t.Errorf("flagURL = %q", flagURL)
	}
	if flagKey != "from-env" {
		t.Errorf("flagKey = %q", flagKey)
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	flagURL = "http://explicit:1234"
	flagKey = "explicit-key"
	t.Setenv("ULOG_URL", "http://gateway:9999")
	t.Setenv("ULOG_API_KEY", "from-env")

	resolveConfig()
	if flagURL != "http://explicit:1234" {
		t.Errorf("flagURL = %q", flagURL)
	}
	if flagKey != "explicit-key" {
		t.Errorf("flagKey = %q", flagKey)
	}
}
