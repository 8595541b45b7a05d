package logview

import (
	"testing"
	"time"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

func TestDebounceCoalescesRapidEdits(t *testing.T) {
	c, b := startController(t, Config{DebounceDelay: 30 * time.Millisecond}, 10)

	c.SetText(FieldIP, "1")
	c.SetText(FieldIP, "10.")
	c.SetText(FieldIP, "10.0.0.1")

	qc := b.next(t)
	if got := qc.st.IP; got != "10.0.0.1" {
		t.Fatalf("committed ip %q, want the final edit", got)
	}
	qc.respond(1, "seed")

	// Only the final keystroke commits.
	b.expectQuiet(t, 80*time.Millisecond)
}

func TestDebounceFieldsIndependent(t *testing.T) {
	c, b := startController(t, Config{DebounceDelay: 30 * time.Millisecond}, 10)

	c.SetText(FieldRule, "lan-block")
	time.Sleep(15 * time.Millisecond)
	// A later edit to another field must not reset the rule timer.
	c.SetText(FieldSearch, "dns")

	first := b.next(t)
	if first.st.Rule != "lan-block" {
		t.Fatalf("first commit should be the rule edit, got %+v", first.st)
	}
	first.respond(2, "seed")

	second := b.next(t)
	if second.st.Search != "dns" || second.st.Rule != "lan-block" {
		t.Fatalf("second commit must merge both edits, got rule=%q search=%q",
			second.st.Rule, second.st.Search)
	}
	second.respond(1, "seed")
}

func TestClearBypassesDebounce(t *testing.T) {
	c, b := startController(t, Config{DebounceDelay: time.Hour}, 10)

	c.SetText(FieldSearch, "pending edit")
	c.SetText(FieldSearch, "")

	qc := b.next(t)
	if qc.st.Search != "" {
		t.Fatalf("clear must commit empty immediately, got %q", qc.st.Search)
	}
	qc.respond(10, "seed")

	// The buffered edit was cancelled by the clear.
	b.expectQuiet(t, 60*time.Millisecond)
}

func TestDebounceMergesIntoLiveFilterState(t *testing.T) {
	c, b := startController(t, Config{DebounceDelay: 40 * time.Millisecond}, 10)

	c.SetText(FieldIP, "192.168.1.50")
	// A toggle commits before the debounce fires; the text edit must land on
	// top of it (last-write-wins against the state at fire time).
	if err := c.ToggleType(filter.TypeDNS); err != nil {
		t.Fatalf("ToggleType: %v", err)
	}
	b.next(t).respond(8, "seed")

	fired := b.next(t)
	if fired.st.IP != "192.168.1.50" {
		t.Fatalf("ip not merged: %q", fired.st.IP)
	}
	if fired.st.Types == nil {
		t.Fatal("debounced commit lost the concurrent type toggle")
	}
	fired.respond(3, "seed")

	s := waitFor(t, c, func(s Snapshot) bool { return s.Page.Total == 3 })
	if s.Filters.Page != 1 {
		t.Errorf("debounced commit must force page 1, got %d", s.Filters.Page)
	}
}
