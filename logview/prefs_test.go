package logview

import (
	"errors"
	"slices"
	"testing"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, error) {
	return m.data[key], nil
}

func (m *memStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(key string) error {
	delete(m.data, key)
	return nil
}

// brokenStore fails every call, like a private-browsing storage layer.
type brokenStore struct{}

func (brokenStore) Get(string) (string, error)    { return "", errors.New("storage unavailable") }
func (brokenStore) Set(string, string) error      { return errors.New("storage unavailable") }
func (brokenStore) Remove(string) error           { return errors.New("storage unavailable") }

func TestPrefsRoundTrip(t *testing.T) {
	store := newMemStore()

	c, b := startController(t, Config{Store: store}, 10)
	if err := c.ToggleType(filter.TypeDHCP); err != nil {
		t.Fatalf("ToggleType: %v", err)
	}
	b.next(t).respond(5, "seed")

	if store.data[prefTypes] == "" {
		t.Fatal("type selection not persisted")
	}
	if _, present := store.data[prefActions]; present {
		t.Error("unfiltered action set must round-trip as absence")
	}

	// A fresh controller with the same store restores the selection.
	c2, b2 := startController(t, Config{Store: store}, 10)
	defer c2.Close()
	_ = b2
	got := c2.Snapshot().Filters.Types
	want := []filter.LogType{filter.TypeFirewall, filter.TypeDNS, filter.TypeVPN, filter.TypeIDS}
	if !slices.Equal(got, want) {
		t.Errorf("restored types = %v, want %v", got, want)
	}
}

func TestPrefsIgnoreUnknownMembers(t *testing.T) {
	store := newMemStore()
	store.data[prefTypes] = "firewall,flux-capacitor"
	store.data[prefDirections] = "in,out" // full domain collapses to absence

	c, _ := startController(t, Config{Store: store}, 10)
	s := c.Snapshot()
	if !slices.Equal(s.Filters.Types, []filter.LogType{filter.TypeFirewall}) {
		t.Errorf("types = %v, want [firewall]", s.Filters.Types)
	}
	if s.Filters.Directions != nil {
		t.Errorf("full stored domain should load as nil, got %v", s.Filters.Directions)
	}
}

func TestBrokenStoreNeverAffectsCore(t *testing.T) {
	c, b := startController(t, Config{Store: brokenStore{}}, 10)

	if err := c.ToggleAction(filter.ActionDeny); err != nil {
		t.Fatalf("ToggleAction with broken store: %v", err)
	}
	qc := b.next(t)
	if !slices.Contains(qc.st.Actions, filter.ActionAllow) {
		t.Errorf("committed actions = %v", qc.st.Actions)
	}
	qc.respond(4, "seed")

	s := waitFor(t, c, func(s Snapshot) bool { return s.Page.Total == 4 })
	if s.Err != nil {
		t.Errorf("store failure surfaced: %v", s.Err)
	}
}

func TestHiddenColumnsPersisted(t *testing.T) {
	store := newMemStore()
	c, _ := startController(t, Config{Store: store}, 10)

	c.SetHiddenColumns([]string{"protocol", "service"})
	if store.data[prefHiddenColumns] != "protocol,service" {
		t.Errorf("hidden columns not persisted: %q", store.data[prefHiddenColumns])
	}

	c2, _ := startController(t, Config{Store: store}, 10)
	if got := c2.Snapshot().HiddenColumns; !slices.Equal(got, []string{"protocol", "service"}) {
		t.Errorf("restored hidden columns = %v", got)
	}
}
