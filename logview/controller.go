// Package logview implements the live filtered stream controller driving a
// continuously updating, paginated view over a remote log dataset.
package logview

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/phersys/unifi-log-insight-sub001/client"
	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// Backend is the slice of the log API the controller consumes.
// *client.LogService satisfies it.
type Backend interface {
	Query(ctx context.Context, st filter.State) (*client.ResultPage, error)
	Count(ctx context.Context, st filter.State) (int, error)
	Get(ctx context.Context, id string) (*client.LogRecord, error)
}

// CatalogLoader loads autocomplete catalogs. *client.CatalogService
// satisfies it. Load failures degrade to empty catalogs.
type CatalogLoader interface {
	Services(ctx context.Context) ([]string, error)
	Interfaces(ctx context.Context) ([]client.InterfaceInfo, error)
}

// Defaults for timer cadences.
const (
	DefaultPollInterval  = 5 * time.Second
	DefaultDebounceDelay = 400 * time.Millisecond
)

// Config holds controller dependencies and tuning.
type Config struct {
	Backend Backend
	Catalog CatalogLoader // optional
	Store   Store         // optional, remembered filter choices
	Log     *logrus.Logger

	// OnUpdate receives every committed state change. It is invoked with
	// the controller lock held: render from the snapshot, do not call back
	// into the controller.
	OnUpdate func(Snapshot)

	PollInterval    time.Duration // default 5s
	ProbeInterval   time.Duration // default PollInterval
	DebounceDelay   time.Duration // default 400ms
	MaxLookbackDays int           // 0 means uncapped
}

// Snapshot is the immutable view handed to the presentation layer.
type Snapshot struct {
	Filters       filter.State
	Page          *client.ResultPage
	Detail        *client.LogRecord
	DetailID      string
	Mode          Mode
	Live          bool
	AutoRefresh   bool
	Loading       bool
	PendingCount  int
	Err           error
	Services      []string
	Interfaces    []client.InterfaceInfo
	HiddenColumns []string
}

// Controller owns the filter state, the visible result page and every timer
// serving the view. All mutation is serialized under one mutex; overlapping
// fetches reconcile through sequence numbers (see reconciler.go).
type Controller struct {
	backend Backend
	catalog CatalogLoader
	store   Store
	log     *logrus.Logger

	onUpdate        func(Snapshot)
	pollInterval    time.Duration
	probeInterval   time.Duration
	debounceDelay   time.Duration
	maxLookbackDays int

	mu      sync.Mutex
	ctx     context.Context
	filters filter.State
	page    *client.ResultPage
	// lastTotal is the total of the last accepted fetch, -1 before the first.
	lastTotal int
	loading   bool
	lastErr   error

	enabled  bool
	detailID string
	detail   *client.LogRecord
	pending  int

	seq        uint64
	pollTimer  *time.Timer
	probeTimer *time.Timer
	debounce   map[TextField]*time.Timer

	services      []string
	interfaces    []client.InterfaceInfo
	hiddenColumns []string

	closed bool
}

// New creates a Controller. Call Start before use.
func New(cfg Config) *Controller {
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}
	c := &Controller{
		backend:         cfg.Backend,
		catalog:         cfg.Catalog,
		store:           cfg.Store,
		log:             log,
		onUpdate:        cfg.OnUpdate,
		pollInterval:    cfg.PollInterval,
		probeInterval:   cfg.ProbeInterval,
		debounceDelay:   cfg.DebounceDelay,
		maxLookbackDays: cfg.MaxLookbackDays,
		filters:         filter.Default(),
		lastTotal:       -1,
		enabled:         true,
		debounce:        make(map[TextField]*time.Timer),
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.probeInterval <= 0 {
		c.probeInterval = c.pollInterval
	}
	if c.debounceDelay <= 0 {
		c.debounceDelay = DefaultDebounceDelay
	}
	c.filters.Normalize(c.maxLookbackDays)
	return c
}

// Start loads remembered preferences and catalogs, issues the initial
// foreground fetch and arms the poll timer. The controller shuts down when
// ctx is cancelled.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	c.loadPrefs()
	c.loadCatalogs(ctx)

	c.mu.Lock()
	c.fetchLocked(false)
	c.rearmLocked()
	c.publishLocked()
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.Close()
	}()
}

// Close tears down every timer. Late fetch completions are dropped.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.pollTimer != nil {
		c.pollTimer.Stop()
		c.pollTimer = nil
	}
	if c.probeTimer != nil {
		c.probeTimer.Stop()
		c.probeTimer = nil
	}
	for f, t := range c.debounce {
		t.Stop()
		delete(c.debounce, f)
	}
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	mode := c.modeLocked()
	return Snapshot{
		Filters:       c.filters,
		Page:          c.page,
		Detail:        c.detail,
		DetailID:      c.detailID,
		Mode:          mode,
		Live:          mode == ModeLive,
		AutoRefresh:   c.enabled,
		Loading:       c.loading,
		PendingCount:  c.pending,
		Err:           c.lastErr,
		Services:      c.services,
		Interfaces:    c.interfaces,
		HiddenColumns: c.hiddenColumns,
	}
}

func (c *Controller) publishLocked() {
	if c.onUpdate != nil {
		c.onUpdate(c.snapshotLocked())
	}
}

// SetCriteria commits a whole new filter state from the presentation layer.
// The page is forced back to 1, any open detail closes and the pending count
// resets.
func (c *Controller) SetCriteria(st filter.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.commitCriteriaLocked(st)
	c.publishLocked()
}

// updateCriteria applies fn to a copy of the current filters and commits the
// result through the filter-change path.
func (c *Controller) updateCriteria(fn func(*filter.State) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	st := c.filters
	if err := fn(&st); err != nil {
		return err
	}
	c.commitCriteriaLocked(st)
	c.publishLocked()
	return nil
}

// commitCriteriaLocked is the single filter-change path: page forced to 1,
// detail closed, pending cleared, preferences saved, foreground fetch issued
// and timers re-armed.
func (c *Controller) commitCriteriaLocked(st filter.State) {
	st.Page = 1
	st.Normalize(c.maxLookbackDays)
	c.filters = st
	c.closeDetailLocked()
	c.setPendingLocked(0)
	c.savePrefsLocked()
	c.fetchLocked(false)
	c.rearmLocked()
}

// SetTimeRange selects a lookback window, clamped to the configured cap.
func (c *Controller) SetTimeRange(r filter.TimeRange) error {
	return c.updateCriteria(func(st *filter.State) error {
		st.TimeRange = r
		return nil
	})
}

// ToggleType flips membership of v in the log-type set.
func (c *Controller) ToggleType(v filter.LogType) error {
	return c.updateCriteria(func(st *filter.State) error {
		return st.ToggleType(v)
	})
}

// ToggleAction flips membership of v in the action set.
func (c *Controller) ToggleAction(v filter.Action) error {
	return c.updateCriteria(func(st *filter.State) error {
		return st.ToggleAction(v)
	})
}

// ToggleDirection flips membership of v in the direction set.
func (c *Controller) ToggleDirection(v filter.Direction) error {
	return c.updateCriteria(func(st *filter.State) error {
		return st.ToggleDirection(v)
	})
}

// SetVPNOnly restricts the view to VPN traffic. Enabling it clears the
// direction set.
func (c *Controller) SetVPNOnly(on bool) error {
	return c.updateCriteria(func(st *filter.State) error {
		st.VPNOnly = on
		return nil
	})
}

// ToggleService flips membership of v against the loaded service catalog.
func (c *Controller) ToggleService(v string) error {
	return c.updateCriteria(func(st *filter.State) error {
		return st.ToggleService(v, c.services)
	})
}

// ToggleInterface flips membership of v against the loaded interface catalog.
func (c *Controller) ToggleInterface(v string) error {
	return c.updateCriteria(func(st *filter.State) error {
		return st.ToggleInterface(v, c.interfaceNamesLocked())
	})
}

// ResetFilters discards all criteria and returns to the baseline state.
func (c *Controller) ResetFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.commitCriteriaLocked(filter.Default())
	c.publishLocked()
}

// SetPage moves to another page. Pages other than 1 are point-in-time
// snapshots: polling suspends until the view returns to page 1.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if page < 1 {
		page = 1
	}
	c.filters.Page = page
	c.closeDetailLocked()
	c.setPendingLocked(0)
	c.fetchLocked(false)
	c.rearmLocked()
	c.publishLocked()
}

// SetPageSize changes the page size, keeping the current page.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || size < 1 {
		return
	}
	c.filters.PageSize = size
	c.closeDetailLocked()
	c.setPendingLocked(0)
	c.fetchLocked(false)
	c.rearmLocked()
	c.publishLocked()
}

// ToggleDetail expands the record with the given id, closing any other. A
// second toggle on the open record closes it and triggers one foreground
// fetch to resynchronize with whatever changed while paused.
func (c *Controller) ToggleDetail(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || id == "" {
		return
	}
	if c.detailID == id {
		c.closeDetailLocked()
		c.setPendingLocked(0)
		c.fetchLocked(false)
	} else {
		c.detailID = id
		c.detail = nil
		c.setPendingLocked(0)
		c.loadDetailLocked(id)
	}
	c.rearmLocked()
	c.publishLocked()
}

// SetAutoRefresh toggles live polling. Disabling it also clears the pending
// count.
func (c *Controller) SetAutoRefresh(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.enabled == on {
		return
	}
	c.enabled = on
	c.setPendingLocked(0)
	c.rearmLocked()
	c.publishLocked()
}

// Refresh issues an immediate user-initiated fetch.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.fetchLocked(false)
	c.rearmLocked()
	c.publishLocked()
}

// SetHiddenColumns remembers the presentation layer's hidden column set.
func (c *Controller) SetHiddenColumns(cols []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.hiddenColumns = cols
	c.saveHiddenColumnsLocked()
	c.publishLocked()
}

func (c *Controller) closeDetailLocked() {
	c.detailID = ""
	c.detail = nil
}

// loadDetailLocked fetches the full record asynchronously. The result is
// applied only if the same detail is still open on arrival.
func (c *Controller) loadDetailLocked(id string) {
	ctx := c.fetchCtxLocked()
	go func() {
		rec, err := c.backend.Get(ctx, id)
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.detailID != id {
			return
		}
		if err != nil {
			c.log.WithError(err).WithField("id", id).Warn("detail fetch failed")
			c.lastErr = err
		} else {
			c.detail = rec
		}
		c.publishLocked()
	}()
}

func (c *Controller) fetchCtxLocked() context.Context {
	if c.ctx != nil {
		return c.ctx
	}
	return context.Background()
}

func (c *Controller) interfaceNamesLocked() []string {
	names := make([]string, len(c.interfaces))
	for i, in := range c.interfaces {
		names[i] = in.Name
	}
	return names
}

// loadCatalogs fetches both autocomplete catalogs in parallel. Failures
// degrade to empty lists rather than blocking the view.
func (c *Controller) loadCatalogs(ctx context.Context) {
	if c.catalog == nil {
		return
	}
	var (
		services []string
		ifaces   []client.InterfaceInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.catalog.Services(gctx)
		if err != nil {
			c.log.WithError(err).Warn("service catalog unavailable")
			return nil
		}
		services = s
		return nil
	})
	g.Go(func() error {
		in, err := c.catalog.Interfaces(gctx)
		if err != nil {
			c.log.WithError(err).Warn("interface catalog unavailable")
			return nil
		}
		ifaces = in
		return nil
	})
	g.Wait() //nolint:errcheck // loaders never return errors

	c.mu.Lock()
	c.services = services
	c.interfaces = ifaces
	c.mu.Unlock()
}
