// Package filter defines the canonical query criteria for the live log view
// and their compact wire encoding.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// LogType classifies a log record by subsystem.
type LogType string

// Selectable log types.
const (
	TypeFirewall LogType = "firewall"
	TypeDNS      LogType = "dns"
	TypeDHCP     LogType = "dhcp"
	TypeVPN      LogType = "vpn"
	TypeIDS      LogType = "ids"
)

// LogTypes is the full log-type domain.
var LogTypes = []LogType{TypeFirewall, TypeDNS, TypeDHCP, TypeVPN, TypeIDS}

// Action is the verdict a rule applied to a flow.
type Action string

// Selectable actions.
const (
	ActionAllow  Action = "allow"
	ActionDeny   Action = "deny"
	ActionReject Action = "reject"
)

// Actions is the full action domain.
var Actions = []Action{ActionAllow, ActionDeny, ActionReject}

// Direction indicates traffic orientation relative to the gateway.
type Direction string

// Selectable directions.
const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// Directions is the full direction domain.
var Directions = []Direction{DirectionIn, DirectionOut}

// Order is a sort direction.
type Order string

// Sort orders.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Defaults applied by Default and Reset.
const (
	DefaultTimeRange = Range24h
	DefaultPageSize  = 50
	DefaultSortKey   = "timestamp"
)

// ErrLastMember is returned when a toggle would deselect the only remaining
// member of a multi-valued field.
var ErrLastMember = errors.New("cannot deselect the last active member")

// State is the single source of truth for query criteria. A nil multi-valued
// field means every member of its domain is selected (the canonical
// unfiltered form); an explicit slice is always a strict subset.
type State struct {
	TimeRange  TimeRange
	Types      []LogType
	Actions    []Action
	Directions []Direction
	VPNOnly    bool

	IP     string
	Rule   string
	Search string

	Services   []string
	Interfaces []string

	Page     int
	PageSize int

	SortKey   string
	SortOrder Order
}

// Default returns the baseline state: default time range, first page,
// default page size, no criteria.
func Default() State {
	return State{
		TimeRange: DefaultTimeRange,
		Page:      1,
		PageSize:  DefaultPageSize,
		SortKey:   DefaultSortKey,
		SortOrder: OrderDesc,
	}
}

// toggle flips membership of v in the active set against the full domain.
// A nil active set stands for the full domain. The result collapses back to
// nil when it equals the domain and stays an explicit subset otherwise.
func toggle[T comparable](active, domain []T, v T) ([]T, error) {
	if !slices.Contains(domain, v) {
		return nil, fmt.Errorf("%v is not a selectable value", v)
	}
	cur := active
	if cur == nil {
		cur = domain
	}
	next := make([]T, 0, len(cur)+1)
	if i := slices.Index(cur, v); i >= 0 {
		if len(cur) == 1 {
			return nil, ErrLastMember
		}
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
	} else {
		next = append(next, cur...)
		next = append(next, v)
	}
	if sameMembers(next, domain) {
		return nil, nil
	}
	return next, nil
}

func sameMembers[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range b {
		if !slices.Contains(a, v) {
			return false
		}
	}
	return true
}

// ToggleType flips membership of v in the log-type set.
func (s *State) ToggleType(v LogType) error {
	next, err := toggle(s.Types, LogTypes, v)
	if err != nil {
		return err
	}
	s.Types = next
	return nil
}

// ToggleAction flips membership of v in the action set.
func (s *State) ToggleAction(v Action) error {
	next, err := toggle(s.Actions, Actions, v)
	if err != nil {
		return err
	}
	s.Actions = next
	return nil
}

// ToggleDirection flips membership of v in the direction set.
func (s *State) ToggleDirection(v Direction) error {
	next, err := toggle(s.Directions, Directions, v)
	if err != nil {
		return err
	}
	s.Directions = next
	return nil
}

// ToggleService flips membership of v in the service set against the loaded
// service catalog.
func (s *State) ToggleService(v string, catalog []string) error {
	next, err := toggle(s.Services, catalog, v)
	if err != nil {
		return err
	}
	s.Services = next
	return nil
}

// ToggleInterface flips membership of v in the interface set against the
// loaded interface catalog.
func (s *State) ToggleInterface(v string, catalog []string) error {
	next, err := toggle(s.Interfaces, catalog, v)
	if err != nil {
		return err
	}
	s.Interfaces = next
	return nil
}

// Normalize repairs the state in place: the time range is clamped to
// maxLookbackDays, VPN-only clears the direction set (VPN traffic spans all
// directions) and pagination floors are applied.
func (s *State) Normalize(maxLookbackDays int) {
	if !s.TimeRange.Valid() {
		s.TimeRange = DefaultTimeRange
	}
	s.TimeRange = s.TimeRange.Clamp(maxLookbackDays)
	if s.VPNOnly {
		s.Directions = nil
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.SortKey == "" {
		s.SortKey = DefaultSortKey
	}
	if s.SortOrder != OrderAsc {
		s.SortOrder = OrderDesc
	}
}

// CountProbe returns a copy of s suitable for a count-only probe: first page,
// smallest page size, same criteria.
func (s State) CountProbe() State {
	s.Page = 1
	s.PageSize = 1
	return s
}

// CriteriaEqual reports whether a and b agree on everything except
// pagination.
func CriteriaEqual(a, b State) bool {
	return a.TimeRange == b.TimeRange &&
		slices.Equal(a.Types, b.Types) &&
		slices.Equal(a.Actions, b.Actions) &&
		slices.Equal(a.Directions, b.Directions) &&
		a.VPNOnly == b.VPNOnly &&
		a.IP == b.IP && a.Rule == b.Rule && a.Search == b.Search &&
		slices.Equal(a.Services, b.Services) &&
		slices.Equal(a.Interfaces, b.Interfaces) &&
		a.SortKey == b.SortKey && a.SortOrder == b.SortOrder
}

// Values encodes the state as query parameters, omitting absent fields.
// Multi-valued fields are comma-joined.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set("time_range", string(s.TimeRange))
	if s.Types != nil {
		v.Set("types", joinList(s.Types))
	}
	if s.Actions != nil {
		v.Set("actions", joinList(s.Actions))
	}
	if s.Directions != nil {
		v.Set("directions", joinList(s.Directions))
	}
	if s.VPNOnly {
		v.Set("vpn_only", "true")
	}
	if s.IP != "" {
		v.Set("ip", s.IP)
	}
	if s.Rule != "" {
		v.Set("rule", s.Rule)
	}
	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Services != nil {
		v.Set("services", strings.Join(s.Services, ","))
	}
	if s.Interfaces != nil {
		v.Set("interfaces", strings.Join(s.Interfaces, ","))
	}
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("page_size", strconv.Itoa(s.PageSize))
	v.Set("sort", s.SortKey)
	v.Set("order", string(s.SortOrder))
	return v
}

// FromValues decodes query parameters produced by Values. Unknown members of
// enumerated fields are rejected; missing fields keep their unfiltered form.
func FromValues(v url.Values) (State, error) {
	s := Default()
	if tr := v.Get("time_range"); tr != "" {
		s.TimeRange = TimeRange(tr)
		if !s.TimeRange.Valid() {
			return s, fmt.Errorf("invalid time_range %q", tr)
		}
	}
	if raw := v.Get("types"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			t := LogType(p)
			if !slices.Contains(LogTypes, t) {
				return s, fmt.Errorf("invalid type %q", p)
			}
			s.Types = append(s.Types, t)
		}
	}
	if raw := v.Get("actions"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			a := Action(p)
			if !slices.Contains(Actions, a) {
				return s, fmt.Errorf("invalid action %q", p)
			}
			s.Actions = append(s.Actions, a)
		}
	}
	if raw := v.Get("directions"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			d := Direction(p)
			if !slices.Contains(Directions, d) {
				return s, fmt.Errorf("invalid direction %q", p)
			}
			s.Directions = append(s.Directions, d)
		}
	}
	s.VPNOnly = v.Get("vpn_only") == "true"
	s.IP = v.Get("ip")
	s.Rule = v.Get("rule")
	s.Search = v.Get("search")
	if raw := v.Get("services"); raw != "" {
		s.Services = strings.Split(raw, ",")
	}
	if raw := v.Get("interfaces"); raw != "" {
		s.Interfaces = strings.Split(raw, ",")
	}
	if p := v.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return s, fmt.Errorf("invalid page %q", p)
		}
		s.Page = n
	}
	if ps := v.Get("page_size"); ps != "" {
		n, err := strconv.Atoi(ps)
		if err != nil || n < 1 {
			return s, fmt.Errorf("invalid page_size %q", ps)
		}
		s.PageSize = n
	}
	if sk := v.Get("sort"); sk != "" {
		s.SortKey = sk
	}
	if o := v.Get("order"); o != "" {
		s.SortOrder = Order(o)
		if s.SortOrder != OrderAsc && s.SortOrder != OrderDesc {
			return s, fmt.Errorf("invalid order %q", o)
		}
	}
	return s, nil
}

func joinList[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
