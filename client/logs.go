package client

import (
	"context"
	"fmt"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// LogService handles log query operations.
type LogService struct {
	c *Client
}

// Query returns one page of log records matching the given criteria.
func (s *LogService) Query(ctx context.Context, st filter.State) (*ResultPage, error) {
	var resp ResultPage
	if err := s.c.get(ctx, "/api/v1/logs", st.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Count returns only the total number of records matching the criteria,
// using the smallest possible page so no record payload is transferred.
func (s *LogService) Count(ctx context.Context, st filter.State) (int, error) {
	page, err := s.Query(ctx, st.CountProbe())
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

// Get returns the full record for a single log entry.
func (s *LogService) Get(ctx context.Context, id string) (*LogRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("id must not be empty")
	}
	var resp LogRecord
	if err := s.c.get(ctx, "/api/v1/logs/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ExportURL builds the CSV export URL for the given criteria. Pure function,
// no network.
func (s *LogService) ExportURL(st filter.State) string {
	return s.c.baseURL + "/api/v1/logs/export?" + st.Values().Encode()
}
