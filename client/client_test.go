package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithAPIKey("test-key"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "0.3.0"})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("got status %q, want ok", resp.Status)
	}
}

func TestLogsQuery(t *testing.T) {
	var gotQuery map[string][]string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/logs": func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			jsonResponse(w, 200, ResultPage{
				Data:  []LogRecord{{ID: "l1", Type: "firewall", Action: "deny"}},
				Total: 41, Page: 2, Pages: 21,
			})
		},
	})

	st := filter.Default()
	st.Page = 2
	st.PageSize = 2
	st.Actions = []filter.Action{filter.ActionDeny}
	st.IP = "192.168.1.7"

	page, err := c.Logs.Query(context.Background(), st)
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if page.Total != 41 || len(page.Data) != 1 {
		t.Errorf("got total=%d len=%d", page.Total, len(page.Data))
	}
	if got := gotQuery["actions"]; len(got) != 1 || got[0] != "deny" {
		t.Errorf("actions param: %v", got)
	}
	if got := gotQuery["ip"]; len(got) != 1 || got[0] != "192.168.1.7" {
		t.Errorf("ip param: %v", got)
	}
	if _, present := gotQuery["types"]; present {
		t.Error("unfiltered types must be omitted from the query")
	}
}

func TestLogsCountUsesProbePage(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/logs": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page_size") != "1" || r.URL.Query().Get("page") != "1" {
				t.Errorf("count probe must use page=1 page_size=1, got %s", r.URL.RawQuery)
			}
			jsonResponse(w, 200, ResultPage{Total: 123, Page: 1, Pages: 123})
		},
	})

	st := filter.Default()
	st.Page = 5
	total, err := c.Logs.Count(context.Background(), st)
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if total != 123 {
		t.Errorf("got total %d, want 123", total)
	}
}

func TestLogsGetNotFound(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/logs/missing": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "message": "no such record"})
		},
	})

	_, err := c.Logs.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not found, got: %v", err)
	}
}

func TestExportURL(t *testing.T) {
	c := New("http://gw.local:3060")
	st := filter.Default()
	st.Types = []filter.LogType{filter.TypeFirewall}

	u := c.Logs.ExportURL(st)
	if !strings.HasPrefix(u, "http://gw.local:3060/api/v1/logs/export?") {
		t.Errorf("unexpected export url: %s", u)
	}
	if !strings.Contains(u, "types=firewall") {
		t.Errorf("export url missing filter params: %s", u)
	}
}

func TestCatalog(t *testing.T) {
	vlan := 30
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/catalog/services": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{"services": []string{"dns", "https"}})
		},
		"GET /api/v1/catalog/interfaces": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{"interfaces": []InterfaceInfo{
				{Name: "eth0", Label: "WAN", Type: "wan"},
				{Name: "br30", Label: "IoT", Type: "vlan", VLANID: &vlan},
			}})
		},
	})

	ctx := context.Background()

	services, err := c.Catalog.Services(ctx)
	if err != nil || len(services) != 2 {
		t.Fatalf("Services: err=%v, len=%d", err, len(services))
	}

	ifaces, err := c.Catalog.Interfaces(ctx)
	if err != nil || len(ifaces) != 2 {
		t.Fatalf("Interfaces: err=%v, len=%d", err, len(ifaces))
	}
	if ifaces[1].VLANID == nil || *ifaces[1].VLANID != 30 {
		t.Errorf("vlan id not decoded: %+v", ifaces[1])
	}
}

func TestAuthAndRequestIDHeaders(t *testing.T) {
	var gotAuth, gotReqID string
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotReqID = r.Header.Get("X-Request-ID")
			jsonResponse(w, 200, HealthResponse{Status: "ok"})
		},
	})

	c.Health(context.Background()) //nolint:errcheck
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header: got %q", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected X-Request-ID header on every request")
	}
}

func TestTimeoutOption(t *testing.T) {
	c := New("http://localhost:1", WithTimeout(time.Millisecond))
	if c.httpClient.Timeout != time.Millisecond {
		t.Errorf("timeout not applied: %v", c.httpClient.Timeout)
	}
}
