package client

import "time"

// LogRecord is a single gateway log entry as returned by the query endpoint.
type LogRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	Direction string    `json:"direction"`
	VPN       bool      `json:"vpn"`
	SourceIP  string    `json:"source_ip"`
	DestIP    string    `json:"dest_ip"`
	SrcPort   int       `json:"src_port,omitempty"`
	DstPort   int       `json:"dst_port,omitempty"`
	Protocol  string    `json:"protocol,omitempty"`
	Rule      string    `json:"rule,omitempty"`
	Service   string    `json:"service,omitempty"`
	Interface string    `json:"interface"`
	Message   string    `json:"message,omitempty"`

	// Detail carries per-record extras only present on the detail endpoint.
	Detail map[string]any `json:"detail,omitempty"`
}

// ResultPage is one page of matching records plus the total match count.
// It is replaced wholesale on every accepted fetch, never mutated.
type ResultPage struct {
	Data  []LogRecord `json:"data"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// InterfaceInfo describes a network interface for autocomplete.
type InterfaceInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Type   string `json:"type"`
	VLANID *int   `json:"vlan_id,omitempty"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
