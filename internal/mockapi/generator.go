package mockapi

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/phersys/unifi-log-insight-sub001/client"
	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// Catalog data served by the catalog endpoints and drawn from by the
// generator.
var (
	knownServices = []string{
		"ssh", "https", "dns", "ntp", "smtp", "rdp", "smb", "mdns", "dhcp", "wireguard",
	}

	knownInterfaces = []client.InterfaceInfo{
		{Name: "eth0", Label: "WAN", Type: "wan"},
		{Name: "br0", Label: "LAN", Type: "lan"},
		{Name: "br10", Label: "IoT", Type: "vlan", VLANID: intPtr(10)},
		{Name: "br20", Label: "Guest", Type: "vlan", VLANID: intPtr(20)},
		{Name: "wg0", Label: "WireGuard", Type: "vpn"},
	}
)

func intPtr(v int) *int { return &v }

var (
	genRules = []string{
		"LAN_IN-2000", "LAN_IN-2001", "WAN_LOCAL-3000", "GUEST_OUT-4000",
		"IoT isolation", "Block RFC1918 on WAN", "Allow established",
	}
	genProtocols = []string{"tcp", "udp", "icmp"}
	genMessages  = []string{
		"connection attempt",
		"policy match",
		"session established",
		"session closed",
		"signature matched",
	}
)

// Generator produces synthetic log records and appends them to a store.
type Generator struct {
	store *Store
	rng   *rand.Rand
}

// NewGenerator creates a generator. Pass a fixed seed for deterministic
// output in tests.
func NewGenerator(store *Store, seed int64) *Generator {
	return &Generator{store: store, rng: rand.New(rand.NewSource(seed))}
}

// Seed fills the store with n records spread over the last 30 days.
func (g *Generator) Seed(n int) {
	now := time.Now()
	recs := make([]client.LogRecord, 0, n)
	for i := 0; i < n; i++ {
		age := time.Duration(g.rng.Int63n(int64(30 * 24 * time.Hour)))
		recs = append(recs, g.record(now.Add(-age)))
	}
	g.store.Append(recs...)
}

// Run appends one fresh record per interval until ctx is cancelled.
func (g *Generator) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.store.Append(g.record(time.Now()))
		}
	}
}

func (g *Generator) record(ts time.Time) client.LogRecord {
	typ := filter.LogTypes[g.rng.Intn(len(filter.LogTypes))]
	iface := knownInterfaces[g.rng.Intn(len(knownInterfaces))]
	vpn := iface.Type == "vpn" || g.rng.Intn(10) == 0

	rec := client.LogRecord{
		ID:        uuid.New().String(),
		Timestamp: ts,
		Type:      string(typ),
		Action:    string(filter.Actions[g.rng.Intn(len(filter.Actions))]),
		Direction: string(filter.Directions[g.rng.Intn(len(filter.Directions))]),
		VPN:       vpn,
		SourceIP:  g.privateIP(),
		DestIP:    g.publicIP(),
		SrcPort:   1024 + g.rng.Intn(64000),
		DstPort:   []int{22, 53, 80, 123, 443, 3389}[g.rng.Intn(6)],
		Protocol:  genProtocols[g.rng.Intn(len(genProtocols))],
		Rule:      genRules[g.rng.Intn(len(genRules))],
		Service:   knownServices[g.rng.Intn(len(knownServices))],
		Interface: iface.Name,
	}
	rec.Message = fmt.Sprintf("%s %s %s:%d -> %s:%d",
		rec.Rule, genMessages[g.rng.Intn(len(genMessages))],
		rec.SourceIP, rec.SrcPort, rec.DestIP, rec.DstPort)
	return rec
}

func (g *Generator) privateIP() string {
	return fmt.Sprintf("192.168.%d.%d", g.rng.Intn(30), 2+g.rng.Intn(250))
}

func (g *Generator) publicIP() string {
	return fmt.Sprintf("%d.%d.%d.%d", 1+g.rng.Intn(220), g.rng.Intn(256), g.rng.Intn(256), 1+g.rng.Intn(250))
}
