package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phersys/unifi-log-insight-sub001/filter"
)

// stateFlags collects the filter criteria flags shared by query and export.
type stateFlags struct {
	timeRange  string
	types      string
	actions    string
	directions string
	vpnOnly    bool
	ip         string
	rule       string
	search     string
	services   string
	interfaces string
	page       int
	pageSize   int
	order      string
}

func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.timeRange, "range", string(filter.DefaultTimeRange), "Lookback window: 1h|6h|24h|7d|30d|60d|90d|180d|365d")
	cmd.Flags().StringVar(&f.types, "types", "", "Comma-separated log types (firewall,dns,dhcp,vpn,ids)")
	cmd.Flags().StringVar(&f.actions, "actions", "", "Comma-separated actions (allow,deny,reject)")
	cmd.Flags().StringVar(&f.directions, "directions", "", "Comma-separated directions (in,out)")
	cmd.Flags().BoolVar(&f.vpnOnly, "vpn", false, "Only VPN traffic")
	cmd.Flags().StringVar(&f.ip, "ip", "", "Match source or destination IP (substring)")
	cmd.Flags().StringVar(&f.rule, "rule", "", "Match rule name (substring)")
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&f.services, "services", "", "Comma-separated service names")
	cmd.Flags().StringVar(&f.interfaces, "interfaces", "", "Comma-separated interface names")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", filter.DefaultPageSize, "Records per page")
	cmd.Flags().StringVar(&f.order, "order", string(filter.OrderDesc), "Sort order: asc|desc")
}

// state validates the flags through the same parser the server uses.
func (f *stateFlags) state() (filter.State, error) {
	v := url.Values{}
	v.Set("time_range", f.timeRange)
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("types", f.types)
	set("actions", f.actions)
	set("directions", f.directions)
	set("ip", f.ip)
	set("rule", f.rule)
	set("search", f.search)
	set("services", f.services)
	set("interfaces", f.interfaces)
	if f.vpnOnly {
		v.Set("vpn_only", "true")
	}
	v.Set("page", strconv.Itoa(f.page))
	v.Set("page_size", strconv.Itoa(f.pageSize))
	v.Set("order", f.order)
	return filter.FromValues(v)
}

func newQueryCmd() *cobra.Command {
	var flags stateFlags
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query one page of matching log records",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			st, err := flags.state()
			if err != nil {
				fatal("invalid criteria", err)
			}
			page, err := apiClient.Logs.Query(context.Background(), st)
			if err != nil {
				fatal("query", err)
			}
			output(page)
		},
	}
	flags.register(cmd)
	return cmd
}
