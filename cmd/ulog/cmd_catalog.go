package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the filterable catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "services",
		Short: "List known service names",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			services, err := apiClient.Catalog.Services(context.Background())
			if err != nil {
				fatal("catalog services", err)
			}
			if flagFmt == "json" {
				formatJSON(services)
				return
			}
			for _, s := range services {
				fmt.Println(s)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "interfaces",
		Short: "List known network interfaces",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ifaces, err := apiClient.Catalog.Interfaces(context.Background())
			if err != nil {
				fatal("catalog interfaces", err)
			}
			if flagFmt == "json" {
				formatJSON(ifaces)
				return
			}
			headers := []string{"NAME", "LABEL", "TYPE", "VLAN"}
			rows := make([][]string, 0, len(ifaces))
			for _, in := range ifaces {
				vlan := ""
				if in.VLANID != nil {
					vlan = fmt.Sprintf("%d", *in.VLANID)
				}
				rows = append(rows, []string{in.Name, in.Label, in.Type, vlan})
			}
			formatTable(headers, rows)
		},
	})

	return cmd
}
