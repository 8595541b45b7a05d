package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch the full detail of one log record",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rec, err := apiClient.Logs.Get(context.Background(), args[0])
			if err != nil {
				fatal("get", err)
			}
			if flagFmt == "json" {
				formatJSON(rec)
				return
			}
			fmt.Printf("%s  %s %s/%s %s\n", rec.Timestamp.Format("2006-01-02 15:04:05"),
				rec.Type, rec.Action, rec.Direction, rec.Interface)
			fmt.Printf("  %s -> %s\n", hostPort(rec.SourceIP, rec.SrcPort), hostPort(rec.DestIP, rec.DstPort))
			if rec.Rule != "" {
				fmt.Printf("  rule: %s\n", rec.Rule)
			}
			if rec.Message != "" {
				fmt.Printf("  %s\n", rec.Message)
			}
			for k, v := range rec.Detail {
				fmt.Printf("  %s: %v\n", k, v)
			}
		},
	}
}
