package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phersys/unifi-log-insight-sub001/internal/config"
	"github.com/phersys/unifi-log-insight-sub001/internal/prefstore"
	"github.com/phersys/unifi-log-insight-sub001/logview"
)

func newWatchCmd() *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously poll and display matching log records",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fatal("config", err)
			}

			log := logrus.New()
			log.SetOutput(os.Stderr)
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = logrus.InfoLevel
			}
			log.SetLevel(level)

			var store logview.Store
			if cfg.PrefsPath != "" {
				if ps, err := prefstore.Open(cfg.PrefsPath); err != nil {
					log.WithError(err).Warn("preferences unavailable")
				} else {
					store = ps
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c := logview.New(logview.Config{
				Backend:         apiClient.Logs,
				Catalog:         apiClient.Catalog,
				Store:           store,
				Log:             log,
				OnUpdate:        func(s logview.Snapshot) { render(s, rows) },
				PollInterval:    cfg.PollInterval,
				DebounceDelay:   cfg.DebounceDelay,
				MaxLookbackDays: cfg.MaxLookbackDays,
			})
			c.Start(ctx)
			<-ctx.Done()
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 15, "Rows to display per refresh")
	return cmd
}

// render redraws the view for one snapshot. It only reads the snapshot, it
// never calls back into the controller.
func render(s logview.Snapshot, rows int) {
	if s.Loading || s.Page == nil {
		return
	}
	fmt.Print("\033[H\033[2J") // clear screen
	recs := s.Page.Data
	if len(recs) > rows {
		recs = recs[:rows]
	}
	printLogTable(recs)
	status := fmt.Sprintf("%s | %d total | page %d/%d", s.Mode, s.Page.Total, s.Page.Page, s.Page.Pages)
	if s.PendingCount > 0 {
		status += fmt.Sprintf(" | %d new", s.PendingCount)
	}
	if s.Err != nil {
		status += fmt.Sprintf(" | error: %v", s.Err)
	}
	fmt.Println(status)
}
