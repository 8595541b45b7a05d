package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phersys/unifi-log-insight-sub001/internal/config"
	"github.com/phersys/unifi-log-insight-sub001/internal/mockapi"
)

func newMockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mock",
		Short: "Run an in-memory mock log API for development",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				fatal("config", err)
			}

			log := logrus.New()
			log.SetFormatter(&logrus.JSONFormatter{})
			level, err := logrus.ParseLevel(cfg.LogLevel)
			if err != nil {
				level = logrus.InfoLevel
			}
			log.SetLevel(level)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := mockapi.NewStore()
			gen := mockapi.NewGenerator(store, time.Now().UnixNano())
			gen.Seed(cfg.SeedRecords)
			go gen.Run(ctx, cfg.AppendInterval)

			srv := &http.Server{
				Addr: cfg.Addr(),
				Handler: mockapi.NewRouter(&mockapi.RouterDeps{
					Log:         log,
					Store:       store,
					APIKey:      cfg.APIKey.Value(),
					CORSOrigins: cfg.CORSOrigins,
					Version:     config.Version,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Warn("shutdown")
				}
			}()

			log.WithFields(logrus.Fields{
				"addr": cfg.Addr(),
				"seed": cfg.SeedRecords,
			}).Info("mock log API listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fatal("serve", err)
			}
		},
	}
}
