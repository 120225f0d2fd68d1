package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/services"
	"github.com/brewscout/brewscout/internal/infrastructure/logging"
	"github.com/brewscout/brewscout/internal/infrastructure/store/memory"
	"github.com/brewscout/brewscout/internal/server"
)

type serveFlags struct {
	addr string
	demo bool
}

func newServeCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  "Serves the cafe catalog over HTTP. With --demo, an in-memory store seeded with sample cafes is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().BoolVar(&flags.demo, "demo", false, "Use an in-memory store with demo data")
	return cmd
}

func runServe(ctx context.Context, flags serveFlags) error {
	return withInternalDeps(func(d *internalDeps) error {
		cfg := d.Config
		if flags.addr != "" {
			cfg.Server.Addr = flags.addr
		}

		store := d.store
		if flags.demo {
			demo := memory.NewStore()
			if err := memory.Seed(ctx, demo); err != nil {
				return fmt.Errorf("seeding demo data: %w", err)
			}
			store = demo
		}

		logger := logging.New(cfg.Logging)

		// The HTTP surface authenticates via identity headers, not the
		// local CLI session.
		auth := server.ContextAuthenticator{}
		catalog := services.NewCatalogService(store, auth)
		reviews := services.NewReviewService(store, auth)
		recommend := services.NewRecommendService(store)
		engine := services.NewQueryEngine()
		mood := services.NewMoodMatcher()

		router := server.NewRouter(logger, server.RouterDependencies{
			Cafes:          handlers.NewCafeHandler(catalog),
			Search:         handlers.NewSearchHandler(catalog, engine, mood),
			Reviews:        handlers.NewReviewHandler(reviews),
			Recommend:      recommend,
			Health:         server.StoreHealthService{Store: store},
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})

		srv := server.New(logger, cfg.Server, router)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	})
}
