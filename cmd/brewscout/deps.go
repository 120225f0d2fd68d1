package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/ports"
	"github.com/brewscout/brewscout/internal/domain/services"
	"github.com/brewscout/brewscout/internal/infrastructure/auth/local"
	"github.com/brewscout/brewscout/internal/infrastructure/config"
	"github.com/brewscout/brewscout/internal/infrastructure/store/memory"
	"github.com/brewscout/brewscout/internal/infrastructure/store/postgres"
	"github.com/brewscout/brewscout/internal/infrastructure/store/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config        *config.Config
	CafeHandler   *handlers.CafeHandler
	SearchHandler *handlers.SearchHandler
	ReviewHandler *handlers.ReviewHandler
	ImportHandler *handlers.ImportHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store     ports.Store
	auth      ports.Authenticator
	catalog   *services.CatalogService
	reviews   *services.ReviewService
	recommend *services.RecommendService
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including
// low-level components.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(config.ConfigDir(cwd), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring store schema: %w", err)
	}

	auth, err := local.NewProvider(config.ConfigDir(cwd))
	if err != nil {
		return fmt.Errorf("creating auth provider: %w", err)
	}

	normalizer := services.NewNormalizer()
	engine := services.NewQueryEngine()
	mood := services.NewMoodMatcher()
	catalog := services.NewCatalogService(store, auth)
	reviews := services.NewReviewService(store, auth)
	recommend := services.NewRecommendService(store)
	importService := services.NewImportService(store, normalizer)

	deps := &internalDeps{
		Deps: Deps{
			Config:        cfg,
			CafeHandler:   handlers.NewCafeHandler(catalog),
			SearchHandler: handlers.NewSearchHandler(catalog, engine, mood),
			ReviewHandler: handlers.NewReviewHandler(reviews),
			ImportHandler: handlers.NewImportHandler(importService),
		},
		store:     store,
		auth:      auth,
		catalog:   catalog,
		reviews:   reviews,
		recommend: recommend,
	}

	return fn(deps)
}

// openStore selects the persistence backend from config.
func openStore(cfg *config.Config) (ports.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		repo, err := sqlite.NewRepository(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("creating sqlite repository: %w", err)
		}
		return repo, nil
	case config.DriverPostgres:
		repo, err := postgres.NewRepository(cfg.Store)
		if err != nil {
			return nil, fmt.Errorf("creating postgres repository: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// withAuth provides direct authenticator access for auth commands.
func withAuth(fn func(ports.Authenticator) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}
	auth, err := local.NewProvider(config.ConfigDir(cwd))
	if err != nil {
		return fmt.Errorf("creating auth provider: %w", err)
	}
	return fn(auth)
}

// withSession provides handlers together with the current session,
// which is nil when signed out.
func withSession(fn func(*Deps, *ports.Session) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		session, err := d.auth.Current(context.Background())
		if err != nil {
			return fmt.Errorf("resolving session: %w", err)
		}
		return fn(&d.Deps, session)
	})
}

// withRecommend provides access to the recommendation service.
func withRecommend(fn func(*services.RecommendService, ports.Authenticator) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(d.recommend, d.auth)
	})
}
