package server

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/ports"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// StoreHealthService verifies the backing store as part of health checks.
type StoreHealthService struct {
	Store ports.Store
}

// Probe implements the HealthService interface.
func (s StoreHealthService) Probe(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	_, err := s.Store.CountCafes(ctx)
	return err
}
