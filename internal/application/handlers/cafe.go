// Package handlers contains the application layer that coordinates
// domain services for the delivery surfaces (CLI and HTTP).
package handlers

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/services"
)

// CafeHandler handles catalog operations at the application layer.
type CafeHandler struct {
	catalog *services.CatalogService
}

// NewCafeHandler creates a new CafeHandler.
func NewCafeHandler(catalog *services.CatalogService) *CafeHandler {
	return &CafeHandler{catalog: catalog}
}

// CafeListResult contains the result of listing cafes.
type CafeListResult struct {
	Cafes []entities.Cafe `json:"cafes"`
	Total int             `json:"total"`
}

// HandleList returns all cafes in the catalog.
func (h *CafeHandler) HandleList(ctx context.Context) (*CafeListResult, error) {
	cafes, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return &CafeListResult{Cafes: cafes, Total: len(cafes)}, nil
}

// HandleGet finds a cafe by id. Returns entities.ErrNotFound when the id
// does not resolve.
func (h *CafeHandler) HandleGet(ctx context.Context, id string) (*entities.Cafe, error) {
	cafe, err := h.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, entities.ErrNotFound
	}
	return cafe, nil
}

// HandleCreate adds a new listing.
func (h *CafeHandler) HandleCreate(ctx context.Context, cafe entities.Cafe) (*entities.Cafe, error) {
	return h.catalog.Create(ctx, cafe)
}

// HandleUpdate edits an existing listing.
func (h *CafeHandler) HandleUpdate(ctx context.Context, id string, updates entities.Cafe) (*entities.Cafe, error) {
	return h.catalog.Update(ctx, id, updates)
}

// HandleDelete removes a listing and its reviews.
func (h *CafeHandler) HandleDelete(ctx context.Context, id string) error {
	return h.catalog.Delete(ctx, id)
}

// HandleSetFeatured toggles the explicit featured flag.
func (h *CafeHandler) HandleSetFeatured(ctx context.Context, id string, featured bool) (*entities.Cafe, error) {
	return h.catalog.SetFeatured(ctx, id, featured)
}
