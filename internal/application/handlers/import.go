package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/brewscout/brewscout/internal/domain/services"
	"github.com/brewscout/brewscout/internal/infrastructure/sources"
)

// ImportHandler handles importing cafes from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{service: service}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "csv", "json", or "auto"
	DryRun     bool                      // normalize without saving
	OnConflict services.ConflictStrategy // how to handle existing cafes
}

// Handle imports cafe records from a file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser sources.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = sources.ForFile(filePath)
	} else {
		parser = sources.ForFormat(opts.Format)
	}
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	records, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	result, err := h.service.Import(ctx, records, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
	if err != nil {
		return nil, fmt.Errorf("importing cafes: %w", err)
	}

	return result, nil
}
