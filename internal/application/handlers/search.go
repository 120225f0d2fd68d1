package handlers

import (
	"context"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/services"
)

// SearchHandler runs queries and mood matches over the live catalog.
type SearchHandler struct {
	catalog *services.CatalogService
	engine  *services.QueryEngine
	mood    *services.MoodMatcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(catalog *services.CatalogService, engine *services.QueryEngine, mood *services.MoodMatcher) *SearchHandler {
	return &SearchHandler{catalog: catalog, engine: engine, mood: mood}
}

// SearchResult contains an ordered page of matching cafes.
type SearchResult struct {
	Query string          `json:"query,omitempty"`
	Cafes []entities.Cafe `json:"cafes"`
	Total int             `json:"total"`
}

// HandleSearch loads the catalog and applies search, filters and sort.
func (h *SearchHandler) HandleSearch(ctx context.Context, query services.Query) (*SearchResult, error) {
	cafes, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	results := h.engine.Run(cafes, query)
	return &SearchResult{Query: query.Text, Cafes: results, Total: len(results)}, nil
}

// HandleQuickSearch runs the capped name/address typeahead match.
func (h *SearchHandler) HandleQuickSearch(ctx context.Context, text string) (*SearchResult, error) {
	cafes, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	results := h.engine.QuickSearch(cafes, text)
	return &SearchResult{Query: text, Cafes: results, Total: len(results)}, nil
}

// MoodResult names the rule a prompt resolved to alongside its matches.
type MoodResult struct {
	Prompt string          `json:"prompt"`
	Rule   string          `json:"rule,omitempty"`
	Cafes  []entities.Cafe `json:"cafes"`
}

// HandleMood filters the catalog by the heuristic rule the prompt
// resolves to.
func (h *SearchHandler) HandleMood(ctx context.Context, prompt string) (*MoodResult, error) {
	cafes, err := h.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	return &MoodResult{
		Prompt: prompt,
		Rule:   h.mood.RuleFor(prompt),
		Cafes:  h.mood.Match(cafes, prompt),
	}, nil
}
