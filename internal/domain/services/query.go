package services

import (
	"sort"
	"strings"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// DefaultLimit caps result pages when callers don't ask for more.
const DefaultLimit = 12

// QuickSearchLimit caps the lightweight typeahead search.
const QuickSearchLimit = 6

// SortKey selects the result ordering.
type SortKey string

// Supported sort orders.
const (
	// SortDistance orders ascending by distance; missing distance sorts as 0.
	SortDistance SortKey = "distance"
	// SortRating orders descending by rating.
	SortRating SortKey = "rating"
	// SortReviews orders descending by review count.
	SortReviews SortKey = "reviews"
	// SortName orders ascending by case-folded name.
	SortName SortKey = "name"
)

// ParseSortKey maps a raw string to a sort key, defaulting to distance.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortRating:
		return SortRating
	case SortReviews:
		return SortReviews
	case SortName:
		return SortName
	default:
		return SortDistance
	}
}

// Filters is the structured filter set. Zero values mean "no filter",
// never "match nothing"; supplied filters combine conjunctively.
type Filters struct {
	Price        entities.PriceTier
	MinRating    float64
	Amenity      string
	OpenNow      bool
	AdminOnly    bool
	MinWifiSpeed float64
}

// Query bundles free-text search, filters and ordering for one run.
type Query struct {
	Text    string
	Filters Filters
	Sort    SortKey
	Limit   int // 0 means unlimited
}

// QueryEngine applies search, filters and sort orders over a collection
// of normalized cafes. It never mutates its input and returns a fully
// materialized new slice.
type QueryEngine struct{}

// NewQueryEngine creates a QueryEngine.
func NewQueryEngine() *QueryEngine {
	return &QueryEngine{}
}

// Run executes the query over the collection. An empty collection yields
// an empty result.
func (e *QueryEngine) Run(cafes []entities.Cafe, q Query) []entities.Cafe {
	results := make([]entities.Cafe, 0, len(cafes))
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	for _, cafe := range cafes {
		if needle != "" && !matchesText(&cafe, needle) {
			continue
		}
		if !matchesFilters(&cafe, q.Filters) {
			continue
		}
		results = append(results, cafe)
	}

	e.sortResults(results, q.Sort)

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

// QuickSearch matches only name and address and caps the result at
// QuickSearchLimit. An empty query matches nothing.
func (e *QueryEngine) QuickSearch(cafes []entities.Cafe, text string) []entities.Cafe {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}

	var results []entities.Cafe
	for _, cafe := range cafes {
		if strings.Contains(strings.ToLower(cafe.Name), needle) ||
			strings.Contains(strings.ToLower(cafe.Address), needle) {
			results = append(results, cafe)
			if len(results) == QuickSearchLimit {
				break
			}
		}
	}
	return results
}

// matchesText reports whether the cafe's name, address or any amenity
// contains the lowered needle.
func matchesText(cafe *entities.Cafe, needle string) bool {
	if strings.Contains(strings.ToLower(cafe.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(cafe.Address), needle) {
		return true
	}
	for _, amenity := range cafe.Amenities {
		if strings.Contains(strings.ToLower(amenity), needle) {
			return true
		}
	}
	return false
}

// matchesFilters applies the conjunctive filter set.
func matchesFilters(cafe *entities.Cafe, f Filters) bool {
	if f.Price != "" && cafe.Price != f.Price {
		return false
	}
	if f.MinRating > 0 && cafe.Rating < f.MinRating {
		return false
	}
	if f.Amenity != "" && !cafe.HasAmenity(f.Amenity) {
		return false
	}
	if f.OpenNow && !cafe.IsOpen {
		return false
	}
	if f.AdminOnly && !cafe.AdminPosted() {
		return false
	}
	if f.MinWifiSpeed > 0 && cafe.WifiSpeed < f.MinWifiSpeed {
		return false
	}
	return true
}

// sortResults orders the slice in place. All orders are stable: equal
// keys keep their prior relative order.
func (e *QueryEngine) sortResults(results []entities.Cafe, key SortKey) {
	switch key {
	case SortRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	case SortReviews:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].ReviewCount > results[j].ReviewCount
		})
	case SortName:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Name) < strings.ToLower(results[j].Name)
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Distance < results[j].Distance
		})
	}
}
