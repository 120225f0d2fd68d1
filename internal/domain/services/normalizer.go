package services

import (
	"fmt"
	"strings"

	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/infrastructure/sources"
)

// CSV datasets carry a raw numeric price (cost for two) instead of a
// 1-3 level; these thresholds bucket it.
const (
	csvPriceHighThreshold = 1500
	csvPriceMidThreshold  = 700
)

// amenityKeywords maps tag substrings to canonical amenity slugs. A tag
// containing the keyword anywhere yields the amenity.
var amenityKeywords = []struct {
	keyword string
	slug    string
}{
	{"wifi", entities.AmenityWifi},
	{"parking", entities.AmenityParking},
	{"outdoor", entities.AmenityOutdoor},
	{"pet", entities.AmenityPet},
	{"vegan", entities.AmenityVegan},
	{"quiet", entities.AmenityQuiet},
	{"work", entities.AmenityWork},
	{"family", entities.AmenityFamily},
	{"wheelchair", entities.AmenityWheelchair},
}

// DefaultAmenitySet is applied when no amenities are detected, so
// listings never render with an empty amenity row.
var DefaultAmenitySet = []string{entities.AmenityWifi}

// cafeImages is a fixed gallery; each cafe is assigned one
// deterministically from its name hash and index.
var cafeImages = []string{
	"https://images.unsplash.com/photo-1554118811-1e0d58224f24?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1442512595331-e89e73853f31?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1559496417-e7f25cb247cd?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1522992319-0365e5f11656?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1509042239860-f550ce710b93?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1559925393-8be0ec4767c8?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1521017432531-fbd92d768814?w=400&h=300&fit=crop",
	"https://images.unsplash.com/photo-1559056199-641a0ac8b55e?w=400&h=300&fit=crop",
}

// Normalizer converts heterogeneous raw records into canonical cafes.
// It is pure and total: for a given (record, index) pair it always
// returns the same fully-populated entity and never fails.
type Normalizer struct {
	// DefaultAmenities controls whether a cafe with no detected
	// amenities receives DefaultAmenitySet instead of staying empty.
	DefaultAmenities bool
}

// NewNormalizer creates a Normalizer with the default amenity fallback on.
func NewNormalizer() *Normalizer {
	return &Normalizer{DefaultAmenities: true}
}

// Normalize produces a canonical cafe from one raw record. The index is
// used to derive a fallback id and a stable seed for cosmetic fields
// when the source lacks them. Absence of data degrades fidelity, never
// raises an error.
func (n *Normalizer) Normalize(rec sources.Record, index int) entities.Cafe {
	name := rec.String("name")
	if name == "" {
		name = "Cafe"
	}

	id := rec.String("id")
	if id == "" {
		id = fmt.Sprintf("%s_%d", rec.Kind, index)
	}

	seed := nameHash(name) + index
	if seed < 0 {
		seed = -seed
	}

	rating := parseRating(rec.String("rating"))

	cafe := entities.Cafe{
		ID:          id,
		Name:        name,
		Address:     n.normalizeAddress(rec),
		Image:       rec.String("image"),
		Price:       n.normalizePrice(rec),
		Rating:      rating,
		ReviewCount: maxInt(rec.Int("reviews"), 0),
		Amenities:   n.normalizeAmenities(rec),
		IsOpen:      true,
		Hours:       rec.String("hours"),
		Distance:    rec.Float("distance"),
		Featured:    rec.Bool("featured") || rating >= entities.FeaturedRatingThreshold,
		WifiSpeed:   rec.Float("wifi_speed"),
		Crowded:     rec.Bool("crowded"),
		Cuisine:     rec.String("cuisine"),
		City:        rec.String("city"),
		Region:      rec.String("region"),
	}

	if rec.Has("is_open") {
		cafe.IsOpen = rec.Bool("is_open")
	}
	if cafe.Image == "" {
		cafe.Image = cafeImages[seed%len(cafeImages)]
	}
	if cafe.Cuisine == "" {
		cafe.Cuisine = "Multi-cuisine"
	}
	if !rec.Has("distance") {
		// Mocked proximity, 0-5 km. Not a geospatial computation.
		cafe.Distance = float64(seed%500) / 100.0
	}
	if createdBy := normalizeCreatedBy(rec); createdBy != nil {
		cafe.CreatedBy = createdBy
	}
	cafe.Events = generateEvents(name, index)

	return cafe
}

// normalizeAddress returns the address field, falling back to a
// "City, Region" composite for tabular sources that carry no address.
func (n *Normalizer) normalizeAddress(rec sources.Record) string {
	if addr := rec.String("address"); addr != "" {
		return addr
	}
	city := rec.String("city")
	region := rec.String("region")
	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	default:
		return region
	}
}

// normalizePrice derives the symbolic price tier. A symbolic string wins;
// otherwise a 1-3 level is mapped through fixed thresholds; CSV rows
// bucket their raw numeric price first. Unknown defaults to mid tier.
func (n *Normalizer) normalizePrice(rec sources.Record) entities.PriceTier {
	if symbolic := entities.PriceTier(rec.String("price")); symbolic.Valid() {
		return symbolic
	}
	if rec.Has("price_level") {
		return entities.PriceFromLevel(rec.Int("price_level"))
	}
	if rec.Kind == sources.KindCSV && rec.Has("raw_price") {
		raw := rec.Float("raw_price")
		switch {
		case raw >= csvPriceHighThreshold:
			return entities.PriceHigh
		case raw >= csvPriceMidThreshold:
			return entities.PriceMid
		default:
			return entities.PriceLow
		}
	}
	return entities.PriceMid
}

// normalizeAmenities derives the amenity set from free-text tags and
// boolean source fields.
func (n *Normalizer) normalizeAmenities(rec sources.Record) []string {
	set := make(map[string]bool)
	var amenities []string

	add := func(slug string) {
		if !set[slug] {
			set[slug] = true
			amenities = append(amenities, slug)
		}
	}

	tags := append(rec.Strings("tags"), rec.Strings("amenities")...)
	for _, tag := range tags {
		lowered := strings.ToLower(tag)
		for _, kw := range amenityKeywords {
			if strings.Contains(lowered, kw.keyword) {
				add(kw.slug)
			}
		}
	}

	if rec.Bool("eco_friendly") {
		add(entities.AmenityEco)
	}
	if rec.Bool("outdoor_seating") {
		add(entities.AmenityOutdoor)
	}
	if rec.Bool("pet_friendly") {
		add(entities.AmenityPet)
	}
	if rec.Float("wifi_speed") > 0 {
		add(entities.AmenityWifi)
	}
	if rec.Bool("student_discount") {
		add(entities.AmenityStudent)
	}

	if len(amenities) == 0 && n.DefaultAmenities {
		return append([]string(nil), DefaultAmenitySet...)
	}
	return amenities
}

// normalizeCreatedBy extracts the creator back-reference when present.
func normalizeCreatedBy(rec sources.Record) *entities.CreatedBy {
	v, ok := rec.Fields["createdBy"]
	if !ok {
		v, ok = rec.Fields["created_by"]
	}
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	createdBy := &entities.CreatedBy{}
	if id, ok := m["id"].(string); ok {
		createdBy.ID = id
	}
	if email, ok := m["email"].(string); ok {
		createdBy.Email = email
	}
	if admin, ok := m["isAdmin"].(bool); ok {
		createdBy.Admin = admin
	} else if admin, ok := m["is_admin"].(bool); ok {
		createdBy.Admin = admin
	}
	if createdBy.ID == "" {
		return nil
	}
	return createdBy
}

// parseRating coerces a raw rating string to a float in [0,5]. Datasets
// mark unrated listings with "NEW", which counts as 0.
func parseRating(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "NEW") {
		return 0
	}
	var rating float64
	if _, err := fmt.Sscanf(cleaned, "%f", &rating); err != nil {
		return 0
	}
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

// nameHash produces a stable 32-bit hash of a name, matching the seed
// derivation used by the historical datasets.
func nameHash(name string) int {
	var h int32
	for _, r := range name {
		h = (h << 5) - h + int32(r)
	}
	hash := int(h)
	if hash < 0 {
		hash = -hash
	}
	return hash
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
