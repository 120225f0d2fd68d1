// Package entities contains core domain data structures.
package entities

import "time"

// PriceTier represents the symbolic price band of a cafe.
type PriceTier string

// Price tiers, ordered from cheapest to most expensive.
const (
	PriceLow  PriceTier = "$"
	PriceMid  PriceTier = "$$"
	PriceHigh PriceTier = "$$$"
)

// PriceFromLevel maps a numeric price level (1-3) to a symbolic tier.
// Unknown levels default to the mid tier.
func PriceFromLevel(level int) PriceTier {
	switch level {
	case 3:
		return PriceHigh
	case 2:
		return PriceMid
	case 1:
		return PriceLow
	default:
		return PriceMid
	}
}

// Valid reports whether the tier is one of the three known symbols.
func (p PriceTier) Valid() bool {
	return p == PriceLow || p == PriceMid || p == PriceHigh
}

// Level returns the numeric level (1-3) for the tier.
func (p PriceTier) Level() int {
	switch p {
	case PriceHigh:
		return 3
	case PriceMid:
		return 2
	default:
		return 1
	}
}

// Canonical amenity slugs produced by the normalizer.
const (
	AmenityWifi       = "wifi"
	AmenityParking    = "parking"
	AmenityOutdoor    = "outdoor-seating"
	AmenityPet        = "pet-friendly"
	AmenityVegan      = "vegan-options"
	AmenityQuiet      = "quiet"
	AmenityWork       = "work-friendly"
	AmenityFamily     = "family-friendly"
	AmenityWheelchair = "wheelchair-accessible"
	AmenityEco        = "eco-friendly"
	AmenityStudent    = "student-discount"
)

// FeaturedRatingThreshold marks a cafe as featured once its rating
// reaches this value, independent of any admin override.
const FeaturedRatingThreshold = 4.5

// CreatedBy is a back-reference to the account that created a listing.
// It is used only for the "admin-posted" filter, never for access control.
type CreatedBy struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Admin bool   `json:"is_admin"`
}

// CafeEvent is a recurring weekly event hosted by a cafe. Events are
// derived deterministically for listings that carry none of their own.
type CafeEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Cafe is the canonical, normalized cafe listing. Every source record,
// whatever its shape, resolves to this type.
type Cafe struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Image       string      `json:"image,omitempty"`
	Price       PriceTier   `json:"price"`
	Rating      float64     `json:"rating"`
	ReviewCount int         `json:"review_count"`
	Amenities   []string    `json:"amenities"`
	IsOpen      bool        `json:"is_open"`
	Hours       string      `json:"hours,omitempty"`
	Distance    float64     `json:"distance"`
	Featured    bool        `json:"featured"`
	WifiSpeed   float64     `json:"wifi_speed,omitempty"`
	Crowded     bool        `json:"crowded,omitempty"`
	Cuisine     string      `json:"cuisine,omitempty"`
	City        string      `json:"city,omitempty"`
	Region      string      `json:"region,omitempty"`
	Events      []CafeEvent `json:"events,omitempty"`
	CreatedBy   *CreatedBy  `json:"created_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// HasAmenity reports whether the cafe carries the given amenity slug.
func (c *Cafe) HasAmenity(slug string) bool {
	for _, a := range c.Amenities {
		if a == slug {
			return true
		}
	}
	return false
}

// AdminPosted reports whether this listing was created by an admin.
func (c *Cafe) AdminPosted() bool {
	return c.CreatedBy != nil && c.CreatedBy.Admin
}
