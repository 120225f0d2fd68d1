package memory

import (
	"context"
	"time"

	"github.com/brewscout/brewscout/internal/domain/services"
	"github.com/brewscout/brewscout/internal/infrastructure/sources"
)

// Seed normalizes a small set of built-in demo records and loads them,
// so the app is usable without importing a dataset first.
func Seed(ctx context.Context, store *Store) error {
	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	normalizer := services.NewNormalizer()

	for i, rec := range demoRecords() {
		cafe := normalizer.Normalize(rec, i)
		cafe.CreatedAt = createdAt
		if err := store.CreateCafe(ctx, &cafe); err != nil {
			return err
		}
	}
	return nil
}

func demoRecords() []sources.Record {
	rows := []map[string]any{
		{
			"id":        "demo_1",
			"name":      "Blue Tokai Coffee Roasters",
			"address":   "Khasra 258, Said-ul-Ajaib, New Delhi",
			"price":     "$$",
			"rating":    4.6,
			"reviews":   214,
			"tags":      "wifi, outdoor seating, work friendly",
			"hours":     "8am - 10pm",
			"distance":  1.2,
			"wifiSpeed": 80,
			"cuisine":   "Specialty Coffee",
			"city":      "New Delhi",
		},
		{
			"id":        "demo_2",
			"name":      "Third Wave Coffee",
			"address":   "100 Feet Road, Indiranagar, Bengaluru",
			"price":     "$$",
			"rating":    4.3,
			"reviews":   158,
			"tags":      "wifi, work friendly, vegan options",
			"hours":     "7am - 11pm",
			"distance":  0.8,
			"wifiSpeed": 60,
			"cuisine":   "Cafe",
			"city":      "Bengaluru",
		},
		{
			"id":              "demo_3",
			"name":            "The Quiet Corner",
			"address":         "12 Hill View Lane, Pune",
			"price":           "$",
			"rating":          4.8,
			"reviews":         42,
			"tags":            "wifi, quiet",
			"studentDiscount": true,
			"hours":           "9am - 9pm",
			"distance":        2.4,
			"wifiSpeed":       95,
			"cuisine":         "Cafe",
			"city":            "Pune",
		},
		{
			"id":       "demo_4",
			"name":     "Sunset Roasters",
			"address":  "Beach Road, Besant Nagar, Chennai",
			"price":    "$$$",
			"rating":   4.1,
			"reviews":  96,
			"tags":     "outdoor seating, pet friendly, family friendly",
			"hours":    "8am - 11pm",
			"distance": 3.1,
			"crowded":  true,
			"cuisine":  "Coffee & Dessert",
			"city":     "Chennai",
		},
		{
			"id":          "demo_5",
			"name":        "Paws & Pour",
			"address":     "7 Lake View Street, Udaipur",
			"price":       "$",
			"rating":      4.4,
			"reviews":     31,
			"tags":        "pet friendly, outdoor seating",
			"ecoFriendly": true,
			"hours":       "10am - 8pm",
			"distance":    4.5,
			"wifiSpeed":   25,
			"cuisine":     "Cafe",
			"city":        "Udaipur",
		},
		{
			"id":        "demo_6",
			"name":      "Grind House Espresso",
			"address":   "Linking Road, Bandra West, Mumbai",
			"price":     "$$",
			"rating":    3.9,
			"reviews":   187,
			"tags":      "wifi, parking, wheelchair accessible",
			"isOpen":    false,
			"hours":     "7am - 7pm",
			"distance":  1.9,
			"crowded":   true,
			"wifiSpeed": 45,
			"cuisine":   "Espresso Bar",
			"city":      "Mumbai",
		},
	}

	records := make([]sources.Record, 0, len(rows))
	for _, fields := range rows {
		records = append(records, sources.Record{Kind: sources.KindLocal, Fields: fields})
	}
	return records
}
