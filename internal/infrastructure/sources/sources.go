// Package sources provides parsers for ingesting cafe records from
// external formats, and a tolerant accessor layer over their
// heterogeneous field names.
package sources

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind tags the origin shape of a raw record. The normalizer dispatches
// on it where the shapes genuinely diverge (price derivation, amenities).
type Kind string

// Known record shapes.
const (
	// KindDocument is a remote document-store record (admin/manual shape).
	KindDocument Kind = "document"
	// KindCSV is a row of an imported tabular dataset.
	KindCSV Kind = "csv"
	// KindLocal is an in-memory demo record.
	KindLocal Kind = "local"
)

// Record is one raw cafe record of unknown shape: string keys mapping to
// primitive or array values. Accessors never fail; absent or malformed
// values yield zero defaults.
type Record struct {
	Kind   Kind
	Fields map[string]any
}

// fieldAliases maps a canonical field to the historical names it has been
// stored under across the observed sources. Lookup order matters: the
// first alias present wins.
var fieldAliases = map[string][]string{
	"id":               {"id", "ID"},
	"name":             {"name", "NAME", "cafe_name"},
	"address":          {"address", "ADDRESS", "location"},
	"city":             {"city", "CITY"},
	"region":           {"region", "REGION"},
	"rating":           {"rating", "RATING"},
	"reviews":          {"reviews", "review_count", "VOTES"},
	"price":            {"price"},
	"price_level":      {"priceLevel", "price_level"},
	"raw_price":        {"PRICE"},
	"hours":            {"hours", "TIMING", "timing"},
	"tags":             {"tags", "TAGS"},
	"cuisine":          {"cuisine", "cuisine_category", "CUSINE_CATEGORY"},
	"image":            {"image", "photoUrl", "photo_url", "image_url"},
	"wifi_speed":       {"wifiSpeed", "wifi_speed"},
	"pet_friendly":     {"petFriendly", "pet_friendly"},
	"outdoor_seating":  {"outdoorSeating", "outdoor_seating"},
	"eco_friendly":     {"ecoFriendly", "eco_friendly"},
	"student_discount": {"studentDiscount", "student_discount"},
	"crowded":          {"crowded"},
	"is_open":          {"isOpen", "is_open"},
	"featured":         {"featured"},
	"distance":         {"distance"},
	"amenities":        {"amenities"},
	"created_by":       {"createdBy", "created_by"},
}

// lookup returns the first present value for the canonical field name.
func (r Record) lookup(field string) (any, bool) {
	aliases, ok := fieldAliases[field]
	if !ok {
		aliases = []string{field}
	}
	for _, alias := range aliases {
		if v, ok := r.Fields[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any alias of the canonical field is present.
func (r Record) Has(field string) bool {
	_, ok := r.lookup(field)
	return ok
}

// String returns the field as a trimmed string, or "" when absent.
func (r Record) String(field string) string {
	v, ok := r.lookup(field)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Float returns the field as a float64, or 0 when absent or malformed.
func (r Record) Float(field string) float64 {
	v, ok := r.lookup(field)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Int returns the field as an int, or 0 when absent or malformed.
func (r Record) Int(field string) int {
	return int(r.Float(field))
}

// Bool returns the field as a bool. Strings "true"/"1"/"yes" count as
// true; everything else, including absence, is false.
func (r Record) Bool(field string) bool {
	v, ok := r.lookup(field)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes":
			return true
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return false
}

// Strings returns the field as a string slice. Scalar strings are split
// on commas; absent or malformed values yield nil.
func (r Record) Strings(field string) []string {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if strings.TrimSpace(s) == "" {
			return nil
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	}
	return nil
}

// Parser reads raw cafe records from an external format.
type Parser interface {
	Parse(r io.Reader) ([]Record, error)
}

// ForFormat returns the parser for the given format name.
// Supported formats: "csv", "json".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "csv":
		return &CSVParser{}
	case "json":
		return &JSONParser{}
	default:
		return nil
	}
}

// ForFile returns the parser for the given file based on its extension.
func ForFile(filename string) Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return &CSVParser{}
	case ".json":
		return &JSONParser{}
	default:
		return nil
	}
}
