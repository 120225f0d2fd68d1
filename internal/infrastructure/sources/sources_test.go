package sources

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_Parse(t *testing.T) {
	input := `NAME,RATING,VOTES,PRICE,TAGS
Brew & Study,4.6,120,800,"Free WiFi, Quiet"
Sunset Roasters,NEW,,1600,Outdoor seating
`
	parser := &CSVParser{}

	records, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, KindCSV, first.Kind)
	assert.Equal(t, "Brew & Study", first.String("name"))
	assert.Equal(t, "4.6", first.String("rating"))
	assert.Equal(t, 120, first.Int("reviews"))
	assert.Equal(t, []string{"Free WiFi", "Quiet"}, first.Strings("tags"))

	second := records[1]
	assert.Equal(t, "NEW", second.String("rating"))
	assert.False(t, second.Has("reviews"), "empty cells are absent, not zero")
}

func TestCSVParser_Parse_RaggedRows(t *testing.T) {
	input := "NAME,RATING\nShort\nLong,4.2,extra\n"
	parser := &CSVParser{}

	records, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Short", records[0].String("name"))
	assert.False(t, records[0].Has("rating"))
	assert.Equal(t, "4.2", records[1].String("rating"))
}

func TestCSVParser_Parse_Empty(t *testing.T) {
	parser := &CSVParser{}

	records, err := parser.Parse(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONParser_Parse(t *testing.T) {
	input := `[
		{"id": "cafe-1", "name": "Brew & Study", "priceLevel": 1, "wifiSpeed": 80,
		 "amenities": ["wifi", "quiet"],
		 "createdBy": {"id": "admin-1", "isAdmin": true}},
		{"name": "Sunset Roasters", "rating": 4.1}
	]`
	parser := &JSONParser{}

	records, err := parser.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, KindDocument, first.Kind)
	assert.Equal(t, "cafe-1", first.String("id"))
	assert.Equal(t, 1, first.Int("price_level"))
	assert.Equal(t, 80.0, first.Float("wifi_speed"))
	assert.Equal(t, []string{"wifi", "quiet"}, first.Strings("amenities"))

	assert.Equal(t, "4.1", records[1].String("rating"))
}

func TestJSONParser_Parse_Invalid(t *testing.T) {
	parser := &JSONParser{}

	_, err := parser.Parse(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestRecord_Accessors(t *testing.T) {
	rec := Record{Kind: KindCSV, Fields: map[string]any{
		"NAME":    "  Padded  ",
		"VOTES":   "42",
		"crowded": "yes",
		"isOpen":  false,
		"TAGS":    "a, ,b",
	}}

	assert.Equal(t, "Padded", rec.String("name"))
	assert.Equal(t, 42, rec.Int("reviews"))
	assert.True(t, rec.Bool("crowded"))
	assert.False(t, rec.Bool("is_open"))
	assert.True(t, rec.Has("is_open"))
	assert.Equal(t, []string{"a", "b"}, rec.Strings("tags"))

	// Absent fields yield zero values, never panics.
	assert.Equal(t, "", rec.String("cuisine"))
	assert.Equal(t, 0.0, rec.Float("distance"))
	assert.False(t, rec.Bool("featured"))
	assert.Nil(t, rec.Strings("amenities"))
}

func TestForFormatAndForFile(t *testing.T) {
	assert.IsType(t, &CSVParser{}, ForFormat("csv"))
	assert.IsType(t, &JSONParser{}, ForFormat("JSON"))
	assert.Nil(t, ForFormat("xml"))

	assert.IsType(t, &CSVParser{}, ForFile("data/cafes.CSV"))
	assert.IsType(t, &JSONParser{}, ForFile("export.json"))
	assert.Nil(t, ForFile("notes.txt"))
}
