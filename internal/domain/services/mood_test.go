package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

func TestMoodMatcher_RuleFor(t *testing.T) {
	matcher := NewMoodMatcher()

	assert.Equal(t, "quiet", matcher.RuleFor("somewhere QUIET please"))
	assert.Equal(t, "date", matcher.RuleFor("date night spot"))
	assert.Equal(t, "study", matcher.RuleFor("place to study"))
	assert.Equal(t, "pet", matcher.RuleFor("pet friendly cafe"))
	assert.Equal(t, "", matcher.RuleFor("just coffee"))
}

func TestMoodMatcher_RuleFor_FirstTriggerWins(t *testing.T) {
	matcher := NewMoodMatcher()

	// "quiet" precedes "study" in the rule table.
	assert.Equal(t, "quiet", matcher.RuleFor("quiet cafe to study"))
}

func TestMoodMatcher_Match_Quiet(t *testing.T) {
	matcher := NewMoodMatcher()
	cafes := []entities.Cafe{
		{ID: "c1", Rating: 4.7, WifiSpeed: 90},
		{ID: "c2", Rating: 4.7, WifiSpeed: 20}, // wifi too slow
		{ID: "c3", Rating: 4.2, WifiSpeed: 90}, // rating too low
	}

	results := matcher.Match(cafes, "quiet cafe to study")

	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)
}

func TestMoodMatcher_Match_Date(t *testing.T) {
	matcher := NewMoodMatcher()
	cafes := []entities.Cafe{
		{ID: "c1", Price: entities.PriceLow, Amenities: []string{entities.AmenityOutdoor}},
		{ID: "c2", Price: entities.PriceHigh},
		{ID: "c3", Price: entities.PriceLow},
	}

	results := matcher.Match(cafes, "romantic date spot")

	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].ID)
	assert.Equal(t, "c2", results[1].ID)
}

func TestMoodMatcher_Match_Study(t *testing.T) {
	matcher := NewMoodMatcher()
	cafes := []entities.Cafe{
		{ID: "c1", WifiSpeed: 45},
		{ID: "c2", WifiSpeed: 45, Crowded: true},
		{ID: "c3", WifiSpeed: 10},
	}

	results := matcher.Match(cafes, "study session")

	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)
}

func TestMoodMatcher_Match_Fallback(t *testing.T) {
	matcher := NewMoodMatcher()
	cafes := []entities.Cafe{
		{ID: "c1", Rating: 4.5},
		{ID: "c2", Rating: 3.9},
		{ID: "c3", Rating: 4.0},
	}

	results := matcher.Match(cafes, "surprise me")

	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].ID)
	assert.Equal(t, "c3", results[1].ID)
}

func TestMoodMatcher_Match_Cap(t *testing.T) {
	matcher := NewMoodMatcher()

	var cafes []entities.Cafe
	for i := 0; i < 30; i++ {
		cafes = append(cafes, entities.Cafe{ID: fmt.Sprintf("c%d", i), Rating: 5})
	}

	results := matcher.Match(cafes, "anything")
	assert.Len(t, results, MoodLimit)
}
