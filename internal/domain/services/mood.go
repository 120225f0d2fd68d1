package services

import (
	"strings"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// MoodLimit caps mood search results.
const MoodLimit = 12

// MoodRule pairs a prompt trigger with a predicate over a cafe. The rule
// table is closed: this is a handful of keyword heuristics, not a
// classifier.
type MoodRule struct {
	Trigger   string
	Predicate func(*entities.Cafe) bool
}

// moodRules is the ordered trigger list; the first trigger contained in
// the lowered prompt wins.
var moodRules = []MoodRule{
	{
		Trigger: "quiet",
		Predicate: func(c *entities.Cafe) bool {
			return c.Rating >= 4.5 && c.WifiSpeed >= 50
		},
	},
	{
		Trigger: "date",
		Predicate: func(c *entities.Cafe) bool {
			return c.HasAmenity(entities.AmenityOutdoor) || c.Price.Level() >= 2
		},
	},
	{
		Trigger: "study",
		Predicate: func(c *entities.Cafe) bool {
			return c.WifiSpeed >= 30 && !c.Crowded
		},
	},
	{
		Trigger: "pet",
		Predicate: func(c *entities.Cafe) bool {
			return c.HasAmenity(entities.AmenityPet)
		},
	},
}

// fallbackMood applies when no trigger matches. An unmatched prompt is
// not a failure.
func fallbackMood(c *entities.Cafe) bool {
	return c.Rating >= 4
}

// MoodMatcher maps a free-text prompt to one heuristic rule and filters
// the collection by it.
type MoodMatcher struct{}

// NewMoodMatcher creates a MoodMatcher.
func NewMoodMatcher() *MoodMatcher {
	return &MoodMatcher{}
}

// RuleFor returns the trigger name the prompt resolves to, or "" for the
// fallback rule.
func (m *MoodMatcher) RuleFor(prompt string) string {
	lowered := strings.ToLower(prompt)
	for _, rule := range moodRules {
		if strings.Contains(lowered, rule.Trigger) {
			return rule.Trigger
		}
	}
	return ""
}

// Match filters the collection by the rule the prompt resolves to,
// returning at most MoodLimit cafes.
func (m *MoodMatcher) Match(cafes []entities.Cafe, prompt string) []entities.Cafe {
	predicate := fallbackMood
	lowered := strings.ToLower(prompt)
	for _, rule := range moodRules {
		if strings.Contains(lowered, rule.Trigger) {
			predicate = rule.Predicate
			break
		}
	}

	var results []entities.Cafe
	for _, cafe := range cafes {
		if predicate(&cafe) {
			results = append(results, cafe)
			if len(results) == MoodLimit {
				break
			}
		}
	}
	return results
}
