package services

import (
	"fmt"
	"strings"

	"github.com/brewscout/brewscout/internal/domain/entities"
)

// Weekly event templates. Listings that carry no events of their own get
// a deterministic selection so repeated syncs render identically.
var eventTemplates = []struct {
	title    string
	kind     string
	duration string
}{
	{"Coffee Tasting Workshop", "workshop", "2 hours"},
	{"Live Music Night", "entertainment", "3 hours"},
	{"Latte Art Class", "workshop", "1.5 hours"},
	{"Book Reading Session", "cultural", "2 hours"},
	{"Coffee Bean Roasting Demo", "educational", "1 hour"},
	{"Open Mic Night", "entertainment", "3 hours"},
	{"Barista Championship", "competition", "4 hours"},
	{"Coffee & Dessert Pairing", "tasting", "1.5 hours"},
	{"Morning Yoga Session", "wellness", "1 hour"},
	{"Coffee Cupping Experience", "tasting", "2 hours"},
	{"Art Exhibition Opening", "cultural", "4 hours"},
	{"Coffee Brewing Masterclass", "workshop", "2 hours"},
}

var eventDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var eventTimes = []string{"9:00 AM", "10:00 AM", "11:00 AM", "2:00 PM", "3:00 PM", "4:00 PM", "6:00 PM", "7:00 PM", "8:00 PM"}

// generateEvents derives 2-4 weekly events for a cafe from its name hash
// and positional index. Output is deterministic for a given input.
func generateEvents(cafeName string, index int) []entities.CafeEvent {
	hash := nameHash(cafeName)
	count := 2 + index%3

	events := make([]entities.CafeEvent, 0, count)
	for i := 0; i < count; i++ {
		tmpl := eventTemplates[abs(hash+index+i)%len(eventTemplates)]
		day := eventDays[abs(hash+index+i+1)%len(eventDays)]
		at := eventTimes[abs(hash+index+i+2)%len(eventTimes)]

		events = append(events, entities.CafeEvent{
			ID:       fmt.Sprintf("event_%d_%d", index, i),
			Title:    tmpl.title,
			Type:     tmpl.kind,
			Day:      day,
			Time:     at,
			Duration: tmpl.duration,
			Description: fmt.Sprintf("Join us for %s at %s. %s of fun and learning!",
				strings.ToLower(tmpl.title), cafeName, tmpl.duration),
		})
	}
	return events
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
