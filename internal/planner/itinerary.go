package planner

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed itinerary_prompt.md
var itineraryPrompt string

// sampleItinerary pads short or missing generator output. Days beyond its
// length get empty slots.
var sampleItinerary = []ItineraryDay{
	{Day: 1, Morning: "Arrive and check in to your hotel", Afternoon: "Explore the local market", Evening: "Dinner at a popular local restaurant"},
	{Day: 2, Morning: "Visit the main cultural attraction", Afternoon: "Relax at a nearby park or lake", Evening: "Attend a street food tour"},
	{Day: 3, Morning: "Take a short walking tour of the old town", Afternoon: "Shopping and souvenirs", Evening: "Enjoy a farewell dinner"},
}

// runItinerary asks the generator for the day-by-day plan, normalizes it to
// exactly NumDays entries and, for non-business trips, enforces the tourist
// content policy on every slot. Generation failure degrades to the sample
// itinerary instead of failing the stage.
func (p *Planner) runItinerary(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	extra := ""
	if s.DestinationCode != "" {
		extra = fmt.Sprintf(" (IATA: %s)", s.DestinationCode)
	}
	prompt := fmt.Sprintf(
		"Destination: %s%s.\nTrip type: %s.\nCreate a %d-day itinerary for %s. "+
			"Keep each slot to one short sentence and avoid any corporate visits unless the trip type is business.",
		s.DestinationCity, extra, s.TripType, s.NumDays, s.DestinationCity,
	)

	raw, usage, err := p.generate(ctx, prompt, itineraryPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("itinerary: generation failed; using sample itinerary")
		raw = nil
	}

	itinerary := toItinerary(raw, s.NumDays)

	if s.TripType != "business" {
		itinerary = sanitizeItinerary(itinerary)
	} else {
		for i := range itinerary {
			itinerary[i].Morning = strings.TrimSpace(itinerary[i].Morning)
			itinerary[i].Afternoon = strings.TrimSpace(itinerary[i].Afternoon)
			itinerary[i].Evening = strings.TrimSpace(itinerary[i].Evening)
		}
	}

	return itineraryUpdate{itinerary: itinerary}, usage, nil
}
