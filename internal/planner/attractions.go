package planner

import (
	"context"
	_ "embed"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed attractions_prompt.md
var attractionsPrompt string

var sampleAttractions = []map[string]any{
	{"name": "Old Town Heritage Walk", "category": "Culture", "entry_fee": "Free", "best_time": "Morning", "description": "A guided stroll through the historic quarter."},
	{"name": "City Fort", "category": "History", "entry_fee": "₹200", "best_time": "Afternoon", "description": "The landmark fort overlooking the city."},
	{"name": "Sunset Point", "category": "Nature", "entry_fee": "Free", "best_time": "Evening", "description": "A popular viewpoint for sunset photos."},
}

// runAttractions asks the generator for top attractions. Unrecognized output
// shapes degrade to the built-in sample list.
func (p *Planner) runAttractions(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	prompt := fmt.Sprintf(
		"Suggest 6 must-see attractions in %s for a %s trip. For each include a category, entry fee, best time to visit and a one-line description.",
		s.DestinationCity, s.Theme,
	)

	raw, usage, err := p.generate(ctx, prompt, attractionsPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("attractions: generation failed; using sample list")
		return attractionsUpdate{attractions: sampleAttractions}, usage, nil
	}

	records := toRecords(raw, "attractions", "items", "results", "data")
	if len(records) == 0 {
		log.Warn().Msg("attractions: normalization empty; using sample list")
		return attractionsUpdate{attractions: sampleAttractions}, usage, nil
	}
	return attractionsUpdate{attractions: records}, usage, nil
}
