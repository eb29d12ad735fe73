package planner

import (
	"context"
	_ "embed"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed restaurants_prompt.md
var restaurantsPrompt string

var sampleRestaurants = []map[string]any{
	{"name": "The Seaside Café", "cuisine": "Seafood", "must_try": []string{"Grilled Prawns"}},
	{"name": "Heritage Dhaba", "cuisine": "Local", "must_try": []string{"Thali"}},
	{"name": "Rooftop Bistro", "cuisine": "Continental", "must_try": []string{"Steak"}},
}

// runRestaurants asks the generator for restaurant suggestions. Output that
// cannot be normalized into a record list degrades to the sample list.
func (p *Planner) runRestaurants(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	prompt := fmt.Sprintf(
		"Suggest 6 restaurants in %s covering budget, mid-range and splurge options. For each include cuisine and 1-2 must-try dishes.",
		s.DestinationCity,
	)

	raw, usage, err := p.generate(ctx, prompt, restaurantsPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("restaurants: generation failed; using sample list")
		return restaurantsUpdate{restaurants: sampleRestaurants}, usage, nil
	}

	normalized := toRestaurants(raw)
	if len(normalized) == 0 {
		log.Warn().Msg("restaurants: normalization empty; using sample list")
		return restaurantsUpdate{restaurants: sampleRestaurants}, usage, nil
	}
	return restaurantsUpdate{restaurants: normalized}, usage, nil
}
