package planner

import (
	"context"
	_ "embed"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed hotels_prompt.md
var hotelsPrompt string

// runHotels asks the generator for lodging options in the three canonical
// price buckets. Any failure, including a response that is not a mapping,
// yields three empty buckets.
func (p *Planner) runHotels(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	prompt := fmt.Sprintf(
		"Suggest 3 hotels each for budget, mid-range and luxury in %s. Theme: %s in Indian currency.",
		s.DestinationCity, s.Theme,
	)

	raw, usage, err := p.generate(ctx, prompt, hotelsPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("hotels: generation failed; using empty buckets")
		return hotelsUpdate{hotels: emptyHotels()}, usage, nil
	}

	hotels, ok := decodeHotels(raw)
	if !ok {
		log.Warn().Msg("hotels: response is not a mapping; using empty buckets")
		return hotelsUpdate{hotels: emptyHotels()}, usage, nil
	}
	return hotelsUpdate{hotels: hotels}, usage, nil
}
