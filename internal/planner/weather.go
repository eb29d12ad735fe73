package planner

import (
	"context"
	_ "embed"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed weather_prompt.md
var weatherPrompt string

func defaultWeather() map[string]any {
	return map[string]any{"summary": "Not available", "temperature": "", "recommendation": ""}
}

// runWeather asks the generator for a trip-length weather summary. The
// weather family has no live data source; the generator is the only input.
func (p *Planner) runWeather(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	prompt := fmt.Sprintf(
		"Provide a %d-day weather summary for %s and a short recommendation for travelers.",
		s.NumDays, s.DestinationCity,
	)

	raw, usage, err := p.generate(ctx, prompt, weatherPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("weather: generation failed; using default")
		return weatherUpdate{weather: defaultWeather()}, usage, nil
	}

	record, ok := asRecord(raw)
	if !ok {
		log.Warn().Msg("weather: response is not a mapping; using default")
		return weatherUpdate{weather: defaultWeather()}, usage, nil
	}
	return weatherUpdate{weather: record}, usage, nil
}
