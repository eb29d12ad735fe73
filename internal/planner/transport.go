package planner

import (
	"context"
	_ "embed"
	"fmt"

	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

//go:embed transport_prompt.md
var transportPrompt string

// defaultTransport is the documented fallback when the stage fails or the
// generator answers with an unusable shape.
func defaultTransport() map[string]any {
	return map[string]any{"best_way": "", "avg_cost": "", "tips": ""}
}

// runTransport asks the generator for local transport advice. Any failure,
// including a response that is not a mapping, yields the documented default
// record.
func (p *Planner) runTransport(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	prompt := fmt.Sprintf(
		"Best ways to get around %s for tourists. Provide an average per-day cost and short practical tips.",
		s.DestinationCity,
	)

	raw, usage, err := p.generate(ctx, prompt, transportPrompt)
	if err != nil {
		log.Warn().Err(err).Msg("transport: generation failed; using default")
		return transportUpdate{transport: defaultTransport()}, usage, nil
	}

	record, ok := asRecord(raw)
	if !ok {
		log.Warn().Msg("transport: response is not a mapping; using default")
		return transportUpdate{transport: defaultTransport()}, usage, nil
	}
	return transportUpdate{transport: record}, usage, nil
}
