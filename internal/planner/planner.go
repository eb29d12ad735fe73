// Package planner assembles a multi-section travel plan by running a fixed
// sequence of content-generation stages over a shared plan state and merging
// their outputs into one consistent record.
package planner

import (
	"context"
	"fmt"
	"time"

	"ai-travel-planner/internal/geo"
	"ai-travel-planner/internal/llm"
	"ai-travel-planner/internal/shared"

	"github.com/rs/zerolog/log"
)

// FlightSearcher finds flight options between two airport codes. Missing
// credentials or transport failure yields an empty slice.
type FlightSearcher interface {
	Search(ctx context.Context, source, destination, departDate, returnDate string) ([]Flight, error)
}

// Planner runs the planning pipeline.
type Planner struct {
	gen     llm.Generator
	flights FlightSearcher
	cities  *geo.Resolver
}

// NewPlanner creates a new Planner instance.
func NewPlanner(gen llm.Generator, flights FlightSearcher, cities *geo.Resolver) *Planner {
	return &Planner{
		gen:     gen,
		flights: flights,
		cities:  cities,
	}
}

// stage is one pipeline step producing one content family of the plan.
type stage struct {
	name string
	run  func(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error)
}

// GeneratePlan executes the stage sequence against a fresh plan state and
// assembles the output. Stage failures are isolated: a failed stage leaves
// its field at the canonical default and the pipeline continues, so the
// caller always gets a structurally complete plan.
func (p *Planner) GeneratePlan(ctx context.Context, req Request) (*TravelPlan, []shared.StageMeta, error) {
	state := p.newPlanState(req)

	stages := []stage{
		{"flights", p.runFlights},
		{"hotels", p.runHotels},
		{"attractions", p.runAttractions},
		{"restaurants", p.runRestaurants},
		{"transport", p.runTransport},
		{"weather", p.runWeather},
		{"itinerary", p.runItinerary},
	}

	metas := make([]shared.StageMeta, 0, len(stages))
	for _, st := range stages {
		start := time.Now()
		update, usage, err := runStageSafe(ctx, st, state)
		meta := shared.StageMeta{
			StageName: st.name,
			Usage:     usage,
			Latency:   time.Since(start),
		}
		if err != nil {
			meta.Failed = true
			log.Warn().Err(err).Str("stage", st.name).Msg("stage failed; continuing with available data")
		} else {
			update.apply(state)
		}
		metas = append(metas, meta)
	}

	return Assemble(state), metas, nil
}

// runStageSafe invokes one stage and converts a panic into a stage error so
// no single stage can take down the pipeline.
func runStageSafe(ctx context.Context, st stage, state *PlanState) (update stageUpdate, usage shared.TokenUsage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage %s panicked: %v", st.name, r)
		}
	}()
	return st.run(ctx, state)
}

// generate calls the content generator and decodes its JSON answer.
func (p *Planner) generate(ctx context.Context, prompt, system string) (any, shared.TokenUsage, error) {
	resp, err := p.gen.Generate(ctx, prompt, system)
	if err != nil {
		return nil, resp.Usage, err
	}
	value, err := llm.DecodeJSON(resp.Content)
	if err != nil {
		return nil, resp.Usage, err
	}
	return value, resp.Usage, nil
}
