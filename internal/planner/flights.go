package planner

import (
	"context"

	"ai-travel-planner/internal/shared"
)

// runFlights fetches flight options from the flight-search collaborator.
// There is no LLM fallback for flights: a failed or empty search yields an
// empty list.
func (p *Planner) runFlights(ctx context.Context, s *PlanState) (stageUpdate, shared.TokenUsage, error) {
	flights, err := p.flights.Search(ctx, s.SourceCode, s.DestinationCode, s.DepartDate, s.ReturnDate)
	if err != nil {
		return nil, shared.TokenUsage{}, err
	}
	if flights == nil {
		flights = []Flight{}
	}
	return flightsUpdate{flights: flights}, shared.TokenUsage{}, nil
}
