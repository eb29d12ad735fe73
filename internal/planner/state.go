package planner

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Request carries the trip parameters for one plan generation.
type Request struct {
	Source          string
	Destination     string
	DestinationCity string
	DepartDate      string
	ReturnDate      string
	NumDays         int
	Theme           string
	TripType        string
}

// PlanState is the single mutable record threaded through the pipeline for
// one request. Every content field always holds a value of its canonical
// shape; stages merge only canonicalized output.
type PlanState struct {
	SourceCode      string
	DestinationCode string
	DestinationCity string
	NumDays         int
	Theme           string
	TripType        string
	DepartDate      string
	ReturnDate      string

	Flights     []Flight
	Hotels      Hotels
	Attractions []map[string]any
	Restaurants []map[string]any
	Transport   map[string]any
	Weather     map[string]any
	Itinerary   []ItineraryDay
}

// stageUpdate is a typed partial update returned by a stage. Each update type
// writes exactly the field its stage owns and nothing else.
type stageUpdate interface {
	apply(*PlanState)
}

type flightsUpdate struct{ flights []Flight }

func (u flightsUpdate) apply(s *PlanState) { s.Flights = u.flights }

type hotelsUpdate struct{ hotels Hotels }

func (u hotelsUpdate) apply(s *PlanState) { s.Hotels = u.hotels }

type attractionsUpdate struct{ attractions []map[string]any }

func (u attractionsUpdate) apply(s *PlanState) { s.Attractions = u.attractions }

type restaurantsUpdate struct{ restaurants []map[string]any }

func (u restaurantsUpdate) apply(s *PlanState) { s.Restaurants = u.restaurants }

type transportUpdate struct{ transport map[string]any }

func (u transportUpdate) apply(s *PlanState) { s.Transport = u.transport }

type weatherUpdate struct{ weather map[string]any }

func (u weatherUpdate) apply(s *PlanState) { s.Weather = u.weather }

type itineraryUpdate struct{ itinerary []ItineraryDay }

func (u itineraryUpdate) apply(s *PlanState) { s.Itinerary = u.itinerary }

// newPlanState builds the initial state from a request: identifiers
// uppercased, destination city resolved once, day count and return date
// reconciled, every content field set to its canonical empty value.
func (p *Planner) newPlanState(req Request) *PlanState {
	source := strings.ToUpper(req.Source)
	if source == "" {
		source = "BOM"
	}
	destCode := strings.ToUpper(req.Destination)
	if destCode == "" {
		destCode = "GOI"
	}

	destCity := req.DestinationCity
	if destCity == "" {
		destCity = p.cities.Resolve(destCode)
	}

	theme := req.Theme
	if theme == "" {
		theme = "Luxury"
	}
	tripType := strings.ToLower(req.TripType)
	if tripType == "" {
		tripType = "tourist"
	}

	numDays := req.NumDays
	if numDays < 1 {
		numDays = daysBetween(req.DepartDate, req.ReturnDate)
	}

	returnDate := req.ReturnDate
	if returnDate == "" && req.DepartDate != "" {
		returnDate = addDays(req.DepartDate, numDays)
	}

	return &PlanState{
		SourceCode:      source,
		DestinationCode: destCode,
		DestinationCity: destCity,
		NumDays:         numDays,
		Theme:           theme,
		TripType:        tripType,
		DepartDate:      req.DepartDate,
		ReturnDate:      returnDate,
		Flights:         []Flight{},
		Hotels:          emptyHotels(),
		Attractions:     []map[string]any{},
		Restaurants:     []map[string]any{},
		Transport:       map[string]any{},
		Weather:         map[string]any{},
		Itinerary:       []ItineraryDay{},
	}
}

// daysBetween computes the trip length in whole days, floored to a minimum
// of 1. Unparseable dates fall back to a 3-day trip.
func daysBetween(depart, ret string) int {
	d1, err1 := time.Parse(dateLayout, depart)
	d2, err2 := time.Parse(dateLayout, ret)
	if err1 != nil || err2 != nil {
		return 3
	}
	days := int(d2.Sub(d1).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// addDays shifts an ISO date forward. On parse failure the departure date
// itself is returned so the plan still carries a return date.
func addDays(depart string, days int) string {
	d, err := time.Parse(dateLayout, depart)
	if err != nil {
		return depart
	}
	return d.AddDate(0, 0, days).Format(dateLayout)
}
