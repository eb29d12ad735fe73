package planner

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Flight is one flight option with display-ready fields. Price and duration
// are already formatted strings, not raw numerics.
type Flight struct {
	Airline     string `json:"airline"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Stops       string `json:"stops"`
	AirlineLogo string `json:"airline_logo,omitempty"`
}

// Hotel is one lodging option inside a price bucket.
type Hotel struct {
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	Area       string   `json:"area"`
	Highlights []string `json:"highlights"`
}

// Hotels groups lodging options into the three canonical price buckets. All
// three buckets are always present, possibly empty.
type Hotels struct {
	Budget   []Hotel `json:"budget"`
	MidRange []Hotel `json:"mid_range"`
	Luxury   []Hotel `json:"luxury"`
}

func emptyHotels() Hotels {
	return Hotels{Budget: []Hotel{}, MidRange: []Hotel{}, Luxury: []Hotel{}}
}

// ItineraryDay is one day of the itinerary split into three time slots.
type ItineraryDay struct {
	Day       int    `json:"day"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
}

// Meta identifies how and when a plan was produced.
type Meta struct {
	Planner     string `json:"planner"`
	GeneratedAt string `json:"generated_at"`
}

// TravelPlan is the assembled output record.
type TravelPlan struct {
	Source      string           `json:"source"`
	Destination string           `json:"destination"`
	DepartDate  string           `json:"depart_date"`
	ReturnDate  string           `json:"return_date"`
	NumDays     int              `json:"num_days"`
	Theme       string           `json:"theme"`
	Flights     []Flight         `json:"flights"`
	Hotels      Hotels           `json:"hotels"`
	Attractions []map[string]any `json:"attractions"`
	Restaurants []map[string]any `json:"restaurants"`
	Transport   map[string]any   `json:"transport"`
	Weather     map[string]any   `json:"weather"`
	Itinerary   []ItineraryDay   `json:"itinerary"`
	Meta        Meta             `json:"meta"`
}

// Validate performs the strict structural checks on an assembled plan. The
// caller treats a failure as "degrade to best-effort", never as a request
// failure.
func (p *TravelPlan) Validate() error {
	if p.Source == "" {
		return fmt.Errorf("source is empty")
	}
	if p.Destination == "" {
		return fmt.Errorf("destination is empty")
	}
	if p.DepartDate == "" || p.ReturnDate == "" {
		return fmt.Errorf("depart_date and return_date must be set")
	}
	if p.NumDays < 1 {
		return fmt.Errorf("num_days must be >= 1, got %d", p.NumDays)
	}
	if p.Hotels.Budget == nil || p.Hotels.MidRange == nil || p.Hotels.Luxury == nil {
		return fmt.Errorf("hotels must contain all three buckets")
	}
	if p.Flights == nil || p.Attractions == nil || p.Restaurants == nil {
		return fmt.Errorf("flights, attractions and restaurants must be present")
	}
	if p.Transport == nil || p.Weather == nil {
		return fmt.Errorf("transport and weather must be present")
	}
	if len(p.Itinerary) != p.NumDays {
		return fmt.Errorf("itinerary has %d days, expected %d", len(p.Itinerary), p.NumDays)
	}
	for i, day := range p.Itinerary {
		if day.Day < 1 {
			return fmt.Errorf("itinerary entry %d has non-positive day number %d", i, day.Day)
		}
		if i > 0 && day.Day < p.Itinerary[i-1].Day {
			return fmt.Errorf("itinerary days not sorted ascending at index %d", i)
		}
	}
	return nil
}

// Assemble builds the output record from the final pipeline state. On
// validation failure the unvalidated record is returned as a best-effort
// result; the contract with the caller is "always return a plan".
func Assemble(state *PlanState) *TravelPlan {
	plan := &TravelPlan{
		Source:      state.SourceCode,
		Destination: state.DestinationCity,
		DepartDate:  state.DepartDate,
		ReturnDate:  state.ReturnDate,
		NumDays:     state.NumDays,
		Theme:       state.Theme,
		Flights:     state.Flights,
		Hotels:      state.Hotels,
		Attractions: state.Attractions,
		Restaurants: state.Restaurants,
		Transport:   state.Transport,
		Weather:     state.Weather,
		Itinerary:   state.Itinerary,
		Meta: Meta{
			Planner:     "sequential",
			GeneratedAt: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		},
	}

	if err := plan.Validate(); err != nil {
		log.Warn().Err(err).Msg("travel plan validation failed; returning best-effort result")
	}
	return plan
}
