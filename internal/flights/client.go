// Package flights fetches flight options from the SerpAPI google_flights
// engine and normalizes the inconsistently-shaped results into display-ready
// records.
package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/planner"

	"github.com/rs/zerolog/log"
)

const maxResults = 6

// Client is a SerpAPI google_flights client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new flight-search client. Searches are bounded by a
// fixed 20 second timeout.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.SerpAPIKey,
		baseURL: cfg.SerpAPIURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type searchResponse struct {
	BestFlights  []map[string]any `json:"best_flights"`
	OtherFlights []map[string]any `json:"other_flights"`
}

// Search fetches up to six flight options between two airport codes. A
// missing API key yields an empty slice rather than an error so the pipeline
// can run without flight credentials.
func (c *Client) Search(ctx context.Context, source, destination, departDate, returnDate string) ([]planner.Flight, error) {
	if c.apiKey == "" {
		log.Warn().Msg("SERPAPI_KEY missing; skipping flight search")
		return []planner.Flight{}, nil
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", source)
	params.Set("arrival_id", destination)
	params.Set("currency", "INR")
	params.Set("hl", "en")
	params.Set("api_key", c.apiKey)
	if departDate != "" {
		params.Set("outbound_date", departDate)
	}
	if returnDate != "" {
		params.Set("return_date", returnDate)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("serpapi error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := search.BestFlights
	if len(results) == 0 {
		results = search.OtherFlights
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	flights := make([]planner.Flight, 0, len(results))
	for _, f := range results {
		flights = append(flights, normalizeFlight(f))
	}
	return flights, nil
}

// normalizeFlight coerces one raw result into the canonical Flight shape.
// SerpAPI data is inconsistent: price may be a number or an object, duration
// may live on the result or on the first leg.
func normalizeFlight(f map[string]any) planner.Flight {
	leg := firstLeg(f)

	price := f["price"]
	if m, ok := price.(map[string]any); ok {
		if display, ok := m["price_display"]; ok {
			price = display
		} else {
			price = m["amount"]
		}
	}

	airline, _ := leg["airline_name"].(string)
	if airline == "" {
		if name, ok := leg["airline"].(string); ok {
			airline = name
		} else {
			airline = "Unknown"
		}
	}

	stops := "Non-stop"
	if layovers := intValue(f["total_layovers"]); layovers > 0 {
		stops = fmt.Sprintf("%d stop(s)", layovers)
	}

	logo, _ := leg["airline_logo"].(string)
	if logo == "" {
		logo, _ = f["airline_logo"].(string)
	}

	return planner.Flight{
		Airline:     airline,
		Price:       rupeeString(price),
		Duration:    extractDuration(f),
		Stops:       stops,
		AirlineLogo: logo,
	}
}

func firstLeg(f map[string]any) map[string]any {
	legs, ok := f["flights"].([]any)
	if !ok || len(legs) == 0 {
		return map[string]any{}
	}
	leg, ok := legs[0].(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return leg
}

// extractDuration tries the known duration patterns in turn: an object with
// a minutes value or preformatted text, a bare number or string, then the
// first leg.
func extractDuration(f map[string]any) string {
	switch dur := f["duration"].(type) {
	case map[string]any:
		if value, ok := dur["value"]; ok {
			return durationString(value)
		}
		if text, ok := dur["text"].(string); ok {
			return text
		}
	case float64, string:
		return durationString(dur)
	}

	leg := firstLeg(f)
	if value, ok := leg["duration"]; ok {
		return durationString(value)
	}
	return ""
}

// durationString converts numeric minutes to "Xh Ym". Strings that are not
// numeric pass through unchanged.
func durationString(v any) string {
	if v == nil {
		return ""
	}
	n, ok := toInt(v)
	if !ok {
		return asDisplayString(v)
	}
	h := n / 60
	m := n % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// rupeeString formats a numeric price as ₹ with thousand separators. Values
// that are not numeric pass through as display strings.
func rupeeString(v any) string {
	if v == nil {
		return ""
	}
	n, ok := toInt(v)
	if !ok {
		return asDisplayString(v)
	}
	return "₹" + groupDigits(n)
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func intValue(v any) int {
	n, _ := toInt(v)
	return n
}

func asDisplayString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
