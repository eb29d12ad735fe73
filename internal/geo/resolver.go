// Package geo resolves airport codes to human-readable place names.
package geo

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed iata_city_map.json
var iataCityJSON []byte

// Resolver is a read-only IATA code to city name lookup. It is immutable
// after construction and safe to share across concurrent requests.
type Resolver struct {
	cities map[string]string
}

// NewResolver builds a resolver from the embedded IATA map. If the embedded
// resource cannot be parsed, the resolver falls back to an empty table and
// every lookup returns the input code unchanged.
func NewResolver() *Resolver {
	var raw map[string]string
	if err := json.Unmarshal(iataCityJSON, &raw); err != nil {
		log.Warn().Err(err).Msg("failed to parse embedded IATA city map; falling back to empty map")
		return &Resolver{cities: map[string]string{}}
	}

	cities := make(map[string]string, len(raw))
	for code, name := range raw {
		cities[strings.ToUpper(code)] = name
	}
	return &Resolver{cities: cities}
}

// NewResolverFromMap builds a resolver from an explicit table. Keys are
// normalized to uppercase.
func NewResolverFromMap(table map[string]string) *Resolver {
	cities := make(map[string]string, len(table))
	for code, name := range table {
		cities[strings.ToUpper(code)] = name
	}
	return &Resolver{cities: cities}
}

// Resolve returns the city name for an IATA code. Unknown codes resolve to
// the uppercased code itself so downstream prompts always receive something.
func (r *Resolver) Resolve(code string) string {
	if code == "" {
		return ""
	}
	upper := strings.ToUpper(code)
	if name, ok := r.cities[upper]; ok {
		return name
	}
	return upper
}
