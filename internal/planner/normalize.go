package planner

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// toItinerary coerces arbitrary generator output into a day-by-day itinerary
// of exactly numDays entries. Recognized shapes, in order: a sequence of day
// records, a mapping with a nested sequence under a well-known key, and a
// mapping of day numbers to day records. Anything else degrades to the
// built-in sample itinerary. Output is sorted by day and padded or truncated
// to exactly numDays entries.
func toItinerary(raw any, numDays int) []ItineraryDay {
	out := []ItineraryDay{}

	switch data := raw.(type) {
	case []any:
		for i, elem := range data {
			m, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, ItineraryDay{
				Day:       asInt(m["day"], i+1),
				Morning:   strings.TrimSpace(asString(m["morning"])),
				Afternoon: strings.TrimSpace(asString(m["afternoon"])),
				Evening:   strings.TrimSpace(asString(m["evening"])),
			})
		}
	case map[string]any:
		for _, key := range []string{"itinerary", "days", "plan", "schedule"} {
			if nested, ok := data[key].([]any); ok {
				return toItinerary(nested, numDays)
			}
		}
		// Some generators answer with {"1": {...}, "2": {...}}. Keys are
		// visited in sorted order so the running counter is deterministic.
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m, ok := data[k].(map[string]any)
			if !ok {
				continue
			}
			if _, hasSlot := firstSlotKey(m); !hasSlot {
				continue
			}
			out = append(out, ItineraryDay{
				Day:       asInt(k, len(out)+1),
				Morning:   strings.TrimSpace(asString(m["morning"])),
				Afternoon: strings.TrimSpace(asString(m["afternoon"])),
				Evening:   strings.TrimSpace(asString(m["evening"])),
			})
		}
	}

	for i := len(out) + 1; i <= numDays; i++ {
		if i <= len(sampleItinerary) {
			out = append(out, sampleItinerary[i-1])
		} else {
			out = append(out, ItineraryDay{Day: i})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	if len(out) > numDays {
		out = out[:numDays]
	}
	return out
}

func firstSlotKey(m map[string]any) (string, bool) {
	for _, slot := range []string{"morning", "afternoon", "evening"} {
		if _, ok := m[slot]; ok {
			return slot, true
		}
	}
	return "", false
}

// toRecords coerces generator output into a sequence of records: either the
// value itself is a sequence, or it is a mapping holding a sequence under one
// of the given keys. A nil return means no rule applied.
func toRecords(raw any, keys ...string) []map[string]any {
	switch data := raw.(type) {
	case []any:
		return recordElements(data)
	case map[string]any:
		for _, key := range keys {
			if nested, ok := data[key].([]any); ok {
				return recordElements(nested)
			}
		}
	}
	return nil
}

func recordElements(list []any) []map[string]any {
	out := []map[string]any{}
	for _, elem := range list {
		if m, ok := elem.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// toRestaurants normalizes restaurant output. Beyond the generic record
// rules it recovers content from a generator that answered with a flat
// name→dish map instead of the requested array shape.
func toRestaurants(raw any) []map[string]any {
	if records := toRecords(raw, "restaurants", "items", "results", "data"); records != nil {
		return records
	}

	data, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(data))
	for name, v := range data {
		if _, isString := v.(string); isString {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{
			"name":     name,
			"cuisine":  "",
			"must_try": []string{data[name].(string)},
		})
	}
	return out
}

// decodeHotels performs the structural check for hotel output: the value
// must be a mapping; the three buckets are coerced leniently, with missing
// or malformed buckets replaced by empty ones.
func decodeHotels(raw any) (Hotels, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return emptyHotels(), false
	}
	return Hotels{
		Budget:   hotelBucket(m["budget"]),
		MidRange: hotelBucket(m["mid_range"]),
		Luxury:   hotelBucket(m["luxury"]),
	}, true
}

func hotelBucket(v any) []Hotel {
	out := []Hotel{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, elem := range list {
		m, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Hotel{
			Name:       asString(m["name"]),
			Price:      asString(m["price"]),
			Area:       asString(m["area"]),
			Highlights: stringSlice(m["highlights"]),
		})
	}
	return out
}

// asRecord performs the structural check for single-record families
// (transport, weather): the value must be a mapping.
func asRecord(raw any) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	return m, ok
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

func stringSlice(v any) []string {
	out := []string{}
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, elem := range list {
		out = append(out, asString(elem))
	}
	return out
}
