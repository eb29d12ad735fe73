package planner

import (
	"strings"
	"testing"
)

func TestSanitizeForTourist(t *testing.T) {
	t.Run("CleanTextUnchanged", func(t *testing.T) {
		text := "Relax at the beach and try the local seafood"
		if got := sanitizeForTourist(text); got != text {
			t.Errorf("Expected unchanged text, got '%s'", got)
		}
	})

	t.Run("CorporateTermsRewrittenOrFallback", func(t *testing.T) {
		got := sanitizeForTourist("Visit the company headquarters for a meeting")
		if got != fallbackActivity && corporatePattern.MatchString(got) {
			t.Errorf("Rewritten text still contains corporate terms: '%s'", got)
		}
	})

	t.Run("CaseInsensitiveDetection", func(t *testing.T) {
		got := sanitizeForTourist("Attend a SEMINAR in the morning")
		if corporatePattern.MatchString(got) {
			t.Errorf("Uppercase corporate term survived: '%s'", got)
		}
		if got == "Attend a SEMINAR in the morning" {
			t.Error("Expected the text to be rewritten")
		}
	})

	t.Run("ResidualTermForcesFallback", func(t *testing.T) {
		// "workshop" rewrites to "a handicraft workshop", which still
		// matches the detection pattern, so the rewrite is discarded.
		got := sanitizeForTourist("Attend a workshop")
		if got != fallbackActivity {
			t.Errorf("Expected the fallback sentence, got '%s'", got)
		}
	})

	t.Run("EmptyText", func(t *testing.T) {
		if got := sanitizeForTourist(""); got != "" {
			t.Errorf("Expected empty string, got '%s'", got)
		}
	})
}

func TestSanitizeItinerary(t *testing.T) {
	days := []ItineraryDay{
		{Day: 1, Morning: "  Walk the old town  ", Afternoon: "Meet executives at the company office", Evening: "Networking dinner with employees"},
		{Day: 2, Morning: "Visit the fort", Afternoon: "", Evening: "Street food tour"},
	}

	out := sanitizeItinerary(days)

	if out[0].Morning != "Walk the old town" {
		t.Errorf("Expected trimmed clean slot, got '%s'", out[0].Morning)
	}
	for _, day := range out {
		for _, slot := range []string{day.Morning, day.Afternoon, day.Evening} {
			if corporatePattern.MatchString(slot) {
				t.Errorf("Corporate content survived sanitization: '%s'", slot)
			}
			if slot != strings.TrimSpace(slot) {
				t.Errorf("Slot not trimmed: '%s'", slot)
			}
		}
	}
	if out[1].Afternoon != "" {
		t.Errorf("Empty unflagged slot should stay empty, got '%s'", out[1].Afternoon)
	}
}
