package telegram

import (
	"strings"
	"testing"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestSenderAllowed(t *testing.T) {
	bot := &Bot{cfg: &config.Config{TelegramAllowedUserIDs: []int64{42}}}

	t.Run("AllowedUser", func(t *testing.T) {
		msg := &tgbotapi.Message{From: &tgbotapi.User{ID: 42}}
		if !bot.senderAllowed(msg) {
			t.Error("Expected user 42 to be allowed")
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		msg := &tgbotapi.Message{From: &tgbotapi.User{ID: 7}}
		if bot.senderAllowed(msg) {
			t.Error("Expected user 7 to be rejected")
		}
	})

	t.Run("NoSender", func(t *testing.T) {
		msg := &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}}
		if bot.senderAllowed(msg) {
			t.Error("Expected a message without a sender to be rejected")
		}
	})
}

func TestParsePlanRequest(t *testing.T) {
	t.Run("BasicRequest", func(t *testing.T) {
		req, err := parsePlanRequest("BOM GOI 2026-01-10 2026-01-13")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if req.Source != "BOM" || req.Destination != "GOI" {
			t.Errorf("Unexpected codes: %s -> %s", req.Source, req.Destination)
		}
		if req.DepartDate != "2026-01-10" || req.ReturnDate != "2026-01-13" {
			t.Errorf("Unexpected dates: %s -> %s", req.DepartDate, req.ReturnDate)
		}
		if req.Theme != "" {
			t.Errorf("Expected empty theme, got '%s'", req.Theme)
		}
	})

	t.Run("MultiWordTheme", func(t *testing.T) {
		req, err := parsePlanRequest("DEL JAI 2026-02-01 2026-02-05 heritage and food")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if req.Theme != "heritage and food" {
			t.Errorf("Expected theme 'heritage and food', got '%s'", req.Theme)
		}
	})

	t.Run("TooFewFields", func(t *testing.T) {
		if _, err := parsePlanRequest("BOM GOI"); err == nil {
			t.Error("Expected error for incomplete request")
		}
	})
}

func TestFormatPlanMarkdown(t *testing.T) {
	plan := &planner.TravelPlan{
		Source:      "BOM",
		Destination: "Goa",
		DepartDate:  "2026-01-10",
		ReturnDate:  "2026-01-12",
		NumDays:     2,
		Theme:       "Beach",
		Flights: []planner.Flight{
			{Airline: "IndiGo", Price: "₹4,521", Duration: "1h 10m", Stops: "Non-stop"},
		},
		Itinerary: []planner.ItineraryDay{
			{Day: 1, Morning: "Beach walk", Evening: "Seafood dinner"},
			{Day: 2, Afternoon: "Fort visit"},
		},
		Restaurants: []map[string]any{
			{"name": "The Seaside Café", "cuisine": "Seafood"},
			{"name": "Heritage Dhaba"},
		},
	}

	text := formatPlanMarkdown(plan)

	for _, want := range []string{
		"*BOM → Goa* (2 days, Beach)",
		"IndiGo — ₹4,521, 1h 10m, Non-stop",
		"*Day 1*",
		"🌅 Beach walk",
		"🌙 Seafood dinner",
		"☀️ Fort visit",
		"The Seaside Café (Seafood)",
		"• Heritage Dhaba",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain '%s', got:\n%s", want, text)
		}
	}

	if strings.Contains(text, "*Day 1*\n☀️") {
		t.Error("Empty slots must be skipped, not rendered")
	}
}
