// Package telegram exposes the planning pipeline through a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/metrics"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/server"
	"ai-travel-planner/internal/shared"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const usageHint = "Send a trip request like:\n`BOM GOI 2026-01-10 2026-01-14 Beach`\n(source, destination, depart date, return date, optional theme)"

// Bot wraps the Telegram API, the travel planner, and the metrics store.
type Bot struct {
	api          *tgbotapi.BotAPI
	planner      server.PlanGenerator
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, p server.PlanGenerator, store *metrics.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Info().Str("description", resp.Description).Msg("webhook set")

	return &Bot{api: api, planner: p, metricsStore: store, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Warn().Err(err).Msg("error parsing telegram update")
		return
	}

	if update.Message == nil {
		return
	}

	if !b.senderAllowed(update.Message) {
		return
	}

	go b.processMessage(update.Message)
}

// senderAllowed checks the message sender against the allow list. Channel
// posts and other updates without a sender are rejected.
func (b *Bot) senderAllowed(msg *tgbotapi.Message) bool {
	if msg.From == nil {
		log.Warn().Msg("telegram message without a sender ignored")
		return false
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if msg.From.ID == id {
			return true
		}
	}
	log.Warn().Int64("user_id", msg.From.ID).Msg("unauthorized telegram access attempt")
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}
	if msg.Text == "/start" || msg.Text == "/help" {
		b.reply(msg.Chat.ID, usageHint)
		return
	}

	req, err := parsePlanRequest(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, "❌ "+err.Error()+"\n\n"+usageHint)
		return
	}

	b.generateAndSendPlan(msg.Chat.ID, req)
}

// parsePlanRequest parses "SRC DST DEPART RETURN [theme...]" into a plan
// request.
func parsePlanRequest(text string) (planner.Request, error) {
	fields := strings.Fields(text)
	if len(fields) < 4 {
		return planner.Request{}, fmt.Errorf("could not parse trip request")
	}

	req := planner.Request{
		Source:      fields[0],
		Destination: fields[1],
		DepartDate:  fields[2],
		ReturnDate:  fields[3],
	}
	if len(fields) > 4 {
		req.Theme = strings.Join(fields[4:], " ")
	}
	return req, nil
}

func (b *Bot) generateAndSendPlan(chatID int64, req planner.Request) {
	statusMsg := tgbotapi.NewMessage(chatID, "🧳 *Planning your trip...*")
	statusMsg.ParseMode = "Markdown"
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to send initial reply")
		return
	}

	plan, metas, err := b.planner.GeneratePlan(context.Background(), req)

	b.recordStageMetrics(metas)

	var finalText string
	if err != nil {
		log.Error().Err(err).Msg("error generating travel plan")
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", safeErr)
	} else {
		finalText = formatPlanMarkdown(plan)
	}

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func (b *Bot) recordStageMetrics(metas []shared.StageMeta) {
	if b.metricsStore == nil {
		return
	}
	for _, meta := range metas {
		if err := b.metricsStore.RecordMeta(meta); err != nil {
			log.Warn().Err(err).Str("stage", meta.StageName).Msg("failed to record stage metrics")
		}
	}
}

func formatPlanMarkdown(plan *planner.TravelPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✈️ *%s → %s* (%d days, %s)\n%s → %s\n\n", plan.Source, plan.Destination, plan.NumDays, plan.Theme, plan.DepartDate, plan.ReturnDate)

	if len(plan.Flights) > 0 {
		sb.WriteString("*Flights*\n")
		for _, f := range plan.Flights {
			fmt.Fprintf(&sb, "• %s — %s, %s, %s\n", f.Airline, f.Price, f.Duration, f.Stops)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("🗓 *Itinerary*\n")
	for _, day := range plan.Itinerary {
		fmt.Fprintf(&sb, "*Day %d*\n", day.Day)
		if day.Morning != "" {
			fmt.Fprintf(&sb, "🌅 %s\n", day.Morning)
		}
		if day.Afternoon != "" {
			fmt.Fprintf(&sb, "☀️ %s\n", day.Afternoon)
		}
		if day.Evening != "" {
			fmt.Fprintf(&sb, "🌙 %s\n", day.Evening)
		}
		sb.WriteString("\n")
	}

	if len(plan.Restaurants) > 0 {
		sb.WriteString("🍽 *Where to eat*\n")
		for _, r := range plan.Restaurants {
			name, _ := r["name"].(string)
			cuisine, _ := r["cuisine"].(string)
			if cuisine != "" {
				fmt.Fprintf(&sb, "• %s (%s)\n", name, cuisine)
			} else {
				fmt.Fprintf(&sb, "• %s\n", name)
			}
		}
	}

	return sb.String()
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.reply(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.Snapshot(filepath.Dir(b.cfg.DatabasePath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Stage Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d tokens (%d stages, %d failed)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution, d.TotalFailed)
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• Uptime: %s\n", health.Uptime)
	fmt.Fprintf(&sb, "• RAM: %dMB (Heap) / %dMB (Sys)\n", health.HeapAllocMB, health.HeapSysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataSize)

	b.reply(msg.Chat.ID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
