package metrics

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for metrics
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for metrics
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes metrics-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	if command != "stats" {
		return nil
	}
	overview, err := h.service.Overview(context.Background())
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Failed to load stats: %v", err)))
		return nil
	}
	bot.Send(tgbotapi.NewMessage(chatID, FormatOverview(overview)))
	return nil
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"stats": "Show library statistics",
	}
}

// HandleCallback handles callback queries for metrics
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// FormatOverview renders the overview as a plain text message.
func FormatOverview(o *Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Library stats\n\n")
	fmt.Fprintf(&b, "Songs: %d\n", o.TotalSongs)
	fmt.Fprintf(&b, "Playtime: %s\n", o.Playtime)
	fmt.Fprintf(&b, "Pending additions: %d\n", o.PendingAdditions)
	fmt.Fprintf(&b, "Staged deletions: %d\n", o.StagedDeletions)
	if len(o.GenreCounts) > 0 {
		b.WriteString("\nTop genres:\n")
		for i, m := range o.GenreCounts {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "• %s: %d\n", m.Key, m.Value)
		}
	}
	return b.String()
}
