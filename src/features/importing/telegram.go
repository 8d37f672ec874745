package importing

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for importing
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for importing
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes importing-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	if command != "import" {
		return nil
	}
	dir := strings.TrimSpace(args)
	if dir == "" {
		bot.Send(tgbotapi.NewMessage(chatID, "Usage: /import <directory>"))
		return nil
	}
	stats, err := h.service.ImportDirectory(context.Background(), dir)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Import failed: %v", err)))
		return nil
	}
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("📥 Queued %d files\nSkipped: %d\nErrors: %d\n\nUse /process to add them to the library.", stats.Queued, stats.Skipped, stats.Errors)))
	return nil
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"import": "Queue every audio file in a directory: /import <path>",
	}
}

// HandleCallback handles callback queries for importing
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}
