package adding

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the adding feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the adding feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes adding-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "add":
		return h.handleAdd(bot, chatID, args)
	case "pending":
		return h.handlePending(bot, chatID)
	case "process":
		return h.handleProcess(bot, chatID)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown adding command. Use /add, /pending or /process"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"add":     "Queue a song: /add Title | Artist | Album",
		"pending": "Show songs waiting to be added",
		"process": "Add every pending song to the library",
	}
}

// HandleCallback handles callback queries for this feature (adding has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// ParseAddArgs splits "Title | Artist | Album" into a SongInput.
func ParseAddArgs(args string) SongInput {
	parts := strings.Split(args, "|")
	var input SongInput
	if len(parts) > 0 {
		input.Title = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		input.Artist = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		input.Album = strings.TrimSpace(parts[2])
	}
	return input
}

func (h *TelegramHandler) handleAdd(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	song, err := h.service.Enqueue(context.Background(), ParseAddArgs(args))
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ %v\nUsage: /add Title | Artist | Album", err)))
		return nil
	}
	bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("➕ Queued %s (%d pending). Use /process to add.", song.String(), h.service.Len())))
	return nil
}

func (h *TelegramHandler) handlePending(bot *tgbotapi.BotAPI, chatID int64) error {
	pending := h.service.Pending()
	if len(pending) == 0 {
		bot.Send(tgbotapi.NewMessage(chatID, "📭 Pending queue is empty"))
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "⏳ Pending additions (%d)\n\n", len(pending))
	for i, song := range pending {
		fmt.Fprintf(&b, "%d. %s\n", i+1, song.String())
	}
	bot.Send(tgbotapi.NewMessage(chatID, b.String()))
	return nil
}

func (h *TelegramHandler) handleProcess(bot *tgbotapi.BotAPI, chatID int64) error {
	result := h.service.ProcessAll(context.Background())
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Added %d songs", result.Processed)
	if result.Failed > 0 {
		fmt.Fprintf(&b, "\n❌ %d failed:", result.Failed)
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "\n• %s: %s", f.Song.String(), f.Reason)
		}
	}
	bot.Send(tgbotapi.NewMessage(chatID, b.String()))
	return nil
}
