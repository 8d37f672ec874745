package deleting

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for the deleting feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the deleting feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes deleting-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "delete":
		return h.handleDelete(bot, chatID, args)
	case "undo":
		return h.handleUndo(bot, chatID)
	case "flush":
		return h.handleFlush(bot, chatID)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown deleting command. Use /delete, /undo or /flush"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"delete": "Stage a song for deletion: /delete <id>",
		"undo":   "Restore the most recently staged song",
		"flush":  "Delete every staged song",
	}
}

// HandleCallback handles the confirm button sent after staging.
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	switch callback.Data {
	case "deleting:flush":
		result := h.service.Flush(context.Background())
		bot.Request(tgbotapi.NewCallback(callback.ID, fmt.Sprintf("Deleted %d", result.Deleted)))
		bot.Send(tgbotapi.NewMessage(callback.Message.Chat.ID, flushSummary(result)))
		return true
	case "deleting:undo":
		msg := "Nothing to undo"
		if song, err := h.service.Undo(); err == nil {
			msg = "Restored " + song.String()
		}
		bot.Request(tgbotapi.NewCallback(callback.ID, msg))
		bot.Send(tgbotapi.NewMessage(callback.Message.Chat.ID, "↩️ "+msg))
		return true
	}
	return false
}

func (h *TelegramHandler) handleDelete(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	id := strings.TrimSpace(args)
	if id == "" {
		bot.Send(tgbotapi.NewMessage(chatID, "Usage: /delete <id>"))
		return nil
	}
	song, err := h.service.Stage(context.Background(), id)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ %v", err)))
		return nil
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🗑 Moved %s to the delete stack (%d staged)", song.String(), h.service.Len()))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo", "deleting:undo"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete all staged", "deleting:flush"),
		),
	)
	bot.Send(msg)
	return nil
}

func (h *TelegramHandler) handleUndo(bot *tgbotapi.BotAPI, chatID int64) error {
	song, err := h.service.Undo()
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "📭 Nothing to undo"))
		return nil
	}
	bot.Send(tgbotapi.NewMessage(chatID, "↩️ Restored "+song.String()))
	return nil
}

func (h *TelegramHandler) handleFlush(bot *tgbotapi.BotAPI, chatID int64) error {
	bot.Send(tgbotapi.NewMessage(chatID, flushSummary(h.service.Flush(context.Background()))))
	return nil
}

func flushSummary(result FlushResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗑 Deleted %d songs", result.Deleted)
	for _, song := range result.Songs {
		fmt.Fprintf(&b, "\n• %s", song.String())
	}
	if result.Failed > 0 {
		fmt.Fprintf(&b, "\n❌ %d failed:", result.Failed)
		for _, f := range result.Failures {
			fmt.Fprintf(&b, "\n• %s: %s", f.Song.String(), f.Reason)
		}
	}
	return b.String()
}
