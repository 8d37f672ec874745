package editing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/contre95/songshelf/src/music"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateUsage = "Usage: /update <id> field=value; field=value\nFields: title, artist, album, genre, year, duration"

// TelegramHandler handles Telegram commands for the editing feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the editing feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes editing-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "update":
		return h.handleUpdate(bot, chatID, args)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown editing command. Use /update"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"update": "Update a song: /update <id> title=New Title; year=1971",
	}
}

// HandleCallback handles callback queries for this feature (editing has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

// ParseUpdateArgs splits "<id> field=value; field=value" into an ID and an update.
func ParseUpdateArgs(args string) (string, music.SongUpdate, error) {
	var upd music.SongUpdate
	id, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if id == "" {
		return "", upd, fmt.Errorf("missing song id")
	}
	for pair := range strings.SplitSeq(rest, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return "", upd, fmt.Errorf("expected field=value, got %q", pair)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "title":
			upd.Title = &value
		case "artist":
			upd.Artist = &value
		case "album":
			upd.Album = &value
		case "genre":
			upd.Genre = &value
		case "year", "duration":
			n, err := strconv.Atoi(value)
			if err != nil {
				return "", upd, fmt.Errorf("%s must be a number", key)
			}
			if key == "year" {
				upd.Year = &n
			} else {
				upd.Duration = &n
			}
		default:
			return "", upd, fmt.Errorf("unknown field %q", key)
		}
	}
	return id, upd, nil
}

func (h *TelegramHandler) handleUpdate(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	id, upd, err := ParseUpdateArgs(args)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ %v\n%s", err, updateUsage)))
		return nil
	}
	song, err := h.service.UpdateSong(context.Background(), id, upd)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Update failed: %v", err)))
		return nil
	}
	bot.Send(tgbotapi.NewMessage(chatID, "✏️ Updated\n\n"+song.Details()))
	return nil
}
