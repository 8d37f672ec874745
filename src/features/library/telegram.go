package library

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contre95/songshelf/src/music"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const telegramListLimit = 30

// TelegramHandler handles Telegram commands for the library feature
type TelegramHandler struct {
	service *Service
}

// NewTelegramHandler creates a new Telegram handler for the library feature
func NewTelegramHandler(service *Service) *TelegramHandler {
	return &TelegramHandler{service: service}
}

// HandleCommand processes library-related Telegram commands
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	switch command {
	case "list":
		return h.handleList(bot, chatID)
	case "search":
		return h.handleSearch(bot, chatID, args)
	case "find":
		return h.handleFind(bot, chatID, args)
	default:
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Unknown library command. Use /list, /search or /find"))
		return nil
	}
}

// GetCommands returns the available commands for this handler
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"list":   "List songs sorted by title",
		"search": "Search title, artist and album (/search lennon)",
		"find":   "Find a song by its exact title (/find Imagine)",
	}
}

// HandleCallback handles callback queries for this feature (library has no callbacks)
func (h *TelegramHandler) HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool {
	return false
}

func (h *TelegramHandler) handleList(bot *tgbotapi.BotAPI, chatID int64) error {
	songs, err := h.service.ListSongs(context.Background())
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Failed to load songs"))
		return err
	}
	bot.Send(tgbotapi.NewMessage(chatID, FormatSongList("🎵 Songs", songs, telegramListLimit)))
	return nil
}

func (h *TelegramHandler) handleSearch(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	if strings.TrimSpace(args) == "" {
		bot.Send(tgbotapi.NewMessage(chatID, "Usage: /search <text>"))
		return nil
	}
	songs, err := h.service.SearchSongs(context.Background(), args)
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Search failed"))
		return err
	}
	bot.Send(tgbotapi.NewMessage(chatID, FormatSongList(fmt.Sprintf("🔎 Results for %q", args), songs, telegramListLimit)))
	return nil
}

func (h *TelegramHandler) handleFind(bot *tgbotapi.BotAPI, chatID int64, args string) error {
	song, err := h.service.FindByTitle(context.Background(), args)
	if errors.Is(err, music.ErrSongNotFound) {
		bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("No song titled %q", args)))
		return nil
	}
	if err != nil {
		bot.Send(tgbotapi.NewMessage(chatID, "❌ Lookup failed"))
		return err
	}
	bot.Send(tgbotapi.NewMessage(chatID, song.Details()))
	return nil
}

// FormatSongList renders at most limit songs, one per line, with their IDs.
func FormatSongList(header string, songs []*music.Song, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n\n", header, len(songs))
	if len(songs) == 0 {
		b.WriteString("Nothing here.")
		return b.String()
	}
	for i, s := range songs {
		if i == limit {
			fmt.Fprintf(&b, "… and %d more", len(songs)-limit)
			break
		}
		fmt.Fprintf(&b, "• %s [%s]\n", s.String(), s.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}
