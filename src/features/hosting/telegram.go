package hosting

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/contre95/songshelf/src/features/adding"
	"github.com/contre95/songshelf/src/features/config"
	"github.com/contre95/songshelf/src/features/deleting"
	"github.com/contre95/songshelf/src/features/editing"
	"github.com/contre95/songshelf/src/features/importing"
	"github.com/contre95/songshelf/src/features/library"
	"github.com/contre95/songshelf/src/features/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramCommandHandler interface that each feature implements
type TelegramCommandHandler interface {
	HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error
	GetCommands() map[string]string                                             // Returns command -> description mapping
	HandleCallback(bot *tgbotapi.BotAPI, callback *tgbotapi.CallbackQuery) bool // Handle feature-specific callbacks
}

// TelegramBot handles Telegram bot operations
type TelegramBot struct {
	bot      *tgbotapi.BotAPI
	config   *config.Manager
	handlers map[string]TelegramCommandHandler
	commands map[string]string // command -> feature
	updates  tgbotapi.UpdatesChannel
	stopChan chan struct{}

	mu            sync.Mutex
	pendingInputs map[string]string // chatID_messageID -> menu action
}

// NewTelegramBot creates a new Telegram bot instance
func NewTelegramBot(cfg *config.Manager, services Services) (*TelegramBot, error) {
	telegramConfig := cfg.Get().Telegram

	if !telegramConfig.Enabled {
		return nil, fmt.Errorf("telegram bot is disabled in configuration")
	}

	if telegramConfig.Token == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(telegramConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	slog.Info("Telegram bot initialized", "username", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	telegramBot := newTelegramBot(cfg)
	telegramBot.bot = bot
	telegramBot.updates = bot.GetUpdatesChan(updateConfig)

	telegramBot.RegisterHandler("library", library.NewTelegramHandler(services.Library))
	telegramBot.RegisterHandler("adding", adding.NewTelegramHandler(services.Adding))
	telegramBot.RegisterHandler("editing", editing.NewTelegramHandler(services.Editing))
	telegramBot.RegisterHandler("deleting", deleting.NewTelegramHandler(services.Deleting))
	telegramBot.RegisterHandler("importing", importing.NewTelegramHandler(services.Importing))
	telegramBot.RegisterHandler("metrics", metrics.NewTelegramHandler(services.Metrics))
	telegramBot.RegisterHandler("config", config.NewTelegramHandler(cfg))

	return telegramBot, nil
}

func newTelegramBot(cfg *config.Manager) *TelegramBot {
	return &TelegramBot{
		config:        cfg,
		handlers:      make(map[string]TelegramCommandHandler),
		commands:      make(map[string]string),
		stopChan:      make(chan struct{}),
		pendingInputs: make(map[string]string),
	}
}

// RegisterHandler registers a feature's command handler and the commands it answers
func (t *TelegramBot) RegisterHandler(feature string, handler TelegramCommandHandler) {
	t.handlers[feature] = handler
	for command := range handler.GetCommands() {
		if owner, taken := t.commands[command]; taken {
			slog.Warn("Telegram command registered twice", "command", command, "feature", feature, "owner", owner)
			continue
		}
		t.commands[command] = feature
	}
	slog.Debug("Registered Telegram handler", "feature", feature)
}

// Start begins listening for Telegram updates
func (t *TelegramBot) Start() {
	slog.Info("Starting Telegram bot listener")

	for {
		select {
		case update := <-t.updates:
			if update.Message != nil {
				go t.handleMessage(update)
			}
			if update.CallbackQuery != nil {
				go t.handleCallbackQuery(update)
			}
		case <-t.stopChan:
			slog.Info("Stopping Telegram bot listener")
			return
		}
	}
}

// Stop gracefully stops the bot
func (t *TelegramBot) Stop() {
	t.bot.StopReceivingUpdates()
	close(t.stopChan)
}

// authorized reports whether the sender is in the allowed users list.
func (t *TelegramBot) authorized(user *tgbotapi.User) (string, bool) {
	if user == nil {
		return "", false
	}
	username := user.UserName
	if username == "" {
		username = user.FirstName
		if user.LastName != "" {
			username += " " + user.LastName
		}
	}
	return username, slices.Contains(t.config.Get().Telegram.AllowedUsers, username)
}

// handleMessage processes incoming messages
func (t *TelegramBot) handleMessage(update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID

	if len(t.config.Get().Telegram.AllowedUsers) == 0 {
		slog.Warn("No allowed users configured", "chat_id", chatID)
		t.sendMessage(chatID, "❌ Access denied: No users configured. Please add users to the config.")
		return
	}
	username, ok := t.authorized(message.From)
	if !ok {
		slog.Warn("Unauthorized user", "username", username, "chat_id", chatID)
		t.sendMessage(chatID, "Unknown user, please add your user to the config")
		return
	}

	if message.IsCommand() {
		t.handleCommand(update)
		return
	}

	if message.ReplyToMessage != nil {
		if t.handleReplyInput(message) {
			return
		}
	}

	t.sendMessage(chatID, "🤖 Send /menu or /help to see available options")
}

// handleCommand processes bot commands
func (t *TelegramBot) handleCommand(update tgbotapi.Update) {
	message := update.Message
	chatID := message.Chat.ID
	command := message.Command()
	args := message.CommandArguments()

	slog.Debug("Processing command", "command", command, "args", args, "chat_id", chatID)

	switch command {
	case "start", "menu":
		t.handleMenu(chatID)
	case "help":
		t.sendPlain(chatID, t.helpText())
	default:
		if err := t.routeCommand(command, args, chatID); err != nil {
			slog.Error("Failed to handle command", "command", command, "error", err)
			t.sendMessage(chatID, "❌ Failed to process command")
		}
	}
}

// handlerFor returns the feature handler answering the command.
func (t *TelegramBot) handlerFor(command string) (TelegramCommandHandler, bool) {
	feature, ok := t.commands[command]
	if !ok {
		return nil, false
	}
	handler, ok := t.handlers[feature]
	return handler, ok
}

// routeCommand routes commands to the appropriate feature handler
func (t *TelegramBot) routeCommand(command, args string, chatID int64) error {
	handler, ok := t.handlerFor(command)
	if !ok {
		t.sendMessage(chatID, "❌ Unknown command. Send /help to see available commands.")
		return nil
	}
	return handler.HandleCommand(t.bot, chatID, command, args)
}

// helpText lists every registered command sorted by name.
func (t *TelegramBot) helpText() string {
	names := make([]string, 0, len(t.commands))
	for command := range t.commands {
		names = append(names, command)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("🎵 Songshelf commands\n\n")
	for _, command := range names {
		handler, _ := t.handlerFor(command)
		fmt.Fprintf(&b, "/%s - %s\n", command, handler.GetCommands()[command])
	}
	b.WriteString("/menu - Show the main menu\n")
	return b.String()
}

// sendMessage sends a Markdown message to the specified chat
func (t *TelegramBot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send message", "error", err, "chat_id", chatID)
	}
}

// sendPlain sends text without any parse mode
func (t *TelegramBot) sendPlain(chatID int64, text string) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("Failed to send message", "error", err, "chat_id", chatID)
	}
}

// handleCallbackQuery handles callback queries from inline keyboards
func (t *TelegramBot) handleCallbackQuery(update tgbotapi.Update) {
	callback := update.CallbackQuery
	if _, ok := t.authorized(callback.From); !ok {
		t.bot.Request(tgbotapi.NewCallback(callback.ID, "Unknown user"))
		return
	}

	if strings.HasPrefix(callback.Data, "menu_") {
		t.handleMenuCallback(callback)
		return
	}

	for _, handler := range t.handlers {
		if handler.HandleCallback(t.bot, callback) {
			return
		}
	}

	// Answer callback to remove loading state
	t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))
}

// handleMenu shows main menu with inline keyboard
func (t *TelegramBot) handleMenu(chatID int64) {
	text := `*🎵 Songshelf Main Menu*

Choose an action below or send /help for every command:`

	buttons := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("📚 List", "menu_list"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search", "menu_search"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📋 Pending", "menu_pending"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Process", "menu_process"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "menu_delete"),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo", "menu_undo"),
		},
		{
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", "menu_stats"),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Config", "menu_config"),
		},
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	if _, err := t.bot.Send(msg); err != nil {
		slog.Error("Failed to send menu", "error", err, "chat_id", chatID)
	}
}

// handleMenuCallback handles main menu callback queries
func (t *TelegramBot) handleMenuCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	t.bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	switch callback.Data {
	case "menu_search":
		t.promptForInput(chatID, "🔍 *Search*\n\nReply with a title, artist or album:", "search")
	case "menu_delete":
		t.promptForInput(chatID, "🗑 *Delete*\n\nReply with the song ID to stage for deletion:", "delete")
	default:
		command := strings.TrimPrefix(callback.Data, "menu_")
		if err := t.routeCommand(command, "", chatID); err != nil {
			slog.Error("Failed to handle menu command", "command", command, "error", err)
			t.sendMessage(chatID, "❌ Failed to process menu selection")
		}
	}
}

// promptForInput sends a message that forces user to reply with input
func (t *TelegramBot) promptForInput(chatID int64, promptText, command string) {
	msg := tgbotapi.NewMessage(chatID, promptText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}

	sentMsg, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Failed to send prompt", "error", err)
		return
	}
	t.storePendingInput(chatID, sentMsg.MessageID, command)
}

// storePendingInput remembers which command a prompt is collecting input for
func (t *TelegramBot) storePendingInput(chatID int64, messageID int, command string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pendingInputs[fmt.Sprintf("%d_%d", chatID, messageID)] = command
}

// takePendingInput returns and forgets the command waiting on a reply
func (t *TelegramBot) takePendingInput(chatID int64, messageID int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := fmt.Sprintf("%d_%d", chatID, messageID)
	command, ok := t.pendingInputs[key]
	delete(t.pendingInputs, key)
	return command, ok
}

// handleReplyInput handles replies to our input prompts
func (t *TelegramBot) handleReplyInput(message *tgbotapi.Message) bool {
	command, ok := t.takePendingInput(message.Chat.ID, message.ReplyToMessage.MessageID)
	if !ok {
		return false
	}
	if err := t.routeCommand(command, strings.TrimSpace(message.Text), message.Chat.ID); err != nil {
		slog.Error("Failed to handle reply", "command", command, "error", err)
		t.sendMessage(message.Chat.ID, "❌ Failed to process reply")
	}
	return true
}
