package bot

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/polybot/internal/database"
	"github.com/example/polybot/internal/scheduler"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// UserState represents the current state of a user in conversation with the bot
type UserState struct {
	State     string
	Timestamp time.Time
	Data      map[string]string
}

// Bot represents the Telegram bot application
type Bot struct {
	api                *tgbotapi.BotAPI
	token              string
	schedulerEnabled   bool
	scheduler          *scheduler.Scheduler
	userStates         map[int64]UserState
	itemListings       map[int64][]string // numbered /items listing -> item IDs
	adminUserIDs       map[int64]bool
	awaitingFileUpload map[int64]bool
	config             *BotConfig

	users   *database.UserRepository
	items   *database.ItemRepository
	videos  *database.VideoRepository
	scripts *database.ScriptRepository
	scores  *database.ScoreRepository
}

// New creates a new bot instance
func New() (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	if database.DB == nil {
		return nil, fmt.Errorf("database connection is not established")
	}

	schedulerEnabled := os.Getenv("ENABLE_SCHEDULER") != "false"

	bot := &Bot{
		token:              token,
		schedulerEnabled:   schedulerEnabled,
		userStates:         make(map[int64]UserState),
		itemListings:       make(map[int64][]string),
		adminUserIDs:       make(map[int64]bool),
		awaitingFileUpload: make(map[int64]bool),
		config:             DefaultConfig(),
		users:              database.NewUserRepository(),
		items:              database.NewItemRepository(),
		videos:             database.NewVideoRepository(),
		scripts:            database.NewScriptRepository(),
		scores:             database.NewScoreRepository(),
	}

	adminIDs := os.Getenv("ADMIN_USER_IDS")
	if adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			bot.adminUserIDs[id] = true
		}
	}

	return bot, nil
}

// Start connects to Telegram and processes updates until the channel closes
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b)
		b.scheduler.Start()
		log.Println("Reminder scheduler started")
	}

	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.schedulerEnabled && b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// SendStudyReminder implements the scheduler.Notifier interface
func (b *Bot) SendStudyReminder(userID int64, dueCount int) error {
	// For private chats the chat ID equals the user ID
	text := fmt.Sprintf("You have %d items below the review threshold. Use /study to generate a practice prompt.", dueCount)
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending reminder to user %d: %v", userID, err)
	}
	return err
}

// isAdmin checks if a user is an admin
func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		if update.Message.IsCommand() {
			b.handleCommand(update.Message)
		} else if b.awaitingFileUpload[update.Message.Chat.ID] {
			if update.Message.Document != nil {
				b.processItemFile(update.Message)
			} else {
				b.reply(update.Message.Chat.ID, "Please send the items as a .csv or .xlsx document.")
			}
		} else if state, ok := b.userStates[update.Message.From.ID]; ok {
			switch state.State {
			case stateWaitingForScript:
				b.processScriptText(update.Message, state)
			default:
				b.reply(update.Message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
			}
		} else {
			b.reply(update.Message.Chat.ID, "I don't understand. Use /menu to show the main menu.")
		}
	} else if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
	}
}

// handleCommand dispatches bot commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStartCommand(message)
	case "menu":
		b.showMainMenu(message.Chat.ID)
	case "study":
		b.handleStudyCommand(message)
	case "level":
		b.handleLevelCommand(message)
	case "items":
		b.handleItemsCommand(message)
	case "add":
		b.handleAddCommand(message)
	case "report":
		b.handleReportCommand(message)
	case "reviewed":
		b.handleReviewedCommand(message)
	case "fav":
		b.handleFavCommand(message)
	case "toggle":
		b.handleToggleCommand(message)
	case "del":
		b.handleDelCommand(message)
	case "videos":
		b.handleVideosCommand(message)
	case "video":
		b.handleVideoCommand(message)
	case "newvideo":
		b.handleNewVideoCommand(message)
	case "videostatus":
		b.handleVideoStatusCommand(message)
	case "script":
		b.handleScriptCommand(message)
	case "score":
		b.handleScoreCommand(message)
	case "export":
		b.handleExportCommand(message)
	case "import":
		b.handleImportCommand(message)
	case "settings":
		b.handleSettingsCommand(message)
	case "setlang":
		b.handleSetLangCommand(message)
	case "setlevel":
		b.handleSetLevelCommand(message)
	case "setduration":
		b.handleSetDurationCommand(message)
	case "setpersona":
		b.handleSetPersonaCommand(message)
	case "sethour":
		b.handleSetHourCommand(message)
	default:
		b.reply(message.Chat.ID, "Unknown command. Use /menu to show the main menu.")
	}
}

// handleCallbackQuery handles callback queries from menu buttons
func (b *Bot) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	// Acknowledge the callback so the button stops spinning
	b.api.Request(tgbotapi.NewCallback(callback.ID, ""))

	message := &tgbotapi.Message{
		From: callback.From,
		Chat: callback.Message.Chat,
	}

	switch callback.Data {
	case "study":
		b.handleStudyCommand(message)
	case "level":
		b.handleLevelCommand(message)
	case "items":
		b.handleItemsCommand(message)
	case "videos":
		b.handleVideosCommand(message)
	case "settings":
		b.handleSettingsCommand(message)
	default:
		log.Printf("Unknown callback data: %s", callback.Data)
	}
}

// showMainMenu sends the main menu keyboard
func (b *Bot) showMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

// MainMenuButtons returns the main menu layout
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{
			{Text: "📝 Study prompt", CallbackData: "study"},
			{Text: "📊 My level", CallbackData: "level"},
		},
		{
			{Text: "📚 Items", CallbackData: "items"},
			{Text: "🎬 Videos", CallbackData: "videos"},
		},
		{
			{Text: "⚙️ Settings", CallbackData: "settings"},
		},
	}
}

// reply sends a plain text message
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message to chat %d: %v", chatID, err)
	}
}

// Telegram limits messages to 4096 characters; leave headroom
const maxMessageRunes = 4000

// sendLong sends text in chunks that fit the Telegram message limit
func (b *Bot) sendLong(chatID int64, text string) {
	runes := []rune(text)
	for len(runes) > 0 {
		end := len(runes)
		if end > maxMessageRunes {
			end = maxMessageRunes
		}
		b.reply(chatID, string(runes[:end]))
		runes = runes[end:]
	}
}
