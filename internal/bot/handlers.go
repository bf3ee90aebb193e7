package bot

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/example/polybot/internal/excel"
	"github.com/example/polybot/internal/leveling"
	"github.com/example/polybot/internal/selection"
	"github.com/example/polybot/internal/specgen"
	"github.com/example/polybot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Conversation states
const (
	stateWaitingForScript = "waiting_for_script"
)

// getUser loads or registers the sender
func (b *Bot) getUser(from *tgbotapi.User) (*models.User, error) {
	return b.users.GetOrCreate(&models.User{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		IsAdmin:   b.isAdmin(from.ID),
	})
}

// handleStartCommand handles the /start command
func (b *Bot) handleStartCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		log.Printf("Error registering user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	welcomeText := fmt.Sprintf(`Welcome to Polybot! 🎓

I track your learning items and build study prompts for your AI tutor.
Your target language is %s at level %s.

Available commands:
/study [topic] - Build a study prompt
/level - Show your proficiency estimate
/items - List your learning items
/add head - tail - Add a quick item
/videos - List your video projects
/import - Bulk import items from a file
/export - Export items as CSV
/settings - Show your preferences`, user.TargetLanguage, user.Level)

	msg := tgbotapi.NewMessage(message.Chat.ID, welcomeText)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	b.api.Send(msg)
}

// handleStudyCommand builds and sends a study prompt
func (b *Bot) handleStudyCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		log.Printf("Error getting user %d: %v", message.From.ID, err)
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	topic := strings.TrimSpace(message.CommandArguments())
	if topic == "" {
		topic = b.config.DefaultTopic
	}

	items, err := b.items.ListByLanguage(user.ID, user.TargetLanguage)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your learning items.")
		return
	}

	// Soft-deleted items never reach the selector
	pool := make([]models.LearningItem, 0, len(items))
	for _, item := range items {
		if item.Active {
			pool = append(pool, item)
		}
	}

	slotConfig := selection.SlotConfig{
		WeakCount:   b.config.DefaultWeakCount,
		ReviewCount: b.config.DefaultReviewCount,
		NewCount:    b.config.DefaultNewCount,
	}
	sel := selection.SelectItems(pool, slotConfig, user.TargetLanguage)

	// Use the active script of the latest video as seed content, if any
	baseScript := ""
	if video, err := b.videos.GetLatest(user.ID); err == nil {
		if script, err := b.scripts.GetActive(video.ID, user.TargetLanguage); err == nil {
			baseScript = script.Text
		}
	}

	spec := specgen.Generate(user.TargetLanguage, topic, sel.WeakItems, sel.ReviewItems, specgen.Config{
		Level:           user.Level,
		Persona:         user.Persona,
		BaseScript:      baseScript,
		DurationSeconds: user.DurationSeconds,
	})
	prompt := specgen.RenderToPrompt(spec)

	header := fmt.Sprintf("Study prompt (%s, %s, %d weak / %d review items). Paste it into your AI tutor:",
		user.TargetLanguage, user.Level, len(sel.WeakItems), len(sel.ReviewItems))
	b.reply(message.Chat.ID, header)
	b.sendLong(message.Chat.ID, prompt)
}

// handleLevelCommand shows the user's proficiency estimate
func (b *Bot) handleLevelCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	items, err := b.items.ListByLanguage(user.ID, user.TargetLanguage)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your learning items.")
		return
	}

	stats := leveling.CalculateLevelStats(items)

	var text strings.Builder
	fmt.Fprintf(&text, "📊 %s proficiency\n\n", user.TargetLanguage)
	fmt.Fprintf(&text, "Level: %s\n", stats.CurrentLevel)
	if stats.NextLevel != "" && stats.NextLevel != stats.CurrentLevel {
		fmt.Fprintf(&text, "Next: %s\n", stats.NextLevel)
	}
	fmt.Fprintf(&text, "Progress: %s %d%%\n", progressBar(stats.ProgressPercent), stats.ProgressPercent)
	fmt.Fprintf(&text, "Items: %d\n", stats.TotalItems)
	fmt.Fprintf(&text, "Average mastery: %d%%\n", stats.AverageMastery)

	b.reply(message.Chat.ID, text.String())
}

// progressBar renders a ten-segment progress bar
func progressBar(percent int) string {
	filled := percent / 10
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}

// handleItemsCommand lists the user's most recent items, numbered so
// /report and /fav can refer to them
func (b *Bot) handleItemsCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	items, err := b.items.ListByLanguage(user.ID, user.TargetLanguage)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your learning items.")
		return
	}

	if len(items) == 0 {
		b.reply(message.Chat.ID, "No items yet. Use /add or /import to create some.")
		return
	}

	if len(items) > b.config.ItemsPageSize {
		items = items[:b.config.ItemsPageSize]
	}

	listing := make([]string, 0, len(items))
	var text strings.Builder
	fmt.Fprintf(&text, "📚 Your %s items (newest first):\n\n", user.TargetLanguage)
	for i, item := range items {
		listing = append(listing, item.ID)
		star := ""
		if item.IsFavorite {
			star = " ⭐"
		}
		inactive := ""
		if !item.Active {
			inactive = " (inactive)"
		}
		fmt.Fprintf(&text, "%d. [%s] %s — %s%s%s\n   mastery %.0f%%, errors %d\n",
			i+1, item.Type, item.Head, item.Tail, star, inactive, item.MasteryScore, item.ErrorCount)
	}
	text.WriteString("\n/report <n> - I stumbled on item n\n/reviewed <n> <0-100> - Record a review result\n/fav <n> - Toggle favorite\n/toggle <n> - Include or exclude from study\n/del <n> - Delete item")

	b.itemListings[user.ID] = listing
	b.sendLong(message.Chat.ID, text.String())
}

// handleAddCommand adds a quick item: /add head - tail
func (b *Bot) handleAddCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	parts := strings.SplitN(message.CommandArguments(), "-", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		b.reply(message.Chat.ID, "Usage: /add head - tail\nExample: /add 遠慮なく - without hesitation")
		return
	}

	item := &models.LearningItem{
		UserID:   user.ID,
		Language: user.TargetLanguage,
		Type:     models.ItemTypeVocab,
		Head:     strings.TrimSpace(parts[0]),
		Tail:     strings.TrimSpace(parts[1]),
		Active:   true,
	}
	if err := b.items.Create(item); err != nil {
		log.Printf("Error creating item for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the item.")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("✅ Added %q (%s) to your %s items.", item.Head, item.Tail, item.Language))
}

// resolveListedItem maps an /items listing number to an item ID
func (b *Bot) resolveListedItem(userID int64, arg string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("not a number")
	}
	listing := b.itemListings[userID]
	if len(listing) == 0 {
		return "", fmt.Errorf("no listing - run /items first")
	}
	if n < 1 || n > len(listing) {
		return "", fmt.Errorf("number out of range")
	}
	return listing[n-1], nil
}

// handleReportCommand records a stumble on a listed item
func (b *Bot) handleReportCommand(message *tgbotapi.Message) {
	id, err := b.resolveListedItem(message.From.ID, message.CommandArguments())
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: /report <n> (%v)", err))
		return
	}

	item, err := b.items.ReportError(id)
	if err != nil {
		log.Printf("Error reporting item %s: %v", id, err)
		b.reply(message.Chat.ID, "Could not update the item.")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("Recorded a stumble on %q: mastery now %.0f%%, errors %d. It will be prioritized in your next study prompt.",
		item.Head, item.MasteryScore, item.ErrorCount))
}

// handleReviewedCommand records a review result on a listed item
func (b *Bot) handleReviewedCommand(message *tgbotapi.Message) {
	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 {
		b.reply(message.Chat.ID, "Usage: /reviewed <n> <0-100>")
		return
	}

	id, err := b.resolveListedItem(message.From.ID, fields[0])
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: /reviewed <n> <0-100> (%v)", err))
		return
	}

	mastery, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || mastery < 0 || mastery > 100 {
		b.reply(message.Chat.ID, "Mastery must be a number between 0 and 100.")
		return
	}

	if err := b.items.MarkReviewed(id, mastery); err != nil {
		log.Printf("Error marking item %s reviewed: %v", id, err)
		b.reply(message.Chat.ID, "Could not update the item.")
		return
	}

	if mastery >= 80 {
		b.reply(message.Chat.ID, fmt.Sprintf("✅ Mastery set to %.0f%%. The item leaves the review queue.", mastery))
	} else {
		b.reply(message.Chat.ID, fmt.Sprintf("✅ Mastery set to %.0f%%. The item stays in the review queue.", mastery))
	}
}

// handleFavCommand toggles the favorite pin on a listed item
func (b *Bot) handleFavCommand(message *tgbotapi.Message) {
	id, err := b.resolveListedItem(message.From.ID, message.CommandArguments())
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: /fav <n> (%v)", err))
		return
	}

	if err := b.items.ToggleFavorite(id); err != nil {
		log.Printf("Error toggling favorite %s: %v", id, err)
		b.reply(message.Chat.ID, "Could not update the item.")
		return
	}
	b.reply(message.Chat.ID, "⭐ Favorite toggled.")
}

// handleToggleCommand flips a listed item's inclusion flag
func (b *Bot) handleToggleCommand(message *tgbotapi.Message) {
	id, err := b.resolveListedItem(message.From.ID, message.CommandArguments())
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: /toggle <n> (%v)", err))
		return
	}

	if err := b.items.ToggleActive(id); err != nil {
		log.Printf("Error toggling active %s: %v", id, err)
		b.reply(message.Chat.ID, "Could not update the item.")
		return
	}

	item, err := b.items.GetByID(id)
	if err != nil {
		b.reply(message.Chat.ID, "Inclusion flag toggled.")
		return
	}
	if item.Active {
		b.reply(message.Chat.ID, fmt.Sprintf("%q is back in your study pool.", item.Head))
	} else {
		b.reply(message.Chat.ID, fmt.Sprintf("%q is excluded from study prompts until toggled again.", item.Head))
	}
}

// handleDelCommand deletes a listed item
func (b *Bot) handleDelCommand(message *tgbotapi.Message) {
	id, err := b.resolveListedItem(message.From.ID, message.CommandArguments())
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Usage: /del <n> (%v)", err))
		return
	}

	if err := b.items.Delete(id); err != nil {
		log.Printf("Error deleting item %s: %v", id, err)
		b.reply(message.Chat.ID, "Could not delete the item.")
		return
	}

	// Numbers shift after a deletion, so the old listing must not be reused
	delete(b.itemListings, message.From.ID)
	b.reply(message.Chat.ID, "🗑 Item deleted. Run /items to refresh the listing.")
}

// handleVideosCommand lists the user's video projects
func (b *Bot) handleVideosCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	videos, err := b.videos.List(user.ID)
	if err != nil {
		log.Printf("Error listing videos for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your videos.")
		return
	}

	if len(videos) == 0 {
		b.reply(message.Chat.ID, "No video projects yet. Use /newvideo <slug> <title> to create one.")
		return
	}

	var text strings.Builder
	text.WriteString("🎬 Your video projects:\n\n")
	for _, video := range videos {
		fmt.Fprintf(&text, "• %s — %s [%s]\n", video.Slug, video.Title, video.Status)
	}
	text.WriteString("\n/video <slug> - Project details\n/videostatus <slug> <status> - Move through the lifecycle\n/script <slug> - Store a script version\n/score <slug> p g f c - Record a practice score")
	b.sendLong(message.Chat.ID, text.String())
}

// handleVideoCommand shows one project with its scripts, items and scores
func (b *Bot) handleVideoCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	slug := strings.TrimSpace(message.CommandArguments())
	if slug == "" {
		b.reply(message.Chat.ID, "Usage: /video <slug>")
		return
	}

	video, err := b.videos.GetBySlug(user.ID, slug)
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No video with slug %q. Use /videos to list them.", slug))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "🎬 %s — %s\n", video.Slug, video.Title)
	fmt.Fprintf(&text, "Status: %s\n", video.Status)
	if video.Date != "" {
		fmt.Fprintf(&text, "Date: %s\n", video.Date)
	}
	if video.Memo != "" {
		fmt.Fprintf(&text, "Memo: %s\n", video.Memo)
	}

	if scripts, err := b.scripts.ListByVideo(video.ID); err == nil && len(scripts) > 0 {
		text.WriteString("\n📄 Scripts:\n")
		for _, script := range scripts {
			marker := ""
			if script.Active {
				marker = " (active)"
			}
			fmt.Fprintf(&text, "• %s v%d%s\n", script.Language, script.Version, marker)
		}
	}

	if items, err := b.items.ListByVideo(video.ID); err == nil {
		fmt.Fprintf(&text, "\n📚 Attached items: %d\n", len(items))
	}

	if scores, err := b.scores.ListByVideo(video.ID); err == nil && len(scores) > 0 {
		fmt.Fprintf(&text, "\n🎤 Practice sessions: %d (latest total %d/100)\n", len(scores), scores[0].Total)
		if avg, err := b.scores.Averages(video.ID); err == nil {
			fmt.Fprintf(&text, "Averages: pronunciation %.1f, grammar %.1f, fluency %.1f, clarity %.1f\n",
				avg.Pronunciation, avg.Grammar, avg.Fluency, avg.Clarity)
		}
	}

	b.sendLong(message.Chat.ID, text.String())
}

// handleVideoStatusCommand moves a project through its lifecycle
func (b *Bot) handleVideoStatusCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	fields := strings.Fields(message.CommandArguments())
	if len(fields) != 2 {
		b.reply(message.Chat.ID, "Usage: /videostatus <slug> <draft|practicing|recorded|posted>")
		return
	}

	status := models.VideoStatus(strings.ToLower(fields[1]))
	switch status {
	case models.VideoStatusDraft, models.VideoStatusPracticing, models.VideoStatusRecorded, models.VideoStatusPosted:
	default:
		b.reply(message.Chat.ID, "Status must be one of: draft, practicing, recorded, posted.")
		return
	}

	video, err := b.videos.GetBySlug(user.ID, fields[0])
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No video with slug %q. Use /videos to list them.", fields[0]))
		return
	}

	if err := b.videos.UpdateStatus(video.ID, status); err != nil {
		log.Printf("Error updating video status %s: %v", video.ID, err)
		b.reply(message.Chat.ID, "Could not update the video.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("🎬 %s is now %s.", video.Slug, status))
}

// handleNewVideoCommand creates a video project: /newvideo slug title...
func (b *Bot) handleNewVideoCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	fields := strings.Fields(message.CommandArguments())
	if len(fields) == 0 {
		b.reply(message.Chat.ID, "Usage: /newvideo <slug> [title]")
		return
	}

	video := &models.Video{
		Slug:   fields[0],
		UserID: user.ID,
		Title:  strings.Join(fields[1:], " "),
		Date:   time.Now().UTC().Format("2006-01-02"),
	}
	if err := b.videos.Create(video); err != nil {
		log.Printf("Error creating video for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not create the video. Is the slug already taken?")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("🎬 Created project %q. Send /script %s to store its script.", video.Slug, video.Slug))
}

// handleScriptCommand starts the store-script conversation
func (b *Bot) handleScriptCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	slug := strings.TrimSpace(message.CommandArguments())
	if slug == "" {
		b.reply(message.Chat.ID, "Usage: /script <slug>")
		return
	}

	video, err := b.videos.GetBySlug(user.ID, slug)
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No video with slug %q. Use /videos to list them.", slug))
		return
	}

	b.userStates[user.ID] = UserState{
		State:     stateWaitingForScript,
		Timestamp: time.Now(),
		Data:      map[string]string{"video_id": video.ID},
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Send the %s script text for %q as your next message.", user.TargetLanguage, video.Slug))
}

// processScriptText stores the awaited script text as a new version
func (b *Bot) processScriptText(message *tgbotapi.Message, state UserState) {
	delete(b.userStates, message.From.ID)

	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	script := &models.Script{
		VideoID:  state.Data["video_id"],
		Language: user.TargetLanguage,
		Level:    "base",
		Text:     message.Text,
	}
	if err := b.scripts.Create(script); err != nil {
		log.Printf("Error creating script for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the script.")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("📄 Stored script version %d. It will seed your next /study prompt.", script.Version))
}

// handleScoreCommand records a speaking-practice score:
// /score slug pronunciation grammar fluency clarity [comment...]
func (b *Bot) handleScoreCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 5 {
		b.reply(message.Chat.ID, "Usage: /score <slug> <pronunciation> <grammar> <fluency> <clarity> [comment]\nEach axis is 0-25.")
		return
	}

	video, err := b.videos.GetBySlug(user.ID, fields[0])
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No video with slug %q. Use /videos to list them.", fields[0]))
		return
	}

	axes := make([]int, 4)
	for i := 0; i < 4; i++ {
		value, err := strconv.Atoi(fields[i+1])
		if err != nil || value < 0 || value > 25 {
			b.reply(message.Chat.ID, "Each axis must be a number between 0 and 25.")
			return
		}
		axes[i] = value
	}

	scriptVersion := 1
	if script, err := b.scripts.GetActive(video.ID, user.TargetLanguage); err == nil {
		scriptVersion = script.Version
	}

	score := &models.SpeakingScore{
		VideoID:       video.ID,
		Language:      user.TargetLanguage,
		ScriptVersion: scriptVersion,
		Pronunciation: axes[0],
		Grammar:       axes[1],
		Fluency:       axes[2],
		Clarity:       axes[3],
		Comment:       strings.Join(fields[5:], " "),
	}
	if err := b.scores.Create(score); err != nil {
		log.Printf("Error creating score for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the score.")
		return
	}

	avg, err := b.scores.Averages(video.ID)
	if err != nil {
		log.Printf("Error getting score averages for video %s: %v", video.ID, err)
		b.reply(message.Chat.ID, fmt.Sprintf("🎤 Recorded: total %d/100.", score.Total))
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf(
		"🎤 Recorded: total %d/100.\nAverages over %d sessions: pronunciation %.1f, grammar %.1f, fluency %.1f, clarity %.1f (total %.1f).",
		score.Total, avg.Sessions, avg.Pronunciation, avg.Grammar, avg.Fluency, avg.Clarity, avg.Total))
}

// handleExportCommand sends the user's items as a CSV document
func (b *Bot) handleExportCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	items, err := b.items.ListByUser(user.ID)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your learning items.")
		return
	}
	if len(items) == 0 {
		b.reply(message.Chat.ID, "No items to export yet.")
		return
	}

	format := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	var data []byte
	ext := "csv"
	if format == "xlsx" {
		data, err = excel.ExportExcel(items)
		ext = "xlsx"
	} else {
		data, err = excel.ExportCSV(items)
	}
	if err != nil {
		log.Printf("Error exporting items for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Export failed.")
		return
	}

	fileName := fmt.Sprintf("polyglot_export_%s.%s", time.Now().UTC().Format("2006-01-02"), ext)
	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{Name: fileName, Bytes: data})
	doc.Caption = fmt.Sprintf("%d items. The column order is compatible with /import and Anki.", len(items))
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending export to user %d: %v", user.ID, err)
	}
}

// handleImportCommand asks for a file to import
func (b *Bot) handleImportCommand(message *tgbotapi.Message) {
	b.awaitingFileUpload[message.Chat.ID] = true
	b.reply(message.Chat.ID, "Send a .csv or .xlsx file with columns: Language, Type, Head, Tail, Example, Usage, Priority. The first row is treated as a header.")
}

// processItemFile downloads and imports an uploaded item file
func (b *Bot) processItemFile(message *tgbotapi.Message) {
	delete(b.awaitingFileUpload, message.Chat.ID)

	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	doc := message.Document
	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("Error resolving file %s: %v", doc.FileID, err)
		b.reply(message.Chat.ID, "Could not download the file from Telegram.")
		return
	}

	resp, err := http.Get(url)
	if err != nil {
		log.Printf("Error downloading file %s: %v", doc.FileID, err)
		b.reply(message.Chat.ID, "Could not download the file from Telegram.")
		return
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "polybot-import-*"+filepath.Ext(doc.FileName))
	if err != nil {
		log.Printf("Error creating temp file: %v", err)
		b.reply(message.Chat.ID, "Import failed.")
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		log.Printf("Error saving file %s: %v", doc.FileID, err)
		b.reply(message.Chat.ID, "Import failed.")
		return
	}
	tmp.Close()

	config := excel.DefaultImportConfig()
	config.FilePath = tmp.Name()
	config.UserID = user.ID
	config.Language = user.TargetLanguage

	result, err := excel.ImportItems(config)
	if err != nil {
		log.Printf("Error importing file for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, fmt.Sprintf("Import failed: %v", err))
		return
	}

	var text strings.Builder
	fmt.Fprintf(&text, "✅ Import finished:\n- Processed: %d\n- Created: %d\n- Skipped: %d\n",
		result.TotalProcessed, result.Created, result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Fprintf(&text, "\n❌ Errors (%d):\n", len(result.Errors))
		for _, errMsg := range result.Errors {
			text.WriteString("- " + errMsg + "\n")
		}
	}
	b.sendLong(message.Chat.ID, text.String())
}

// handleSettingsCommand shows the user's study preferences
func (b *Bot) handleSettingsCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	persona := user.Persona
	if persona == "" {
		persona = "(none)"
	}

	text := fmt.Sprintf(`⚙️ Your settings:

Target language: %s (/setlang <tag>)
CEFR level: %s (/setlevel A1-C2)
Script duration: %ds (/setduration <seconds>)
Persona: %s (/setpersona <name or ->)
Reminder hour: %d:00 UTC (/sethour 0-23)`,
		user.TargetLanguage, user.Level, user.DurationSeconds, persona, user.NotificationHour)

	b.reply(message.Chat.ID, text)
}

// handleSetLangCommand sets the target language tag
func (b *Bot) handleSetLangCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	lang := strings.ToUpper(strings.TrimSpace(message.CommandArguments()))
	if lang == "" {
		b.reply(message.Chat.ID, "Usage: /setlang <tag>\nExample: /setlang JP")
		return
	}

	user.TargetLanguage = lang
	if err := b.users.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the setting.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Target language set to %s.", lang))
}

// handleSetLevelCommand sets the CEFR level
func (b *Bot) handleSetLevelCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	level := strings.ToUpper(strings.TrimSpace(message.CommandArguments()))
	valid := false
	for _, l := range leveling.Levels {
		if l == level {
			valid = true
			break
		}
	}
	if !valid {
		b.reply(message.Chat.ID, "Usage: /setlevel <A1|A2|B1|B2|C1|C2>")
		return
	}

	user.Level = level
	if err := b.users.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the setting.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("CEFR level set to %s.", level))
}

// handleSetDurationCommand sets the target script duration
func (b *Bot) handleSetDurationCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil || seconds < 10 || seconds > 600 {
		b.reply(message.Chat.ID, "Usage: /setduration <seconds> (10-600)")
		return
	}

	user.DurationSeconds = seconds
	if err := b.users.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the setting.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Script duration set to %d seconds.", seconds))
}

// handleSetPersonaCommand sets or clears the persona to imitate
func (b *Bot) handleSetPersonaCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	persona := strings.TrimSpace(message.CommandArguments())
	if persona == "" {
		b.reply(message.Chat.ID, "Usage: /setpersona <name> (or /setpersona - to clear)")
		return
	}
	if persona == "-" {
		persona = ""
	}

	user.Persona = persona
	if err := b.users.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the setting.")
		return
	}
	if persona == "" {
		b.reply(message.Chat.ID, "Persona cleared; prompts use the default teacher role.")
	} else {
		b.reply(message.Chat.ID, fmt.Sprintf("Prompts will now imitate %s.", persona))
	}
}

// handleSetHourCommand sets the daily reminder hour
func (b *Bot) handleSetHourCommand(message *tgbotapi.Message) {
	user, err := b.getUser(message.From)
	if err != nil {
		b.reply(message.Chat.ID, "Something went wrong, please try again.")
		return
	}

	hour, err := strconv.Atoi(strings.TrimSpace(message.CommandArguments()))
	if err != nil || hour < 0 || hour > 23 {
		b.reply(message.Chat.ID, "Usage: /sethour <0-23>")
		return
	}

	user.NotificationHour = hour
	user.NotificationEnabled = true
	if err := b.users.Update(user); err != nil {
		log.Printf("Error updating user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not save the setting.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Daily reminder set to %d:00 UTC.", hour))
}
