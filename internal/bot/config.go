package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Default slot budgets for a study prompt
	DefaultWeakCount   int
	DefaultReviewCount int
	DefaultNewCount    int
	// Default target duration for a generated script
	DefaultDurationSeconds int
	// Topic used when the user doesn't supply one
	DefaultTopic string
	// Maximum items shown by the /items listing
	ItemsPageSize int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		DefaultWeakCount:       3,
		DefaultReviewCount:     5,
		DefaultNewCount:        2,
		DefaultDurationSeconds: 60,
		DefaultTopic:           "Free conversation",
		ItemsPageSize:          15,
	}
}
