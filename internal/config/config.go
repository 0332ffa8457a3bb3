package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// LLM provider selection: "groq" (default) or "gemini".
	LLMProvider  string
	GroqAPIKey   string
	GeminiAPIKey string

	DatabasePath    string
	PlanArchivePath string

	// Share-card settings. The signing secret is only required by front-ends
	// that hand out card links.
	CardSigningSecret string
	CardBaseURL       string

	// Telegram Config (required for the bot, unused by the CLI)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	TelegramAdminID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := strings.ToLower(os.Getenv("PEET_LLM_PROVIDER"))
	if provider == "" {
		provider = "groq"
	}
	if provider != "groq" && provider != "gemini" {
		return nil, fmt.Errorf("unknown PEET_LLM_PROVIDER %q: expected groq or gemini", provider)
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == "groq" && groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}
	if provider == "gemini" && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	databasePath := os.Getenv("PEET_DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/peet-planner.db"
	}

	archivePath := os.Getenv("PEET_PLAN_ARCHIVE_PATH")
	if archivePath == "" {
		archivePath = "data/plans"
	}

	cardBaseURL := os.Getenv("PEET_CARD_BASE_URL")
	if cardBaseURL == "" {
		cardBaseURL = "http://localhost:8080"
	}

	var allowedIDs []int64
	for _, part := range strings.Split(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		allowedIDs = append(allowedIDs, id)
	}

	var adminID int64
	if adminStr := os.Getenv("TELEGRAM_ADMIN_ID"); adminStr != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(adminStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID %q: %w", adminStr, err)
		}
		adminID = id
	}

	return &Config{
		LLMProvider:            provider,
		GroqAPIKey:             groqAPIKey,
		GeminiAPIKey:           geminiAPIKey,
		DatabasePath:           databasePath,
		PlanArchivePath:        archivePath,
		CardSigningSecret:      os.Getenv("PEET_CARD_SIGNING_SECRET"),
		CardBaseURL:            cardBaseURL,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		TelegramAdminID:        adminID,
	}, nil
}
