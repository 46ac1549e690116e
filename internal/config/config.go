package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration for the application
type Config struct {
	Port                string
	Version             string
	LogLevel            string
	APIKey              string // Bearer token guarding the mutating endpoints, empty disables auth
	IntercomAccessToken string // Intercom API access token
	IntercomAppID       string // Intercom workspace app id, used to build deep links
	KontentProjectID    string // Kontent project id
	KontentAPIKey       string // Content Management API key
	ConversationTypeID  string // GUID of the "conversation" content type, empty triggers bootstrap
	UserTypeID          string // GUID of the "user" content type, empty triggers bootstrap
	AlgoliaAppID        string
	AlgoliaAPIKey       string
	AlgoliaIndexName    string
	BannedConversations []string // Conversation ids that are never synced (payloads too big for downstream)
	EmptyProject        bool     // Target project is known empty, skip existence lookups
	HTTPTimeout         int      // Remote API timeout in seconds
	DeleteConcurrency   int      // Concurrent content item deletes during cleanup
	MetadataConcurrency int      // Concurrent metadata-only deletes during cleanup
}

// Load initializes and returns application configuration
func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Port:                getEnv("PORT", "8080"),
		Version:             getEnv("VERSION", "1.0.0"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		APIKey:              os.Getenv("API_KEY"),
		IntercomAccessToken: os.Getenv("INTERCOM_ACCESS_TOKEN"),
		IntercomAppID:       getEnv("INTERCOM_APP_ID", "e42kus8l"),
		KontentProjectID:    os.Getenv("KONTENT_PROJECT_ID"),
		KontentAPIKey:       os.Getenv("KONTENT_API_KEY"),
		ConversationTypeID:  os.Getenv("CONVERSATION_TYPE_ID"),
		UserTypeID:          os.Getenv("USER_TYPE_ID"),
		AlgoliaAppID:        os.Getenv("ALGOLIA_APP_ID"),
		AlgoliaAPIKey:       os.Getenv("ALGOLIA_API_KEY"),
		AlgoliaIndexName:    getEnv("ALGOLIA_INDEX", "conversations"),
		BannedConversations: getEnvList("BANNED_CONVERSATIONS"),
		EmptyProject:        getEnvBool("EMPTY_PROJECT", false),
		HTTPTimeout:         getEnvInt("HTTP_TIMEOUT", 30),
		DeleteConcurrency:   getEnvInt("DELETE_CONCURRENCY", 2),
		MetadataConcurrency: getEnvInt("METADATA_DELETE_CONCURRENCY", 10),
	}

	return config
}

// getEnv gets an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as integer with a default fallback
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as boolean with a default fallback
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable as a string slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// SetupLogger configures zerolog with JSON output and single-line format
func (c *Config) SetupLogger() zerolog.Logger {
	// Configure zerolog to output JSON without newlines
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Create logger with JSON output to stdout
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "searchsync").
		Str("version", c.Version).
		Logger()

	// Set log level based on configuration
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger = logger.Level(level)

	return logger
}

// IsBanned reports whether the conversation id is on the static deny-list.
func (c *Config) IsBanned(conversationID string) bool {
	for _, banned := range c.BannedConversations {
		if banned == conversationID {
			return true
		}
	}
	return false
}
