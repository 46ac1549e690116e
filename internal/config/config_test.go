package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	config := Load()

	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, "1.0.0", config.Version)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "e42kus8l", config.IntercomAppID)
	assert.Equal(t, "conversations", config.AlgoliaIndexName)
	assert.False(t, config.EmptyProject)
	assert.Equal(t, 30, config.HTTPTimeout)
	assert.Equal(t, 2, config.DeleteConcurrency)
	assert.Equal(t, 10, config.MetadataConcurrency)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("INTERCOM_ACCESS_TOKEN", "token-123")
	t.Setenv("KONTENT_PROJECT_ID", "project-1")
	t.Setenv("EMPTY_PROJECT", "true")
	t.Setenv("HTTP_TIMEOUT", "5")
	t.Setenv("BANNED_CONVERSATIONS", "123, 456,789")

	config := Load()

	assert.Equal(t, "9999", config.Port)
	assert.Equal(t, "token-123", config.IntercomAccessToken)
	assert.Equal(t, "project-1", config.KontentProjectID)
	assert.True(t, config.EmptyProject)
	assert.Equal(t, 5, config.HTTPTimeout)
	assert.Equal(t, []string{"123", "456", "789"}, config.BannedConversations)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-number")
	t.Setenv("EMPTY_PROJECT", "maybe")

	config := Load()
	assert.Equal(t, 30, config.HTTPTimeout)
	assert.False(t, config.EmptyProject)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", "")
	assert.Nil(t, getEnvList("TEST_LIST"))

	t.Setenv("TEST_LIST", "a")
	assert.Equal(t, []string{"a"}, getEnvList("TEST_LIST"))

	t.Setenv("TEST_LIST", " a , ,b ")
	assert.Equal(t, []string{"a", "b"}, getEnvList("TEST_LIST"))
}

func TestIsBanned(t *testing.T) {
	config := &Config{BannedConversations: []string{"123", "456"}}

	assert.True(t, config.IsBanned("123"))
	assert.True(t, config.IsBanned("456"))
	assert.False(t, config.IsBanned("789"))
	assert.False(t, (&Config{}).IsBanned("123"))
}

func TestSetupLogger(t *testing.T) {
	config := &Config{Version: "1.0.0", LogLevel: "debug"}
	logger := config.SetupLogger()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	config.LogLevel = "nonsense"
	logger = config.SetupLogger()
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
