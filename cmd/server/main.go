package main

import (
	"context"
	"time"

	"searchsync/internal/config"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
	"searchsync/internal/search"
	"searchsync/internal/server"
	"searchsync/internal/syncer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	source := intercom.NewClient(cfg.IntercomAccessToken, cfg.IntercomAppID, timeout, logger)
	content := kontent.NewClient(cfg.KontentProjectID, cfg.KontentAPIKey, timeout, logger)
	index := search.NewIndex(cfg.AlgoliaAppID, cfg.AlgoliaAPIKey, cfg.AlgoliaIndexName, logger)

	// Make sure the two record schemas exist before serving sync requests
	conversationTypeID, userTypeID, err := content.EnsureTypes(context.Background(), cfg.ConversationTypeID, cfg.UserTypeID)
	if err != nil {
		logger.Fatal().Err(err).Msg("Content type bootstrap failed")
	}

	s := syncer.New(source, content, index, cfg, logger)
	s.SetTypeIDs(conversationTypeID, userTypeID)

	// Create and initialize server
	srv := server.New(cfg, s, logger)
	srv.Initialize()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
