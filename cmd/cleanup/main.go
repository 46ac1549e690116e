package main

import (
	"context"
	"time"

	"searchsync/internal/config"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
	"searchsync/internal/search"
	"searchsync/internal/syncer"
)

// One-shot batch binary: deletes every synced record from the content
// repository under the bulk throttle.
func main() {
	cfg := config.Load()
	logger := cfg.SetupLogger()

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	source := intercom.NewClient(cfg.IntercomAccessToken, cfg.IntercomAppID, timeout, logger)
	content := kontent.NewClient(cfg.KontentProjectID, cfg.KontentAPIKey, timeout, logger)
	index := search.NewIndex(cfg.AlgoliaAppID, cfg.AlgoliaAPIKey, cfg.AlgoliaIndexName, logger)

	ctx := context.Background()
	conversationTypeID, userTypeID, err := content.EnsureTypes(ctx, cfg.ConversationTypeID, cfg.UserTypeID)
	if err != nil {
		logger.Fatal().Err(err).Msg("Content type bootstrap failed")
	}

	s := syncer.New(source, content, index, cfg, logger)
	s.SetTypeIDs(conversationTypeID, userTypeID)

	deleted, err := s.CleanProject(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("deleted", deleted).Msg("Project cleanup failed")
	}

	logger.Info().Int("deleted", deleted).Msg("Project cleanup finished")
}
