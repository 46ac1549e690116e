package main

import (
	"context"
	"os"
	"time"

	"searchsync/internal/config"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
	"searchsync/internal/search"
	"searchsync/internal/syncer"
)

// One-shot batch binary: runs a single full sync pass and exits non-zero
// when any conversation failed.
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

	report, err := s.SyncAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("Sync pass failed")
	}

	if report.Failed > 0 {
		logger.Error().Int("failed", report.Failed).Msg("Sync pass finished with failures")
		os.Exit(1)
	}

	logger.Info().Int("synced", report.Synced).Int("skipped", report.Skipped).Msg("Sync pass finished")
}
