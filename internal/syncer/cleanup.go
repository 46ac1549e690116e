package syncer

import (
	"context"
	"fmt"

	"searchsync/internal/bulk"
	"searchsync/internal/kontent"
)

// CleanProject deletes every conversation and user record from the content
// repository. Deletes run under the throttled bulk executor: user records
// are light and tolerate higher concurrency, conversation records are
// heavier and run with the lower limit. Per-item failures are logged and
// counted without aborting the batch.
func (s *Syncer) CleanProject(ctx context.Context) (int, error) {
	items, err := s.content.ListAllItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to enumerate project items: %w", err)
	}

	var conversations, userItems []kontent.ContentItem
	for _, item := range items {
		switch item.Type.ID {
		case s.conversationTypeID:
			conversations = append(conversations, item)
		case s.userTypeID:
			userItems = append(userItems, item)
		}
	}

	s.logger.Info().
		Int("conversations", len(conversations)).
		Int("users", len(userItems)).
		Msg("Cleaning project")

	failed := s.deleteAll(ctx, userItems, int64(s.config.MetadataConcurrency))
	failed += s.deleteAll(ctx, conversations, int64(s.config.DeleteConcurrency))

	deleted := len(conversations) + len(userItems) - failed
	if failed > 0 {
		return deleted, fmt.Errorf("failed to delete %d of %d items", failed, len(conversations)+len(userItems))
	}
	return deleted, nil
}

func (s *Syncer) deleteAll(ctx context.Context, items []kontent.ContentItem, concurrency int64) int {
	results := bulk.RunAll(ctx, items, concurrency, func(ctx context.Context, item kontent.ContentItem) error {
		s.logger.Debug().Str("item_id", item.ID).Msg("Deleting item")
		return s.content.DeleteItem(ctx, item.ID)
	})

	for _, result := range results {
		if result.Err != nil {
			s.logger.Error().Err(result.Err).Str("item_id", result.Item.ID).Msg("Failed to delete item")
		}
	}
	return bulk.FailureCount(results)
}
