// Package syncer reconciles the source conversation feed with the content
// repository and the search index. It runs in discrete idempotent passes:
// each closed conversation is change-checked, its participants resolved, the
// content record upserted and published, and a size-bounded projection
// written to the search index.
package syncer

import (
	"context"

	"github.com/rs/zerolog"

	"searchsync/internal/config"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
	"searchsync/internal/search"
)

// SourceAPI is the read-only source-of-truth conversation feed.
type SourceAPI interface {
	ListAllConversations(ctx context.Context) ([]intercom.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*intercom.Conversation, error)
	GetUser(ctx context.Context, participant intercom.GenericUser) (*intercom.User, error)
	ConversationLink(conversationID string) string
	UserLink(userID, role string) string
}

// ContentAPI is the downstream content repository.
type ContentAPI interface {
	GetConversationVariant(ctx context.Context, externalID string) (*kontent.ConversationVariant, error)
	GetUserVariant(ctx context.Context, externalID string) (*kontent.UserVariant, error)
	CreateItem(ctx context.Context, name, externalID, typeCodename string) (*kontent.ContentItem, error)
	UpsertConversationVariant(ctx context.Context, itemID string, model kontent.ConversationModel) (*kontent.ConversationVariant, error)
	UpsertUserVariant(ctx context.Context, itemID string, model kontent.UserModel) (*kontent.UserVariant, error)
	Publish(ctx context.Context, itemID string) error
	Unpublish(ctx context.Context, itemID string) error
	DeleteItem(ctx context.Context, itemID string) error
	ListAllItems(ctx context.Context) ([]kontent.ContentItem, error)
}

// SearchIndex is the downstream full-text index.
type SearchIndex interface {
	SaveDocument(document search.Conversation) error
	SaveDocuments(documents []search.Conversation) error
}

// Syncer drives the reconciliation pipeline. It holds no cross-run state;
// the per-run profile cache is created fresh for every pass.
type Syncer struct {
	source  SourceAPI
	content ContentAPI
	index   SearchIndex
	config  *config.Config
	logger  zerolog.Logger

	conversationTypeID string
	userTypeID         string
}

// New creates a syncer over the three remote stores.
func New(source SourceAPI, content ContentAPI, index SearchIndex, cfg *config.Config, logger zerolog.Logger) *Syncer {
	return &Syncer{
		source:             source,
		content:            content,
		index:              index,
		config:             cfg,
		logger:             logger,
		conversationTypeID: cfg.ConversationTypeID,
		userTypeID:         cfg.UserTypeID,
	}
}

// SetTypeIDs records the content type ids resolved during bootstrap, used by
// cleanup to partition items.
func (s *Syncer) SetTypeIDs(conversationTypeID, userTypeID string) {
	s.conversationTypeID = conversationTypeID
	s.userTypeID = userTypeID
}

// Report aggregates the outcome of one sync pass.
type Report struct {
	Total   int `json:"total"`
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
