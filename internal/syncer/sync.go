package syncer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"searchsync/internal/cache"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
	"searchsync/internal/search"
	"searchsync/internal/transcript"
)

// SyncAll enumerates every conversation in the source and reconciles each
// one in turn. Individual failures are logged and counted, never aborting
// the pass: each conversation is independently idempotent and will be
// retried on the next pass.
func (s *Syncer) SyncAll(ctx context.Context) (Report, error) {
	conversations, err := s.source.ListAllConversations(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to enumerate conversations: %w", err)
	}
	s.logger.Info().Int("count", len(conversations)).Msg("Retrieved conversations from source")

	users := cache.NewUsers()
	report := Report{Total: len(conversations)}
	for _, conversation := range conversations {
		synced, err := s.syncOne(ctx, users, conversation.ID)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Error().Err(err).Str("conversation_id", conversation.ID).Msg("Conversation sync failed")
		case synced:
			report.Synced++
		default:
			report.Skipped++
		}
	}

	s.logger.Info().
		Int("total", report.Total).
		Int("synced", report.Synced).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("Sync pass complete")
	return report, nil
}

// SyncOne reconciles a single conversation with a fresh per-run cache.
// A skip (deny-listed, not closed, or already up to date) is a success.
func (s *Syncer) SyncOne(ctx context.Context, conversationID string) (bool, error) {
	return s.syncOne(ctx, cache.NewUsers(), conversationID)
}

func (s *Syncer) syncOne(ctx context.Context, users *cache.Users, conversationID string) (bool, error) {
	if s.config.IsBanned(conversationID) {
		// Deny-listed conversations have payloads known to never fit downstream
		s.logger.Info().Str("conversation_id", conversationID).Msg("Conversation is deny-listed, skipping")
		return false, nil
	}

	conversation, err := s.source.GetConversation(ctx, conversationID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch conversation %s: %w", conversationID, err)
	}

	var existing *kontent.ConversationVariant
	if !s.config.EmptyProject {
		existing, err = s.content.GetConversationVariant(ctx, conversationID)
		if err != nil && !errors.Is(err, kontent.ErrNotFound) {
			return false, fmt.Errorf("failed to look up existing record %s: %w", conversationID, err)
		}
	}

	if !needsSync(conversation, existing) {
		s.logger.Debug().Str("conversation_id", conversationID).Msg("Conversation is up to date, skipping")
		return false, nil
	}

	// Withdraw the stale record so consumers never observe a half-updated
	// state if a later step fails.
	if existing != nil {
		if err := s.content.Unpublish(ctx, existing.Item.ID); err != nil {
			s.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("Failed to unpublish existing record")
		}
	}

	participants, err := s.resolveParticipants(ctx, users, conversation)
	if err != nil {
		return false, fmt.Errorf("failed to resolve participants of %s: %w", conversationID, err)
	}

	variant, err := s.upsertConversation(ctx, conversation, existing, participants)
	if err != nil {
		return false, fmt.Errorf("failed to upsert record %s: %w", conversationID, err)
	}

	if err := s.projectToSearch(conversation, variant, participants); err != nil {
		return false, fmt.Errorf("failed to project %s to search: %w", conversationID, err)
	}

	return true, nil
}

// needsSync decides whether a conversation must be (re)materialized
// downstream. Only closed conversations are ever synced; an existing record
// is stale exactly when the source updated_at differs from the stored
// last-updated instant. No field-level diffing: any timestamp delta triggers
// a full re-projection.
func needsSync(conversation *intercom.Conversation, existing *kontent.ConversationVariant) bool {
	if conversation.State != "closed" {
		return false
	}
	if existing == nil {
		return true
	}
	return conversation.UpdatedAt != existing.Elements.LastUpdated.Unix()
}

// upsertConversation builds the normalized content fields and writes them
// under the conversation's external id, creating the item envelope on first
// sync. Re-running with unchanged inputs produces identical fields.
func (s *Syncer) upsertConversation(ctx context.Context, conversation *intercom.Conversation, existing *kontent.ConversationVariant, participants []*kontent.UserVariant) (*kontent.ConversationVariant, error) {
	itemID := ""
	if existing != nil {
		itemID = existing.Item.ID
	} else {
		s.logger.Debug().Str("conversation_id", conversation.ID).Msg("Creating item for conversation")
		item, err := s.content.CreateItem(ctx, conversation.ID, conversation.ID, kontent.TypeConversation)
		if err != nil {
			return nil, err
		}
		itemID = item.ID
	}

	model := s.buildConversationModel(conversation, participants)

	s.logger.Debug().Str("conversation_id", conversation.ID).Msg("Upserting conversation variant")
	variant, err := s.content.UpsertConversationVariant(ctx, itemID, model)
	if err != nil {
		return nil, err
	}
	if variant.Item.ID == "" {
		variant.Item.ID = itemID
	}

	if err := s.content.Publish(ctx, itemID); err != nil {
		return nil, err
	}
	return variant, nil
}

// buildConversationModel maps a source conversation and its resolved
// participants onto the content record fields.
func (s *Syncer) buildConversationModel(conversation *intercom.Conversation, participants []*kontent.UserVariant) kontent.ConversationModel {
	users := make([]kontent.UserModel, 0, len(participants))
	participantRefs := make([]kontent.ItemReference, 0, len(participants))
	for _, participant := range participants {
		users = append(users, participant.Elements)
		participantRefs = append(participantRefs, kontent.ByExternalID(participant.Elements.ID))
	}

	var assignee []kontent.ItemReference
	if conversation.Assignee.ID != "" {
		assignee = append(assignee, kontent.ByExternalID(conversation.Assignee.ID))
	}

	ratingValue := ""
	if conversation.Rating.Rating != 0 {
		ratingValue = strconv.Itoa(conversation.Rating.Rating)
	}

	renderer := transcript.NewRenderer(users)
	return kontent.ConversationModel{
		ConversationID: conversation.ID,
		IntercomLink:   richTextLink(s.source.ConversationLink(conversation.ID)),
		Author:         []kontent.ItemReference{kontent.ByExternalID(conversation.Message.Author.ID)},
		CreatedAt:      transcript.FromUnix(conversation.CreatedAt),
		LastUpdated:    transcript.FromUnix(conversation.UpdatedAt),
		Assignee:       assignee,
		Messages:       renderer.Render(conversation),
		RatingValue:    ratingValue,
		RatingNote:     conversation.Rating.Remark,
		Tags:           strings.Join(conversation.TagNames(), ","),
		Participants:   participantRefs,
		SearchBody:     transcript.SearchBody(conversation),
		MessageCount:   conversation.MessageCount(),
	}
}

// projectToSearch replaces the conversation's search documents with a fresh
// projection, splitting when the document exceeds the index size ceiling.
func (s *Syncer) projectToSearch(conversation *intercom.Conversation, variant *kontent.ConversationVariant, participants []*kontent.UserVariant) error {
	searchUsers := make([]search.User, 0, len(participants))
	for _, participant := range participants {
		searchUsers = append(searchUsers, search.User{Name: participant.Elements.Name, Email: participant.Elements.Email})
	}

	assignee := search.User{Name: "unassigned", Email: ""}
	if conversation.Assignee.ID != "" {
		for _, participant := range participants {
			if participant.Elements.ID == conversation.Assignee.ID {
				assignee = search.User{Name: participant.Elements.Name, Email: participant.Elements.Email}
				break
			}
		}
	}

	document := search.NewConversation(variant.Elements, assignee, searchUsers)
	documents, err := document.Split(search.MaxObjectSize)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("conversation_id", conversation.ID).Int("documents", len(documents)).Msg("Saving search projection")
	if len(documents) == 1 {
		return s.index.SaveDocument(documents[0])
	}
	return s.index.SaveDocuments(documents)
}

func richTextLink(url string) string {
	return `<p><a href="` + url + `">Link to intercom</a></p>`
}
