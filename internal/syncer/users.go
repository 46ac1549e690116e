package syncer

import (
	"context"
	"errors"
	"fmt"

	"searchsync/internal/cache"
	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
)

// resolveParticipants maps every deduplicated participant identity of the
// conversation to a user variant in the content repository. Resolution order
// per identity: per-run cache, then the repository, then the source profile
// API with a create. A missing source profile becomes a stand-in record; any
// other failure aborts this conversation's sync.
func (s *Syncer) resolveParticipants(ctx context.Context, users *cache.Users, conversation *intercom.Conversation) ([]*kontent.UserVariant, error) {
	identities := intercom.ConversationParticipants(conversation)

	resolved := make([]*kontent.UserVariant, 0, len(identities))
	for _, identity := range identities {
		variant, err := s.resolveUser(ctx, users, identity)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, variant)
	}
	return resolved, nil
}

func (s *Syncer) resolveUser(ctx context.Context, users *cache.Users, identity intercom.GenericUser) (*kontent.UserVariant, error) {
	if variant, ok := users.Get(identity.ID); ok {
		return variant, nil
	}

	variant, err := s.content.GetUserVariant(ctx, identity.ID)
	if err == nil {
		return users.Add(identity.ID, variant), nil
	}
	if !errors.Is(err, kontent.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user %s: %w", identity.ID, err)
	}

	profile, err := s.source.GetUser(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", identity.ID, err)
	}

	variant, err = s.createUser(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", identity.ID, err)
	}
	return users.Add(identity.ID, variant), nil
}

// createUser materializes a source profile as a published user record.
// Admins are named by profile name, everyone else by id.
func (s *Syncer) createUser(ctx context.Context, profile *intercom.User) (*kontent.UserVariant, error) {
	itemName := profile.ID
	if profile.Type == "admin" {
		itemName = profile.Name
	}

	item, err := s.content.CreateItem(ctx, itemName, profile.ID, kontent.TypeUser)
	if err != nil {
		return nil, err
	}

	model := kontent.UserModel{
		IntercomLink: richTextLink(s.source.UserLink(profile.ID, profile.Type)),
		Name:         profile.Name,
		Email:        profile.Email,
		Type:         profile.Type,
		ID:           profile.ID,
	}

	variant, err := s.content.UpsertUserVariant(ctx, item.ID, model)
	if err != nil {
		return nil, err
	}
	if variant.Item.ID == "" {
		variant.Item.ID = item.ID
	}

	if err := s.content.Publish(ctx, item.ID); err != nil {
		return nil, err
	}
	return variant, nil
}
