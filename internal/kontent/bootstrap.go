package kontent

import (
	"context"
	"fmt"
	"net/http"
)

// EnsureTypes creates the conversation and user content types when they are
// not configured yet and returns their ids. This is administrative setup run
// once from the binaries, never from the per-conversation pipeline.
func (c *Client) EnsureTypes(ctx context.Context, conversationTypeID, userTypeID string) (string, string, error) {
	if conversationTypeID != "" && userTypeID != "" {
		return conversationTypeID, userTypeID, nil
	}

	c.logger.Info().Msg("Content type ids not configured, creating schemas in project")

	conversationTypeID, err := c.createType(ctx, contentType{
		ExternalID: TypeConversation,
		Name:       "Conversation",
		Codename:   TypeConversation,
		Elements: []contentTypeElement{
			{Name: "ConversationId", Codename: "conversationid", Type: "text"},
			{Name: "IntercomLink", Codename: "intercomlink", Type: "rich_text"},
			{Name: "Messages", Codename: "messages", Type: "rich_text"},
			{Name: "CreatedAt", Codename: "createdat", Type: "date_time"},
			{Name: "LastUpdated", Codename: "lastupdated", Type: "date_time"},
			{Name: "Author", Codename: "author", Type: "modular_content"},
			{Name: "Assignee", Codename: "assignee", Type: "modular_content"},
			{Name: "Participants", Codename: "participants", Type: "modular_content"},
			{Name: "RatingValue", Codename: "ratingvalue", Type: "text"},
			{Name: "RatingNote", Codename: "ratingnote", Type: "text"},
			{Name: "Tags", Codename: "tags", Type: "text"},
			{Name: "MessageCount", Codename: "messagecount", Type: "number"},
			{Name: "SearchBody", Codename: "searchbody", Type: "text"},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create conversation type: %w", err)
	}

	userTypeID, err = c.createType(ctx, contentType{
		ExternalID: TypeUser,
		Name:       "User",
		Codename:   TypeUser,
		Elements: []contentTypeElement{
			{Name: "IntercomLink", Codename: "intercomlink", Type: "rich_text"},
			{Name: "Name", Codename: "name", Type: "text"},
			{Name: "Email", Codename: "email", Type: "text"},
			{Name: "Type", Codename: "type", Type: "text"},
			{Name: "Id", Codename: "id", Type: "text"},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create user type: %w", err)
	}

	return conversationTypeID, userTypeID, nil
}

func (c *Client) createType(ctx context.Context, schema contentType) (string, error) {
	var created struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/types", schema, &created); err != nil {
		return "", err
	}

	c.logger.Info().Str("codename", schema.Codename).Str("type_id", created.ID).Msg("Created content type")
	return created.ID, nil
}
