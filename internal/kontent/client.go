// Package kontent is a REST client for the content repository management
// API. Conversations and users are stored as content items addressed by
// external id; every item has a single default-language variant carrying the
// element values.
package kontent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://manage.kontent.ai/v2"

// defaultVariant addresses the single language variant every item carries.
const defaultVariant = "00000000-0000-0000-0000-000000000000"

// Content type codenames for the two record schemas.
const (
	TypeConversation = "conversation"
	TypeUser         = "user"
)

// ErrNotFound is returned when the requested item or variant does not exist.
var ErrNotFound = errors.New("not found")

// APIError is a non-404 error response from the repository API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kontent API error: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the content repository management API.
type Client struct {
	baseURL    string
	projectID  string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new content repository client.
func NewClient(projectID, apiKey string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		projectID:  projectID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// GetConversationVariant fetches the conversation variant stored under the
// given external id.
func (c *Client) GetConversationVariant(ctx context.Context, externalID string) (*ConversationVariant, error) {
	var variant ConversationVariant
	path := "/items/external-id/" + externalID + "/variants/" + defaultVariant
	if err := c.do(ctx, http.MethodGet, path, nil, &variant); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get conversation variant %s: %w", externalID, err)
	}
	c.logger.Debug().Str("conversation_id", variant.Elements.ConversationID).Msg("Downloaded existing conversation variant")
	return &variant, nil
}

// GetUserVariant fetches the user variant stored under the given external id.
func (c *Client) GetUserVariant(ctx context.Context, externalID string) (*UserVariant, error) {
	var variant UserVariant
	path := "/items/external-id/" + externalID + "/variants/" + defaultVariant
	if err := c.do(ctx, http.MethodGet, path, nil, &variant); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user variant %s: %w", externalID, err)
	}
	return &variant, nil
}

// CreateItem creates a content item envelope of the given type. The external
// id is the upsert idempotency key for everything stored beneath it.
func (c *Client) CreateItem(ctx context.Context, name, externalID, typeCodename string) (*ContentItem, error) {
	payload := map[string]interface{}{
		"name":        name,
		"type":        TypeReference{Codename: typeCodename},
		"external_id": externalID,
	}

	var item ContentItem
	if err := c.do(ctx, http.MethodPost, "/items", payload, &item); err != nil {
		return nil, fmt.Errorf("failed to create %s item %s: %w", typeCodename, externalID, err)
	}
	return &item, nil
}

// UpsertConversationVariant writes the conversation element values onto the
// item's default variant, creating or fully replacing it.
func (c *Client) UpsertConversationVariant(ctx context.Context, itemID string, model ConversationModel) (*ConversationVariant, error) {
	payload := map[string]interface{}{"elements": model}

	var variant ConversationVariant
	path := "/items/" + itemID + "/variants/" + defaultVariant
	if err := c.do(ctx, http.MethodPut, path, payload, &variant); err != nil {
		return nil, fmt.Errorf("failed to upsert conversation variant %s: %w", model.ConversationID, err)
	}
	return &variant, nil
}

// UpsertUserVariant writes the user element values onto the item's default
// variant.
func (c *Client) UpsertUserVariant(ctx context.Context, itemID string, model UserModel) (*UserVariant, error) {
	payload := map[string]interface{}{"elements": model}

	var variant UserVariant
	path := "/items/" + itemID + "/variants/" + defaultVariant
	if err := c.do(ctx, http.MethodPut, path, payload, &variant); err != nil {
		return nil, fmt.Errorf("failed to upsert user variant %s: %w", model.ID, err)
	}
	return &variant, nil
}

// Publish makes the item's default variant visible to downstream consumers.
func (c *Client) Publish(ctx context.Context, itemID string) error {
	path := "/items/" + itemID + "/variants/" + defaultVariant + "/publish"
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("failed to publish item %s: %w", itemID, err)
	}
	return nil
}

// Unpublish withdraws the item's default variant so consumers never observe
// a half-updated record during a sync.
func (c *Client) Unpublish(ctx context.Context, itemID string) error {
	path := "/items/" + itemID + "/variants/" + defaultVariant + "/unpublish"
	if err := c.do(ctx, http.MethodPut, path, nil, nil); err != nil {
		return fmt.Errorf("failed to unpublish item %s: %w", itemID, err)
	}
	return nil
}

// DeleteItem removes a content item and its variants.
func (c *Client) DeleteItem(ctx context.Context, itemID string) error {
	if err := c.do(ctx, http.MethodDelete, "/items/"+itemID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// ListAllItems pages through the whole project and returns every content
// item envelope.
func (c *Client) ListAllItems(ctx context.Context) ([]ContentItem, error) {
	c.logger.Debug().Msg("Listing all items in project")

	var items []ContentItem
	continuation := ""
	for {
		path := "/items"
		if continuation != "" {
			path += "?continuationToken=" + continuation
		}

		var page itemListing
		if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list items: %w", err)
		}

		items = append(items, page.Items...)
		c.logger.Debug().Int("count", len(page.Items)).Int("total", len(items)).Msg("Received item page")

		if page.Pagination.ContinuationToken == "" {
			break
		}
		continuation = page.Pagination.ContinuationToken
	}

	return items, nil
}

// do performs an authenticated request against the project and decodes the
// JSON response into out when provided.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	url := c.baseURL + "/projects/" + c.projectID + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Body: string(responseBody)}
	}

	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
