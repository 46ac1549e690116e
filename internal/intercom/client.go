// Package intercom is a minimal REST client for the source conversation API.
// It covers the three read operations the sync needs: listing conversations,
// fetching a single conversation and resolving participant profiles.
package intercom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://api.intercom.io"

// pageSize matches the source API maximum for conversation listings.
const pageSize = 60

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// APIError is a non-404 error response from the source API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intercom API error: status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the source conversation API.
type Client struct {
	baseURL    string
	appID      string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new source API client.
func NewClient(token, appID string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		appID:      appID,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// SetBaseURL overrides the API endpoint, used in tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// ListAllConversations pages through the full conversation listing and
// returns every conversation summary in the workspace.
func (c *Client) ListAllConversations(ctx context.Context) ([]Conversation, error) {
	c.logger.Debug().Msg("Requesting all conversations from source")

	var result []Conversation
	page := 1
	for {
		url := fmt.Sprintf("%s/conversations?per_page=%d&page=%d", c.baseURL, pageSize, page)

		var response conversationPage
		if err := c.get(ctx, url, &response); err != nil {
			return nil, fmt.Errorf("failed to list conversations page %d: %w", page, err)
		}

		result = append(result, response.Conversations...)
		c.logger.Debug().
			Int("page", response.Pages.Page).
			Int("total_pages", response.Pages.TotalPages).
			Int("count", len(response.Conversations)).
			Msg("Received conversation page")

		if response.Pages.Page >= response.Pages.TotalPages {
			break
		}
		page = response.Pages.Page + 1
	}

	return result, nil
}

// GetConversation fetches a single conversation with all its parts.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*Conversation, error) {
	c.logger.Debug().Str("conversation_id", conversationID).Msg("Getting conversation from source")

	var conversation Conversation
	url := c.baseURL + "/conversations/" + conversationID
	if err := c.get(ctx, url, &conversation); err != nil {
		return nil, fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
	}
	return &conversation, nil
}

// GetUser resolves a participant identity to a full profile. A not-found
// response yields a stand-in profile instead of an error so a single deleted
// account never fails a whole conversation sync.
func (c *Client) GetUser(ctx context.Context, participant GenericUser) (*User, error) {
	var url string
	switch participant.Role {
	case "admin":
		url = c.baseURL + "/admins/" + participant.ID
	case "user", "lead":
		url = c.baseURL + "/users/" + participant.ID
	default:
		return nil, fmt.Errorf("unknown participant role: %q", participant.Role)
	}

	c.logger.Trace().Str("user_id", participant.ID).Str("role", participant.Role).Msg("Downloading user profile from source")

	var user User
	err := c.get(ctx, url, &user)
	if errors.Is(err, ErrNotFound) {
		c.logger.Trace().Str("user_id", participant.ID).Msg("Profile request returned 404, synthesizing stand-in")
		return &User{
			ID:    participant.ID,
			Type:  participant.Role,
			Name:  "Non-existing " + participant.Role,
			Email: "",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", participant.ID, err)
	}
	return &user, nil
}

// ConversationLink builds a deep link to the conversation in the source UI.
func (c *Client) ConversationLink(conversationID string) string {
	return "https://app.intercom.io/a/apps/" + c.appID + "/conversations/" + conversationID
}

// UserLink builds a deep link to the user profile in the source UI.
func (c *Client) UserLink(userID, role string) string {
	if role == "admin" {
		return "https://app.intercom.io/a/apps/" + c.appID + "/admins/" + userID
	}
	return "https://app.intercom.io/a/apps/" + c.appID + "/users/" + userID
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "... (" + strconv.Itoa(len(s)) + " bytes)"
}
