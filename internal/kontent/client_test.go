package kontent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("project-1", "test-key", 5*time.Second, zerolog.Nop())
	client.SetBaseURL(server.URL)
	return client
}

func TestGetConversationVariant(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/projects/project-1/items/external-id/c1/variants/00000000-0000-0000-0000-000000000000", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"item":{"id":"item-1"},"elements":{"conversationid":"c1","lastupdated":"2017-07-14T02:40:00Z"}}`)
	}))

	variant, err := client.GetConversationVariant(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "item-1", variant.Item.ID)
	assert.Equal(t, "c1", variant.Elements.ConversationID)
	assert.Equal(t, time.Date(2017, 7, 14, 2, 40, 0, 0, time.UTC), variant.Elements.LastUpdated)
}

func TestGetConversationVariantNotFound(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetConversationVariant(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateItem(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/project-1/items", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Conversation c1", payload["name"])
		assert.Equal(t, "c1", payload["external_id"])
		assert.Equal(t, map[string]interface{}{"codename": "conversation"}, payload["type"])

		fmt.Fprint(w, `{"id":"item-1","name":"Conversation c1","external_id":"c1"}`)
	}))

	item, err := client.CreateItem(context.Background(), "Conversation c1", "c1", TypeConversation)
	require.NoError(t, err)
	assert.Equal(t, "item-1", item.ID)
}

func TestUpsertConversationVariantWrapsElements(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/projects/project-1/items/item-1/variants/00000000-0000-0000-0000-000000000000", r.URL.Path)

		var payload struct {
			Elements ConversationModel `json:"elements"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "c1", payload.Elements.ConversationID)

		fmt.Fprint(w, `{"item":{"id":"item-1"},"elements":{"conversationid":"c1"}}`)
	}))

	variant, err := client.UpsertConversationVariant(context.Background(), "item-1", ConversationModel{ConversationID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "item-1", variant.Item.ID)
}

func TestPublishAndUnpublishPaths(t *testing.T) {
	var paths []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.Publish(context.Background(), "item-1"))
	require.NoError(t, client.Unpublish(context.Background(), "item-1"))

	assert.Equal(t, []string{
		"/projects/project-1/items/item-1/variants/00000000-0000-0000-0000-000000000000/publish",
		"/projects/project-1/items/item-1/variants/00000000-0000-0000-0000-000000000000/unpublish",
	}, paths)
}

func TestDeleteItem(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/projects/project-1/items/item-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteItem(context.Background(), "item-1"))
}

func TestListAllItemsFollowsContinuationToken(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("continuationToken") {
		case "":
			fmt.Fprint(w, `{"items":[{"id":"i1"},{"id":"i2"}],"pagination":{"continuation_token":"next"}}`)
		case "next":
			fmt.Fprint(w, `{"items":[{"id":"i3"}],"pagination":{"continuation_token":""}}`)
		default:
			t.Fatalf("unexpected continuation token: %s", r.URL.Query().Get("continuationToken"))
		}
	}))

	items, err := client.ListAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "i3", items[2].ID)
}

func TestDoReturnsAPIError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"invalid element"}`)
	}))

	_, err := client.CreateItem(context.Background(), "x", "x", TypeConversation)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid element")
}

func TestEnsureTypesReturnsConfiguredIDs(t *testing.T) {
	client := NewClient("project-1", "key", time.Second, zerolog.Nop())

	conversationID, userID, err := client.EnsureTypes(context.Background(), "ct-1", "ut-1")
	require.NoError(t, err)
	assert.Equal(t, "ct-1", conversationID)
	assert.Equal(t, "ut-1", userID)
}

func TestEnsureTypesCreatesMissingSchemas(t *testing.T) {
	var created []string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/projects/project-1/types", r.URL.Path)

		var schema contentType
		require.NoError(t, json.NewDecoder(r.Body).Decode(&schema))
		created = append(created, schema.Codename)

		fmt.Fprintf(w, `{"id":"type-%s"}`, schema.Codename)
	}))

	conversationID, userID, err := client.EnsureTypes(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "type-conversation", conversationID)
	assert.Equal(t, "type-user", userID)
	assert.Equal(t, []string{"conversation", "user"}, created)
}

func TestByExternalID(t *testing.T) {
	ref := ByExternalID("c1")
	assert.Equal(t, ItemReference{ExternalID: "c1"}, ref)
}
