package kontent

import "time"

// ItemReference points at a content item by external id, used for the
// author/assignee/participants linked-item elements.
type ItemReference struct {
	ExternalID string `json:"external_id,omitempty"`
	ID         string `json:"id,omitempty"`
}

// ByExternalID builds an item reference addressed by external id.
func ByExternalID(externalID string) ItemReference {
	return ItemReference{ExternalID: externalID}
}

// TypeReference identifies a content type.
type TypeReference struct {
	ID       string `json:"id,omitempty"`
	Codename string `json:"codename,omitempty"`
}

// ContentItem is the repository item envelope that variants hang off.
type ContentItem struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Codename   string        `json:"codename"`
	Type       TypeReference `json:"type"`
	ExternalID string        `json:"external_id"`
}

// ConversationModel holds the element values of a conversation variant.
// ExternalID of the owning item is the source conversation id and acts as
// the idempotency key for upserts.
type ConversationModel struct {
	ConversationID string          `json:"conversationid"`
	IntercomLink   string          `json:"intercomlink"`
	Author         []ItemReference `json:"author"`
	CreatedAt      time.Time       `json:"createdat"`
	LastUpdated    time.Time       `json:"lastupdated"`
	Assignee       []ItemReference `json:"assignee"`
	Messages       string          `json:"messages"`
	RatingValue    string          `json:"ratingvalue"`
	RatingNote     string          `json:"ratingnote"`
	Tags           string          `json:"tags"`
	Participants   []ItemReference `json:"participants"`
	SearchBody     string          `json:"searchbody"`
	MessageCount   int             `json:"messagecount"`
}

// UserModel holds the element values of a user variant.
type UserModel struct {
	IntercomLink string `json:"intercomlink"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	ID           string `json:"id"`
}

// ConversationVariant is a conversation item variant as the repository
// returns it.
type ConversationVariant struct {
	Item     ItemReference     `json:"item"`
	Elements ConversationModel `json:"elements"`
}

// UserVariant is a user item variant as the repository returns it.
type UserVariant struct {
	Item     ItemReference `json:"item"`
	Elements UserModel     `json:"elements"`
}

// itemListing is one page of the full item listing.
type itemListing struct {
	Items      []ContentItem `json:"items"`
	Pagination struct {
		ContinuationToken string `json:"continuation_token"`
	} `json:"pagination"`
}

// contentTypeElement describes one element of a content type schema.
type contentTypeElement struct {
	Name     string `json:"name"`
	Codename string `json:"codename"`
	Type     string `json:"type"`
}

// contentType is the schema payload for type bootstrap.
type contentType struct {
	ExternalID string               `json:"external_id"`
	Name       string               `json:"name"`
	Codename   string               `json:"codename"`
	Elements   []contentTypeElement `json:"elements"`
}
