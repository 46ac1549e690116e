// Package search builds the size-bounded documents projected into the
// full-text index. The index enforces a hard per-object size ceiling, so an
// oversized conversation is split into several documents sharing every field
// except the object id and the text slice.
package search

import (
	"regexp"
	"strconv"
	"time"

	"searchsync/internal/kontent"
)

// MaxObjectSize is the index's hard ceiling on the serialized object size in
// bytes.
const MaxObjectSize = 9000

// splitMarker flags a conversation whose text had to be partitioned.
const splitMarker = "ConversationPart"

var hrefPattern = regexp.MustCompile(`href\s*=\s*"(.*?)"`)

// User is the participant representation carried on a search document.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Conversation is one object in the search index.
type Conversation struct {
	ObjectID          string     `json:"objectID"`
	IntercomLink      string     `json:"intercomLink"`
	Assignee          []User     `json:"assignee"`
	Participants      []User     `json:"participants"`
	CreatedAt         *time.Time `json:"createdAt"`
	DateTimestamp     int64      `json:"dateTimestamp"`
	SearchText        string     `json:"searchText"`
	MessageCount      int        `json:"messageCount"`
	Tags              string     `json:"tags"`
	RatingValue       int        `json:"ratingValue"`
	RatingRemark      string     `json:"ratingRemark"`
	ConversationSplit string     `json:"conversationSplit,omitempty"`
}

// NewConversation projects a stored content record into a search document.
func NewConversation(model kontent.ConversationModel, assignee User, participants []User) Conversation {
	rating := 0
	if model.RatingValue != "" {
		if parsed, err := strconv.Atoi(model.RatingValue); err == nil {
			rating = parsed
		}
	}

	createdAt := model.CreatedAt
	return Conversation{
		ObjectID:      model.ConversationID,
		IntercomLink:  extractLink(model.IntercomLink),
		Assignee:      []User{assignee},
		Participants:  participants,
		CreatedAt:     &createdAt,
		DateTimestamp: createdAt.Unix(),
		SearchText:    model.SearchBody,
		MessageCount:  model.MessageCount,
		Tags:          model.Tags,
		RatingValue:   rating,
		RatingRemark:  model.RatingNote,
	}
}

// extractLink pulls the bare URL out of the rich-text link element.
func extractLink(richText string) string {
	match := hrefPattern.FindStringSubmatch(richText)
	if len(match) < 2 {
		return richText
	}
	return match[1]
}

// Field overheads of the serialized wire format. These are deliberate
// approximations: a couple of bytes per field for punctuation and quoting,
// a flat allowance for numbers and timestamps.
const (
	fieldOverhead     = 2
	numberOverhead    = 1
	listOverhead      = 1
	timestampOverhead = 20
	userNameFields    = "nameemail"
)

// EstimateSize approximates the serialized size of the document in bytes.
// Every field contributes a fixed rule: field overhead plus the field name,
// plus the UTF-8 length of string values, a flat weight for numbers and
// timestamps, and a per-element weight for user lists. The rules are listed
// explicitly per field so the estimate stays a cheap pure function.
func (c *Conversation) EstimateSize() int {
	size := fieldOverhead // objectID carries no name weight, ids stay short

	size += stringFieldSize("intercomLink", c.IntercomLink)
	size += userListSize("assignee", c.Assignee)
	size += userListSize("participants", c.Participants)
	size += fieldOverhead + len("createdAt") + timestampOverhead
	size += fieldOverhead + len("dateTimestamp") + numberOverhead
	size += stringFieldSize("searchText", c.SearchText)
	size += fieldOverhead + len("messageCount") + numberOverhead
	size += stringFieldSize("tags", c.Tags)
	size += fieldOverhead + len("ratingValue") + numberOverhead
	size += stringFieldSize("ratingRemark", c.RatingRemark)
	size += stringFieldSize("conversationSplit", c.ConversationSplit)

	return size
}

func stringFieldSize(name, value string) int {
	return fieldOverhead + len(name) + len(value)
}

func userListSize(name string, users []User) int {
	size := fieldOverhead + len(name) + listOverhead
	for _, user := range users {
		size += fieldOverhead + len(userNameFields)
		size += len(user.Name) + len(user.Email)
	}
	return size
}
