// Package transcript renders a conversation's ordered events into two
// representations: a rich-text transcript for the content repository and a
// plain-text search body for the index. Both are pure functions of the
// conversation and its resolved participants.
package transcript

import (
	"strings"
	"time"

	"searchsync/internal/intercom"
	"searchsync/internal/kontent"
)

// Renderer formats conversations using the resolved participant profiles of
// the current conversation for username placeholders.
type Renderer struct {
	users []kontent.UserModel
}

// NewRenderer creates a renderer over the conversation's resolved users.
func NewRenderer(users []kontent.UserModel) *Renderer {
	return &Renderer{users: users}
}

// Render builds the rich-text transcript: the opening message followed by
// every part, with system messages for assignments, reopens and closes.
func (r *Renderer) Render(conversation *intercom.Conversation) string {
	var b strings.Builder

	r.writeMessage(&b, "message", conversation.CreatedAt, conversation.Message.Author, conversation.Message.Body)

	for _, part := range conversation.Parts() {
		switch part.PartType {
		case "comment":
			b.WriteString("<p><em>message@")
			b.WriteString(formatTime(part.CreatedAt))
			b.WriteString("</em><strong> ")
			b.WriteString(r.usernamePlaceholder(part.Author))
			b.WriteString("</strong>:</p>")
			if part.Author.Type == "bot" && part.Body == "" {
				// The API does not expose internal bot notifications
				b.WriteString("<p><em>Internal bot notification, not retrievable over the API.</em></p>")
			} else {
				b.WriteString(WrapInParagraphIfNeeded(SanitizeRichText(RemoveParagraphWrapper(part.Body))))
			}
			b.WriteString("<p></p>")

		case "note":
			r.writeMessage(&b, "note", part.CreatedAt, part.Author, part.Body)

		case "open":
			r.writeMessage(&b, "message", part.CreatedAt, part.Author, part.Body)
			r.writeSystemMessage(&b, part.CreatedAt, r.usernamePlaceholder(part.Author)+" has replied and reopened the conversation.")

		case "close":
			if part.Body != "" {
				r.writeMessage(&b, "message", part.CreatedAt, part.Author, part.Body)
				r.writeSystemMessage(&b, part.CreatedAt, r.usernamePlaceholder(part.Author)+" has replied and closed the conversation.")
			} else {
				r.writeSystemMessage(&b, part.CreatedAt, r.usernamePlaceholder(part.Author)+" has closed the conversation.")
			}

		case "assignment":
			if part.Body != "" {
				r.writeMessage(&b, "message", part.CreatedAt, part.Author, part.Body)
			}
			assignee := "unassigned"
			if part.AssignedTo != nil {
				assignee = r.usernamePlaceholder(*part.AssignedTo)
			}
			r.writeSystemMessage(&b, part.CreatedAt, r.usernamePlaceholder(part.Author)+" has assigned the conversation to "+assignee+".")

		case "away_mode_assignment":
			r.writeSystemMessage(&b, part.CreatedAt, "Unassigned because "+r.usernamePlaceholder(part.Author)+" turned on away mode and reassignment.")

		case "conversation_rating_changed":
			r.writeSystemMessage(&b, part.CreatedAt, "Conversation rating changed.")

		case "conversation_rating_remark_added":
			r.writeSystemMessage(&b, part.CreatedAt, "Conversation rating message added.")

		default:
			// snoozes, unsnoozes and participant changes carry no content
		}
	}

	return b.String()
}

// SearchBody flattens the opening message and every non-bot part body into
// the plain-text string indexed for search.
func SearchBody(conversation *intercom.Conversation) string {
	var b strings.Builder

	b.WriteString(RemoveParagraphWrapper(conversation.Message.Body))
	b.WriteString(" ")
	for _, part := range conversation.Parts() {
		if part.Body != "" && part.Author.Type != "bot" {
			b.WriteString(RemoveParagraphWrapper(part.Body))
			b.WriteString(" ")
		}
	}

	return SanitizeSearchText(b.String())
}

// writeMessage appends a labeled, timestamped, attributed message block.
func (r *Renderer) writeMessage(b *strings.Builder, label string, timestamp int64, author intercom.Author, body string) {
	b.WriteString("<p><em>")
	b.WriteString(label)
	b.WriteString("@")
	b.WriteString(formatTime(timestamp))
	b.WriteString("</em><strong> ")
	b.WriteString(r.usernamePlaceholder(author))
	b.WriteString("</strong>:</p>")
	b.WriteString(WrapInParagraphIfNeeded(SanitizeRichText(RemoveParagraphWrapper(body))))
	b.WriteString("<p></p>")
}

// writeSystemMessage appends a timestamped system event block.
func (r *Renderer) writeSystemMessage(b *strings.Builder, timestamp int64, text string) {
	b.WriteString("<p><em>system_message@")
	b.WriteString(formatTime(timestamp))
	b.WriteString("</em>:</p><p>")
	b.WriteString(text)
	b.WriteString("</p><p></p>")
}

// usernamePlaceholder resolves an author reference to a display name.
func (r *Renderer) usernamePlaceholder(author intercom.Author) string {
	if author.Type == "bot" {
		return "bot"
	}
	if author.Type == "nobody_admin" {
		return "unassigned"
	}

	for _, user := range r.users {
		if user.ID == author.ID {
			if user.Name != "" {
				return user.Name
			}
			if user.Email != "" {
				return user.Email
			}
			return "lead"
		}
	}
	return "Non-existing user"
}

func formatTime(timestamp int64) string {
	return FromUnix(timestamp).Format(time.RFC3339)
}
