package intercom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationParticipantsDeduplicatesByIDAndRole(t *testing.T) {
	conversation := &Conversation{
		Assignee: Author{ID: "a1", Type: "admin"},
		User:     Author{ID: "u1", Type: "user"},
		Message:  Message{Author: Author{ID: "u1", Type: "user"}},
		PartList: PartList{Parts: []Part{
			{Author: Author{ID: "a1", Type: "admin"}},
			{Author: Author{ID: "u1", Type: "user"}},
			{Author: Author{ID: "u2", Type: "user"}},
		}},
	}

	participants := ConversationParticipants(conversation)

	assert.Equal(t, []GenericUser{
		{ID: "a1", Role: "admin"},
		{ID: "u1", Role: "user"},
		{ID: "u2", Role: "user"},
	}, participants)
}

func TestConversationParticipantsSameIDDifferentRole(t *testing.T) {
	conversation := &Conversation{
		Assignee: Author{ID: "x", Type: "admin"},
		User:     Author{ID: "x", Type: "user"},
		Message:  Message{Author: Author{ID: "x", Type: "user"}},
	}

	participants := ConversationParticipants(conversation)
	assert.Equal(t, []GenericUser{
		{ID: "x", Role: "admin"},
		{ID: "x", Role: "user"},
	}, participants)
}

func TestConversationParticipantsSkipsUnassignedSentinel(t *testing.T) {
	conversation := &Conversation{
		Assignee: Author{ID: "n1", Type: "nobody_admin"},
		User:     Author{ID: "u1", Type: "user"},
		Message:  Message{Author: Author{ID: "u1", Type: "user"}},
	}

	participants := ConversationParticipants(conversation)
	assert.Equal(t, []GenericUser{{ID: "u1", Role: "user"}}, participants)
}

func TestConversationParticipantsSkipsBotAuthors(t *testing.T) {
	conversation := &Conversation{
		Assignee: Author{ID: "a1", Type: "admin"},
		User:     Author{ID: "u1", Type: "user"},
		Message:  Message{Author: Author{ID: "u1", Type: "user"}},
		PartList: PartList{Parts: []Part{
			{Author: Author{ID: "b1", Type: "bot"}, Body: "automated"},
		}},
	}

	participants := ConversationParticipants(conversation)
	assert.NotContains(t, participants, GenericUser{ID: "b1", Role: "bot"})
}

func TestConversationParticipantsIncludesSilentTargetUser(t *testing.T) {
	// The targeted end-user belongs to the participant set even when the
	// conversation was opened by an admin and the user never replied.
	conversation := &Conversation{
		Assignee: Author{ID: "a1", Type: "admin"},
		User:     Author{ID: "u9", Type: "user"},
		Message:  Message{Author: Author{ID: "a1", Type: "admin"}},
	}

	participants := ConversationParticipants(conversation)
	assert.Contains(t, participants, GenericUser{ID: "u9", Role: "user"})
}

func TestMessageCount(t *testing.T) {
	conversation := &Conversation{
		Message: Message{Author: Author{ID: "u1", Type: "user"}, Body: "hello"},
		PartList: PartList{Parts: []Part{
			{PartType: "comment", Body: "reply", Author: Author{ID: "a1", Type: "admin"}},
			{PartType: "comment", Body: "automated", Author: Author{ID: "b1", Type: "bot"}},
			{PartType: "close", Body: "", Author: Author{ID: "a1", Type: "admin"}},
		}},
	}

	assert.Equal(t, 2, conversation.MessageCount())
}

func TestTagNames(t *testing.T) {
	conversation := &Conversation{
		TagList: TagList{Tags: []Tag{{ID: "1", Name: "billing"}, {ID: "2", Name: "refund"}}},
	}
	assert.Equal(t, []string{"billing", "refund"}, conversation.TagNames())
	assert.Empty(t, (&Conversation{}).TagNames())
}
