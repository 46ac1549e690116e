package intercom

// nobodyAdmin is the sentinel role the source API uses for unassigned
// conversations.
const nobodyAdmin = "nobody_admin"

// ConversationParticipants collects every identity that took part in a
// conversation: the assignee (unless unassigned), the author of the opening
// message, the originally targeted end-user (who may never have replied) and
// the author of every non-bot part. The result is deduplicated by (id, role)
// in first-seen order.
func ConversationParticipants(conversation *Conversation) []GenericUser {
	var participants []GenericUser

	if conversation.Assignee.Type != nobodyAdmin {
		participants = append(participants, GenericUser{ID: conversation.Assignee.ID, Role: conversation.Assignee.Type})
	}

	participants = append(participants, GenericUser{ID: conversation.Message.Author.ID, Role: conversation.Message.Author.Type})
	participants = append(participants, GenericUser{ID: conversation.User.ID, Role: conversation.User.Type})

	for _, part := range conversation.Parts() {
		if part.Author.Type != "bot" {
			participants = append(participants, GenericUser{ID: part.Author.ID, Role: part.Author.Type})
		}
	}

	seen := make(map[GenericUser]struct{}, len(participants))
	result := make([]GenericUser, 0, len(participants))
	for _, participant := range participants {
		if _, exists := seen[participant]; exists {
			continue
		}
		seen[participant] = struct{}{}
		result = append(result, participant)
	}
	return result
}
