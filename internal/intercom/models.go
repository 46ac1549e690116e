package intercom

// Author identifies who wrote a message or part.
type Author struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// Tag is a label attached to a conversation.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagList wraps the tag collection as the API nests it.
type TagList struct {
	Tags []Tag `json:"tags"`
}

// Rating holds the end-user conversation rating, if any.
type Rating struct {
	Rating int    `json:"rating"`
	Remark string `json:"remark"`
}

// Message is the opening message of a conversation.
type Message struct {
	Author Author `json:"author"`
	Body   string `json:"body"`
}

// Part is a single event in a conversation: a reply, note, assignment,
// state change and so on, distinguished by PartType.
type Part struct {
	PartType   string  `json:"part_type"`
	Body       string  `json:"body"`
	CreatedAt  int64   `json:"created_at"`
	Author     Author  `json:"author"`
	AssignedTo *Author `json:"assigned_to"`
}

// PartList wraps the part collection as the API nests it.
type PartList struct {
	Parts []Part `json:"conversation_parts"`
}

// Conversation is a full conversation record as returned by the source API.
// It is read-only to this system.
type Conversation struct {
	ID        string   `json:"id"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
	State     string   `json:"state"`
	Assignee  Author   `json:"assignee"`
	User      Author   `json:"user"`
	Message   Message  `json:"conversation_message"`
	PartList  PartList `json:"conversation_parts"`
	Rating    Rating   `json:"conversation_rating"`
	TagList   TagList  `json:"tags"`
}

// Parts returns the ordered conversation parts.
func (c *Conversation) Parts() []Part {
	return c.PartList.Parts
}

// TagNames returns the names of all tags on the conversation.
func (c *Conversation) TagNames() []string {
	names := make([]string, 0, len(c.TagList.Tags))
	for _, tag := range c.TagList.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// MessageCount counts the opening message plus every non-bot part with a body.
func (c *Conversation) MessageCount() int {
	count := 1
	for _, part := range c.Parts() {
		if part.Body != "" && part.Author.Type != "bot" {
			count++
		}
	}
	return count
}

// GenericUser is a participant identity before profile resolution.
// Two identities are equal iff both id and role match.
type GenericUser struct {
	ID   string
	Role string
}

// User is a resolved participant profile.
type User struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// conversationPage is one page of the conversation listing.
type conversationPage struct {
	Conversations []Conversation `json:"conversations"`
	Pages         struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	} `json:"pages"`
}
