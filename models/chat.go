package models

// ChatRole is the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// MessagePart is one text fragment of a chat message.
type MessagePart struct {
	Text string `json:"text"`
}

// ChatMessage is one entry in a chat transcript. The transcript is
// append-only and lives only as long as the session.
type ChatMessage struct {
	Role  ChatRole      `json:"role"`
	Parts []MessagePart `json:"parts"`
}

// Text flattens the message parts into a single string.
func (m ChatMessage) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0].Text
	}
	var out string
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}
