package webtab

import "github.com/google/uuid"

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a session's chat history.
type Message struct {
	ID      string `json:"id"`
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session holds the process-local state of one chat session: the append-only
// message history and the user's schema fields. A session is owned by a
// single synchronous handler and needs no locking.
type Session struct {
	ID       string
	Messages []Message
	Fields   []SchemaField
}

// NewSession returns a fresh session seeded with one empty schema field.
func NewSession() *Session {
	return &Session{
		ID:     uuid.NewString(),
		Fields: []SchemaField{{Name: "", Type: FieldString}},
	}
}

// Append adds a message to the history and returns it. Messages are
// append-only; existing entries are never modified.
func (s *Session) Append(role Role, content string) Message {
	msg := Message{ID: uuid.NewString(), Role: role, Content: content}
	s.Messages = append(s.Messages, msg)
	return msg
}

// AddField appends an empty schema field slot and reports whether it was
// added. The field list is capped at MaxSchemaFields.
func (s *Session) AddField() bool {
	if len(s.Fields) >= MaxSchemaFields {
		return false
	}
	s.Fields = append(s.Fields, SchemaField{Name: "", Type: FieldString})
	return true
}

// SetField declares or updates a named schema field. It fills the first empty
// slot, or appends a new one if the cap allows; a field with the same name
// has its type updated in place. Reports whether the field was stored.
func (s *Session) SetField(field SchemaField) bool {
	for i := range s.Fields {
		if s.Fields[i].Name == field.Name {
			s.Fields[i].Type = field.Type
			return true
		}
	}
	for i := range s.Fields {
		if s.Fields[i].Name == "" {
			s.Fields[i] = field
			return true
		}
	}
	if len(s.Fields) >= MaxSchemaFields {
		return false
	}
	s.Fields = append(s.Fields, field)
	return true
}

// Reset clears the message history. Schema fields survive a reset.
func (s *Session) Reset() {
	s.Messages = nil
}
