package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizwizard/internal/llm"
)

// Message is a transcript entry.
type Message struct {
	ID        string
	Role      llm.Role
	Text      string
	Timestamp time.Time

	// IsError marks a distinct failure notice appended after a stream
	// interruption. The partial reply before it is kept as a normal
	// message.
	IsError bool
}

// Transcript accumulates the visible conversation. It is the caller-side
// record the orchestrator's history turns are built from.
type Transcript struct {
	messages []Message
}

// Append adds a message with the given role and text and returns its id.
func (t *Transcript) Append(role llm.Role, text string) string {
	id := uuid.NewString()
	t.messages = append(t.messages, Message{
		ID:        id,
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	})
	return id
}

// AppendText concatenates a fragment onto the message with the given id.
// Fragments are appended in arrival order, never reordered.
func (t *Transcript) AppendText(id, fragment string) {
	for i := range t.messages {
		if t.messages[i].ID == id {
			t.messages[i].Text += fragment
			return
		}
	}
}

// AppendError records a stream failure as a separate, distinct message
// rather than mutating the partial reply before it.
func (t *Transcript) AppendError(text string) {
	t.messages = append(t.messages, Message{
		ID:        uuid.NewString(),
		Role:      llm.RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
		IsError:   true,
	})
}

// Messages returns the transcript in order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// History converts the transcript into orchestrator turns, excluding
// error notices (they are display artifacts, not conversation).
func (t *Transcript) History() []Turn {
	var turns []Turn
	for _, m := range t.messages {
		if m.IsError {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Text: m.Text})
	}
	return turns
}
