package chat

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry in the transcript. ID and FromUser never change
// after creation; Content and Timestamp are rewritten in place while the
// message is the trailing partial assistant message.
type ChatMessage struct {
	ID        uuid.UUID
	Content   string
	FromUser  bool
	Timestamp time.Time
	Partial   bool
}

// NewUserMessage creates a completed user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Content:   content,
		FromUser:  true,
		Timestamp: time.Now(),
	}
}

// NewPartialAssistantMessage creates the empty in-flight assistant message
// that snapshot application mutates.
func NewPartialAssistantMessage() ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Partial:   true,
	}
}
