package domain

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ActionKind is the external channel a call-to-action points at.
type ActionKind string

const (
	ActionWhatsApp ActionKind = "whatsapp"
	ActionEmail    ActionKind = "email"
	ActionLink     ActionKind = "link"
)

// Action is an optional call-to-action attached to a bot reply.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
	URL   string     `json:"url"`
}

// Response is what the triage engine produces for one user message.
type Response struct {
	Text   string  `json:"text"`
	Action *Action `json:"action,omitempty"`
}

// Message is a single entry of the conversation log shown to the visitor.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Text           string    `json:"text"`
	Sender         Sender    `json:"sender"`
	Intent         string    `json:"intent,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Action         *Action   `json:"action,omitempty"`
}
