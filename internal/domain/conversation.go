package domain

// MessageRecord is a persisted conversation log entry.
type MessageRecord struct {
	PK      string
	SK      string
	Message Message
	TTL     int64
}

// ConversationMeta stores aggregate conversation state.
type ConversationMeta struct {
	PK             string
	SK             string
	ConversationID string
	LastActivity   string
	Turns          int
	TTL            int64
}
