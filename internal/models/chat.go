package models

import "time"

// Conversation links two matched users. The pair is stored normalized
// (UserAID < UserBID) so one row exists per pair.
type Conversation struct {
	ID        string    `json:"id"`
	UserAID   string    `json:"user_a_id"`
	UserBID   string    `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Conversation) HasParticipant(userID string) bool {
	return c.UserAID == userID || c.UserBID == userID
}

func (c *Conversation) OtherParticipant(userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationSummary struct {
	Conversation
	LastMessage *ChatMessage `json:"last_message,omitempty"`
	UnreadCount int          `json:"unread_count"`
}
