package models

import (
	"time"
)

// Conversation groups messages between participants
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined data, no db tag
	Participants []*User  `json:"participants,omitempty"`
	LastMessage  *Message `json:"lastMessage,omitempty"`
}

// Message belongs to a conversation and a sender, ordered by created_at
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`

	Sender *User `json:"sender,omitempty"`
}
