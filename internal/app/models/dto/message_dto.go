package dto

// CreateConversationRequest opens a conversation with another user
type CreateConversationRequest struct {
	ParticipantID int64 `json:"participant_id" binding:"required,min=1"`
}

// SendMessageRequest posts a message into a conversation
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}
