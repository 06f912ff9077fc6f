package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Opportunity is the listing payload returned by the API
type Opportunity struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Location      string    `json:"location"`
	Field         string    `json:"field"`
	Deadline      time.Time `json:"deadline"`
	FavoriteCount int64     `json:"favoriteCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Message is the chat message payload returned by the API
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	SenderID       int64     `json:"senderId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Conversation is the conversation payload returned by the API
type Conversation struct {
	ID           int64     `json:"id"`
	Participants []*User   `json:"participants"`
	LastMessage  *Message  `json:"lastMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToggleResult reports the state after a toggle call
type ToggleResult struct {
	Active bool `json:"active"`
}

// GetMe fetches the signed-in user's account
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/v1/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ToggleFavorite flips the favorite state of an opportunity and returns the
// resulting state
func (c *Client) ToggleFavorite(ctx context.Context, opportunityID int64) (bool, error) {
	var result ToggleResult
	path := fmt.Sprintf("/api/v1/opportunities/%d/favorite", opportunityID)
	if err := c.Do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return false, err
	}
	return result.Active, nil
}

// ListFavorites fetches the signed-in user's favorited opportunities
func (c *Client) ListFavorites(ctx context.Context) ([]*Opportunity, error) {
	var opportunities []*Opportunity
	if err := c.Do(ctx, http.MethodGet, "/api/v1/favorites", nil, &opportunities); err != nil {
		return nil, err
	}
	return opportunities, nil
}

// ListConversations fetches the signed-in user's conversations
func (c *Client) ListConversations(ctx context.Context) ([]*Conversation, error) {
	var conversations []*Conversation
	if err := c.Do(ctx, http.MethodGet, "/api/v1/conversations", nil, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// Messages fetches a conversation's messages. A non-zero after returns only
// messages created later, which the poller uses to fetch increments.
func (c *Client) Messages(ctx context.Context, conversationID int64, after time.Time) ([]*Message, error) {
	path := fmt.Sprintf("/api/v1/conversations/%d/messages", conversationID)
	if !after.IsZero() {
		path += "?after=" + url.QueryEscape(after.Format(time.RFC3339Nano))
	}

	var messages []*Message
	if err := c.Do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage posts a message into a conversation
func (c *Client) SendMessage(ctx context.Context, conversationID int64, content string) (*Message, error) {
	path := fmt.Sprintf("/api/v1/conversations/%d/messages", conversationID)
	body := map[string]string{"content": content}

	var msg Message
	if err := c.Do(ctx, http.MethodPost, path, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
