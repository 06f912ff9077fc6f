package dto

// CreatePostRequest represents a new post, community-scoped when CommunityID is set
type CreatePostRequest struct {
	CommunityID *int64 `json:"community_id,omitempty" binding:"omitempty,min=1"`
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
}

// CreateCommentRequest adds a comment to a post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// ToggleResponse reports the resulting state of a toggle action
type ToggleResponse struct {
	Active bool `json:"active"`
}
