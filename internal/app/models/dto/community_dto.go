package dto

// CreateCommunityRequest represents a new community
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	IsPublic    *bool  `json:"is_public,omitempty"` // defaults to true
}

// UpdateCommunityRequest represents a community update; nil fields are left unchanged
type UpdateCommunityRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=3,max=100"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// CommunityFilter carries the optional list filters
type CommunityFilter struct {
	Category   *string
	CreatedBy  *int64
	PublicOnly bool
}
