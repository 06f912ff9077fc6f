package models

import (
	"time"
)

// Community defines a named group with membership and its own post feed
type Community struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	IsPublic    bool      `json:"isPublic" db:"is_public"`
	MemberCount int64     `json:"memberCount" db:"member_count"` // Maintained counter, updated with membership rows
	CreatedBy   int64     `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Joined data, no db tag
	Creator  *User `json:"creator,omitempty"`
	IsMember bool  `json:"isMember,omitempty"`
}
