package models

import (
	"time"
)

// Post belongs to a community (or is platform-level when CommunityID is nil)
type Post struct {
	ID           int64     `json:"id" db:"id"`
	CommunityID  *int64    `json:"communityId,omitempty" db:"community_id"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	LikeCount    int64     `json:"likeCount" db:"like_count"`
	CommentCount int64     `json:"commentCount" db:"comment_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Joined data, no db tag
	Author    *User      `json:"author,omitempty"`
	Community *Community `json:"community,omitempty"`
}

// PostComment is a comment on a post
type PostComment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *User `json:"author,omitempty"`
}
