package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@example.com"`
	Password  string    `json:"-" db:"password"` // Hashed password, excluded from JSON
	Username  string    `json:"username" db:"username" example:"student42"`
	FullName  string    `json:"fullName" db:"full_name" example:"Ada Lovelace"`
	IsAdmin   bool      `json:"isAdmin" db:"is_admin" example:"false"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Profile defines the 1:1 profile row for a user, created lazily on first fetch
type Profile struct {
	UserID    int64     `json:"userId" db:"user_id"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	Location  *string   `json:"location,omitempty" db:"location"`
	Field     *string   `json:"field,omitempty" db:"field"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Settings defines the 1:1 preferences row for a user, created lazily with defaults
type Settings struct {
	UserID               int64     `json:"userId" db:"user_id"`
	ProfileVisible       bool      `json:"profileVisible" db:"profile_visible"`
	NotificationsEnabled bool      `json:"notificationsEnabled" db:"notifications_enabled"`
	Language             string    `json:"language" db:"language" example:"en"`
	UpdatedAt            time.Time `json:"updatedAt" db:"updated_at"`
}
