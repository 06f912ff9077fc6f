package dto

import "github.com/ladderhq/ladder/internal/app/models"

// ProfileResponse bundles the user row with its lazily-created profile and settings
type ProfileResponse struct {
	User     *models.User     `json:"user"`
	Profile  *models.Profile  `json:"profile"`
	Settings *models.Settings `json:"settings"`
}

// UpdateProfileRequest represents profile update data; nil fields are left unchanged
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Location  *string `json:"location,omitempty"`
	Field     *string `json:"field,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdateSettingsRequest represents preference updates; nil fields are left unchanged
type UpdateSettingsRequest struct {
	ProfileVisible       *bool   `json:"profile_visible,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	Language             *string `json:"language,omitempty" binding:"omitempty,min=2,max=8"`
}
