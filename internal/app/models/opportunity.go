package models

import (
	"time"
)

// Opportunity defines a postable listing (internship, scholarship, event, ...)
// based on the 'opportunities' table
type Opportunity struct {
	ID                    int64     `json:"id" db:"id"`
	Title                 string    `json:"title" db:"title"`
	Description           string    `json:"description" db:"description"`
	Category              string    `json:"category" db:"category" example:"internship"`
	Location              string    `json:"location" db:"location"`
	Field                 string    `json:"field" db:"field" example:"software"`
	Deadline              time.Time `json:"deadline" db:"deadline"`
	Requirements          *string   `json:"requirements,omitempty" db:"requirements"`
	ContactInfo           *string   `json:"contactInfo,omitempty" db:"contact_info"`
	ApplicationURL        *string   `json:"applicationUrl,omitempty" db:"application_url"`
	IsExternalApplication bool      `json:"isExternalApplication" db:"is_external_application"`
	CreatedBy             int64     `json:"createdBy" db:"created_by"`
	CreatedAt             time.Time `json:"createdAt" db:"created_at"`

	// Joined data, no db tag
	Creator       *User `json:"creator,omitempty"`
	FavoriteCount int64 `json:"favoriteCount"`
	ApplicantCount int64 `json:"applicantCount"`
}

// Favorite is the user x opportunity join row with toggle semantics
type Favorite struct {
	UserID        int64     `json:"userId" db:"user_id"`
	OpportunityID int64     `json:"opportunityId" db:"opportunity_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
