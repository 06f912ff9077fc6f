package dto

import (
	"time"
)

// CreateOpportunityRequest represents a new listing
type CreateOpportunityRequest struct {
	Title                 string    `json:"title" binding:"required,max=200"`
	Description           string    `json:"description" binding:"required"`
	Category              string    `json:"category" binding:"required,oneof=internship scholarship hackathon event job other"`
	Location              string    `json:"location" binding:"required"`
	Field                 string    `json:"field" binding:"required"`
	Deadline              time.Time `json:"deadline" binding:"required"`
	Requirements          *string   `json:"requirements,omitempty"`
	ContactInfo           *string   `json:"contact_info,omitempty"`
	ApplicationURL        *string   `json:"application_url,omitempty" binding:"omitempty,url"`
	IsExternalApplication bool      `json:"is_external_application"`
}

// UpdateOpportunityRequest represents a listing update; nil fields are left unchanged
type UpdateOpportunityRequest struct {
	Title        *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description  *string    `json:"description,omitempty"`
	Category     *string    `json:"category,omitempty" binding:"omitempty,oneof=internship scholarship hackathon event job other"`
	Location     *string    `json:"location,omitempty"`
	Field        *string    `json:"field,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Requirements *string    `json:"requirements,omitempty"`
	ContactInfo  *string    `json:"contact_info,omitempty"`
}

// OpportunityFilter carries the optional list filters; nil fields add no predicate
type OpportunityFilter struct {
	Category       *string
	Location       *string
	Field          *string
	CreatedBy      *int64
	DeadlineAfter  *time.Time
	DeadlineBefore *time.Time
	IncludeExpired bool
}
