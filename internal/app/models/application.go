package models

import (
	"time"
)

// ApplicationStatus tracks an application through its lifecycle
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusAccepted     ApplicationStatus = "accepted"
	StatusRejected     ApplicationStatus = "rejected"
	StatusWaitlisted   ApplicationStatus = "waitlisted"
)

// IsValid reports whether the status is one of the known lifecycle values
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusAccepted, StatusRejected, StatusWaitlisted:
		return true
	}
	return false
}

// Application links a user to an opportunity, unique per (user, opportunity) pair
type Application struct {
	ID            int64             `json:"id" db:"id"`
	UserID        int64             `json:"userId" db:"user_id"`
	OpportunityID int64             `json:"opportunityId" db:"opportunity_id"`
	Status        ApplicationStatus `json:"status" db:"status" example:"applied"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	// Joined data, no db tag. Opportunity may be nil when the listing was
	// deleted; application rows are kept as history.
	Opportunity *Opportunity `json:"opportunity,omitempty"`
	Applicant   *User        `json:"applicant,omitempty"`
}
