package models

import (
	"time"
)

// ReportTargetType identifies what kind of resource a report is about
type ReportTargetType string

const (
	ReportTargetUser      ReportTargetType = "user"
	ReportTargetCommunity ReportTargetType = "community"
	ReportTargetPost      ReportTargetType = "post"
)

// IsValid reports whether the target type is known
func (t ReportTargetType) IsValid() bool {
	switch t {
	case ReportTargetUser, ReportTargetCommunity, ReportTargetPost:
		return true
	}
	return false
}

// ReportStatus tracks admin review of a report
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportReviewed ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

// Report records a report of a user/community/post, reviewed by an admin
type Report struct {
	ID          int64            `json:"id" db:"id"`
	ReporterID  int64            `json:"reporterId" db:"reporter_id"`
	TargetType  ReportTargetType `json:"targetType" db:"target_type"`
	TargetID    int64            `json:"targetId" db:"target_id"`
	Reason      string           `json:"reason" db:"reason"`
	Description *string          `json:"description,omitempty" db:"description"`
	Status      ReportStatus     `json:"status" db:"status"`
	ReviewedBy  *int64           `json:"reviewedBy,omitempty" db:"reviewed_by"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`

	Reporter *User `json:"reporter,omitempty"`
}
