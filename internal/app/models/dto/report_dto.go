package dto

// CreateReportRequest reports a user, community, or post
type CreateReportRequest struct {
	TargetType  string  `json:"target_type" binding:"required,oneof=user community post"`
	TargetID    int64   `json:"target_id" binding:"required,min=1"`
	Reason      string  `json:"reason" binding:"required,max=200"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// ReviewReportRequest is used by admins to close a report
type ReviewReportRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed dismissed"`
}
