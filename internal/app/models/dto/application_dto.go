package dto

// CreateApplicationRequest applies to an opportunity
type CreateApplicationRequest struct {
	OpportunityID int64 `json:"opportunity_id" binding:"required,min=1"`
}

// UpdateApplicationStatusRequest is used by the opportunity creator to move
// an application through its lifecycle
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=applied interviewing accepted rejected waitlisted"`
}
