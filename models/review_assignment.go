package models

import "time"

// Review assignment statuses. "submitted" is the only terminal state that
// counts toward completeness.
const (
	AssignmentStatusPending    = "pending"
	AssignmentStatusInvited    = "invited"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusSubmitted  = "submitted"
)

// ReviewAssignment records one reviewer invited to review one paper.
// The reviewer-assignment workflow owns these rows; the decision subsystem
// only reads them to evaluate the completeness gate.
type ReviewAssignment struct {
	AssignmentID uint       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	PaperID      string     `gorm:"column:paper_id" json:"paper_id"`
	ReviewerID   string     `gorm:"column:reviewer_id" json:"reviewer_id"`
	Required     bool       `gorm:"column:required" json:"required"`
	Status       string     `gorm:"column:status" json:"status"`
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
}

func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// Outstanding reports whether a required assignment still blocks the decision.
func (a *ReviewAssignment) Outstanding() bool {
	switch a.Status {
	case AssignmentStatusPending, AssignmentStatusInvited, AssignmentStatusInProgress:
		return true
	}
	return false
}
