package models

import "time"

// Decision outcomes.
const (
	OutcomeAccept = "accept"
	OutcomeReject = "reject"
)

// Aggregate notification statuses derived from the attempt ledger.
const (
	NotificationStatusSent    = "sent"
	NotificationStatusPartial = "partial"
	NotificationStatusFailed  = "failed"
)

// Decision is the final accept/reject outcome recorded for a paper.
// At most one final decision ever exists per paper; the unique index on
// paper_id is what enforces that under concurrent writers. Once created the
// row is only ever mutated to refresh notification_status after a dispatch
// or resend.
type Decision struct {
	DecisionID         string    `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	PaperID            string    `gorm:"column:paper_id;uniqueIndex" json:"paper_id"`
	Outcome            string    `gorm:"column:outcome" json:"outcome"`
	Final              bool      `gorm:"column:final" json:"final"`
	NotificationStatus string    `gorm:"column:notification_status" json:"notification_status"`
	RecordedBy         string    `gorm:"column:recorded_by" json:"recorded_by"`
	RecordedAt         time.Time `gorm:"column:recorded_at" json:"recorded_at"`
}

func (Decision) TableName() string {
	return "decisions"
}
