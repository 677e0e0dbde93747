package models

import "time"

// Per-attempt delivery statuses.
const (
	AttemptStatusDelivered = "delivered"
	AttemptStatusFailed    = "failed"
)

// NotificationAttempt is one immutable record of trying to deliver a decision
// to one author. The table is append-only: sends and resends create new rows
// and never touch prior ones. The current status for an author is the row
// with the greatest attempted_at, ties broken by ledger_id (insertion order).
type NotificationAttempt struct {
	LedgerID    uint      `gorm:"primaryKey;autoIncrement;column:ledger_id" json:"-"`
	AttemptID   string    `gorm:"column:attempt_id;uniqueIndex" json:"attempt_id"`
	PaperID     string    `gorm:"column:paper_id" json:"paper_id"`
	DecisionID  string    `gorm:"column:decision_id;index" json:"decision_id"`
	AuthorID    string    `gorm:"column:author_id" json:"author_id"`
	Status      string    `gorm:"column:status" json:"status"`
	ErrorReason *string   `gorm:"column:error_reason" json:"error_reason,omitempty"`
	AttemptedAt time.Time `gorm:"column:attempted_at" json:"attempted_at"`
}

func (NotificationAttempt) TableName() string {
	return "notification_attempts"
}
