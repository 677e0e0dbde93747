package services

import (
	"context"

	"conference-management-api/models"
)

// PaperRepository is the storage boundary of the decision subsystem. Reads
// return (nil, nil) when the record does not exist; only infrastructure
// failures surface as errors.
//
// SaveDecision must be a conditional write: it fails with ErrDecisionExists
// when a decision row for the same paper is already present, so that two
// concurrent recordings yield exactly one success. The attempt ledger is
// append-only and must tolerate concurrent appends; latest-attempt queries
// always derive from the full ledger at read time.
type PaperRepository interface {
	GetPaperByID(ctx context.Context, paperID string) (*models.Paper, error)
	GetDecisionByPaperID(ctx context.Context, paperID string) (*models.Decision, error)
	SaveDecision(ctx context.Context, decision *models.Decision) error
	UpdateDecisionNotificationStatus(ctx context.Context, paperID, status string) (*models.Decision, error)
	ListReviewAssignments(ctx context.Context, paperID string) ([]models.ReviewAssignment, error)
	RecordNotificationAttempt(ctx context.Context, attempt *models.NotificationAttempt) error
	ListLatestFailedAuthorIDs(ctx context.Context, decisionID string) ([]string, error)
	ListNotificationAttempts(ctx context.Context, decisionID string) ([]models.NotificationAttempt, error)
	RecordAuditLog(ctx context.Context, entry *models.AuditLog) error
}

// DecisionNotifier delivers one decision notification to one author. A nil
// return means delivered; any error is recorded as a failed attempt and never
// aborts delivery to the remaining authors.
type DecisionNotifier interface {
	SendDecisionNotification(ctx context.Context, paper *models.Paper, author models.PaperAuthor, decision *models.Decision) error
}
