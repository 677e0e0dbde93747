package services

import (
	"context"
	"errors"

	"conference-management-api/config"
	"conference-management-api/models"

	"gorm.io/gorm"
)

// GormPaperRepository is the MySQL-backed PaperRepository.
type GormPaperRepository struct {
	db *gorm.DB
}

// NewGormPaperRepository constructs a GormPaperRepository. A nil db falls
// back to the shared connection.
func NewGormPaperRepository(db *gorm.DB) *GormPaperRepository {
	if db == nil {
		db = config.DB
	}
	return &GormPaperRepository{db: db}
}

func (r *GormPaperRepository) GetPaperByID(ctx context.Context, paperID string) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.WithContext(ctx).
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("author_order ASC") }).
		Where("paper_id = ? AND delete_at IS NULL", paperID).
		First(&paper).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *GormPaperRepository) GetDecisionByPaperID(ctx context.Context, paperID string) (*models.Decision, error) {
	var decision models.Decision
	err := r.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		First(&decision).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

// SaveDecision inserts the decision row. The unique index on paper_id turns a
// concurrent duplicate into ErrDecisionExists instead of a second success.
func (r *GormPaperRepository) SaveDecision(ctx context.Context, decision *models.Decision) error {
	err := r.db.WithContext(ctx).Create(decision).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDecisionExists
	}
	return err
}

func (r *GormPaperRepository) UpdateDecisionNotificationStatus(ctx context.Context, paperID, status string) (*models.Decision, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Decision{}).
		Where("paper_id = ?", paperID).
		Update("notification_status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetDecisionByPaperID(ctx, paperID)
}

func (r *GormPaperRepository) ListReviewAssignments(ctx context.Context, paperID string) ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	err := r.db.WithContext(ctx).
		Where("paper_id = ?", paperID).
		Order("assignment_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *GormPaperRepository) RecordNotificationAttempt(ctx context.Context, attempt *models.NotificationAttempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// ListLatestFailedAuthorIDs selects authors whose most recent attempt for the
// decision is failed. "Most recent" is attempted_at descending with ledger_id
// as the tie-break, matching the ledger's insertion order.
func (r *GormPaperRepository) ListLatestFailedAuthorIDs(ctx context.Context, decisionID string) ([]string, error) {
	var authorIDs []string
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.author_id
		FROM notification_attempts a
		WHERE a.decision_id = ?
		  AND a.status = 'failed'
		  AND NOT EXISTS (
			SELECT 1 FROM notification_attempts b
			WHERE b.decision_id = a.decision_id
			  AND b.author_id = a.author_id
			  AND (b.attempted_at > a.attempted_at
				OR (b.attempted_at = a.attempted_at AND b.ledger_id > a.ledger_id))
		  )
		ORDER BY a.ledger_id ASC
	`, decisionID).Scan(&authorIDs).Error
	if err != nil {
		return nil, err
	}
	return authorIDs, nil
}

func (r *GormPaperRepository) ListNotificationAttempts(ctx context.Context, decisionID string) ([]models.NotificationAttempt, error) {
	var attempts []models.NotificationAttempt
	err := r.db.WithContext(ctx).
		Where("decision_id = ?", decisionID).
		Order("ledger_id ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *GormPaperRepository) RecordAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
