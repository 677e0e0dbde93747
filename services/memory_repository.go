package services

import (
	"context"
	"sort"
	"sync"

	"conference-management-api/models"
)

// MemoryRepository is an in-memory PaperRepository. It backs the test suite
// and the STORAGE=memory development mode. All methods are safe for
// concurrent use; the attempt ledger is a plain append slice so insertion
// order doubles as the tie-break for latest-attempt queries.
type MemoryRepository struct {
	mu          sync.RWMutex
	papers      map[string]*models.Paper
	decisions   map[string]*models.Decision // keyed by paper_id
	assignments map[string][]models.ReviewAssignment
	attempts    []models.NotificationAttempt
	auditLogs   []models.AuditLog
}

// NewMemoryRepository constructs an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		papers:      map[string]*models.Paper{},
		decisions:   map[string]*models.Decision{},
		assignments: map[string][]models.ReviewAssignment{},
	}
}

// PutPaper stores or replaces a paper and its author list.
func (r *MemoryRepository) PutPaper(paper *models.Paper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *paper
	copied.Authors = append([]models.PaperAuthor(nil), paper.Authors...)
	r.papers[paper.PaperID] = &copied
}

// PutAssignments replaces the review assignments of a paper.
func (r *MemoryRepository) PutAssignments(paperID string, assignments []models.ReviewAssignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[paperID] = append([]models.ReviewAssignment(nil), assignments...)
}

func (r *MemoryRepository) GetPaperByID(ctx context.Context, paperID string) (*models.Paper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paper, ok := r.papers[paperID]
	if !ok {
		return nil, nil
	}
	copied := *paper
	copied.Authors = append([]models.PaperAuthor(nil), paper.Authors...)
	return &copied, nil
}

func (r *MemoryRepository) GetDecisionByPaperID(ctx context.Context, paperID string) (*models.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	decision, ok := r.decisions[paperID]
	if !ok {
		return nil, nil
	}
	copied := *decision
	return &copied, nil
}

// SaveDecision performs the check-and-insert under one lock so that two
// concurrent recordings for the same paper cannot both succeed.
func (r *MemoryRepository) SaveDecision(ctx context.Context, decision *models.Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decisions[decision.PaperID]; ok {
		return ErrDecisionExists
	}
	copied := *decision
	r.decisions[decision.PaperID] = &copied
	return nil
}

func (r *MemoryRepository) UpdateDecisionNotificationStatus(ctx context.Context, paperID, status string) (*models.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	decision, ok := r.decisions[paperID]
	if !ok {
		return nil, nil
	}
	decision.NotificationStatus = status
	copied := *decision
	return &copied, nil
}

func (r *MemoryRepository) ListReviewAssignments(ctx context.Context, paperID string) ([]models.ReviewAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.ReviewAssignment(nil), r.assignments[paperID]...), nil
}

func (r *MemoryRepository) RecordNotificationAttempt(ctx context.Context, attempt *models.NotificationAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *attempt
	copied.LedgerID = uint(len(r.attempts) + 1)
	r.attempts = append(r.attempts, copied)
	return nil
}

// ListLatestFailedAuthorIDs projects the current failed-author set from the
// full ledger: for each author the attempt with the greatest attempted_at
// wins, ties going to the most recently appended row.
func (r *MemoryRepository) ListLatestFailedAuthorIDs(ctx context.Context, decisionID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := map[string]models.NotificationAttempt{}
	var order []string
	for _, attempt := range r.attempts {
		if attempt.DecisionID != decisionID {
			continue
		}
		current, seen := latest[attempt.AuthorID]
		if !seen {
			order = append(order, attempt.AuthorID)
		}
		if !seen || !attempt.AttemptedAt.Before(current.AttemptedAt) {
			latest[attempt.AuthorID] = attempt
		}
	}

	var failed []string
	for _, authorID := range order {
		if latest[authorID].Status == models.AttemptStatusFailed {
			failed = append(failed, authorID)
		}
	}
	return failed, nil
}

func (r *MemoryRepository) ListNotificationAttempts(ctx context.Context, decisionID string) ([]models.NotificationAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var attempts []models.NotificationAttempt
	for _, attempt := range r.attempts {
		if attempt.DecisionID == decisionID {
			attempts = append(attempts, attempt)
		}
	}
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].LedgerID < attempts[j].LedgerID
	})
	return attempts, nil
}

func (r *MemoryRepository) RecordAuditLog(ctx context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *entry
	copied.LogID = uint(len(r.auditLogs) + 1)
	r.auditLogs = append(r.auditLogs, copied)
	return nil
}

// AuditLogs returns a snapshot of the recorded audit entries.
func (r *MemoryRepository) AuditLogs() []models.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.AuditLog(nil), r.auditLogs...)
}

// AttemptCount returns the total number of ledger rows, across all decisions.
func (r *MemoryRepository) AttemptCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.attempts)
}
