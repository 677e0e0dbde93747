package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"conference-management-api/models"

	"github.com/google/uuid"
)

// DispatchResult is the decision-level outcome of one dispatch or resend
// call: the aggregate status plus the authors whose latest attempt is failed.
type DispatchResult struct {
	Status        string
	FailedAuthors []string
}

// NotificationDispatcher fans a recorded decision out to the paper's authors.
// Every send or resend appends one attempt row per contacted author to the
// ledger; the aggregate status is always re-derived from the full ledger so
// that overlapping resends never work from stale failed-author lists.
type NotificationDispatcher struct {
	repo     PaperRepository
	notifier DecisionNotifier
	now      func() time.Time
}

// NewNotificationDispatcher constructs a NotificationDispatcher.
func NewNotificationDispatcher(repo PaperRepository, notifier DecisionNotifier) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Dispatch sends the decision notification to every author of the paper.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, paper *models.Paper, decision *models.Decision) (*DispatchResult, error) {
	if err := d.sendToAuthors(ctx, paper, decision, paper.Authors); err != nil {
		return nil, err
	}
	return d.aggregate(ctx, decision.DecisionID, len(paper.Authors))
}

// Resend re-contacts only the authors whose latest recorded attempt is
// failed. Authors whose latest attempt is delivered receive nothing. Returns
// ErrNoFailedRecipients when that set is empty.
func (d *NotificationDispatcher) Resend(ctx context.Context, paper *models.Paper, decision *models.Decision) (*DispatchResult, error) {
	failedIDs, err := d.repo.ListLatestFailedAuthorIDs(ctx, decision.DecisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load failed recipients: %w", err)
	}
	if len(failedIDs) == 0 {
		return nil, ErrNoFailedRecipients
	}

	failedSet := make(map[string]bool, len(failedIDs))
	for _, id := range failedIDs {
		failedSet[id] = true
	}
	var targets []models.PaperAuthor
	for _, author := range paper.Authors {
		if failedSet[author.AuthorID] {
			targets = append(targets, author)
		}
	}

	if err := d.sendToAuthors(ctx, paper, decision, targets); err != nil {
		return nil, err
	}
	// Aggregate over all authors, not just the resent subset, so one
	// remaining failure still yields partial/failed.
	return d.aggregate(ctx, decision.DecisionID, len(paper.Authors))
}

// sendToAuthors issues the per-author sends concurrently and waits for all of
// them before returning. A notifier failure for one author is recorded as a
// failed attempt and never blocks the others; only ledger write failures are
// returned as errors.
func (d *NotificationDispatcher) sendToAuthors(ctx context.Context, paper *models.Paper, decision *models.Decision, authors []models.PaperAuthor) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, author := range authors {
		wg.Add(1)
		go func(author models.PaperAuthor) {
			defer wg.Done()

			attempt := models.NotificationAttempt{
				AttemptID:   uuid.NewString(),
				PaperID:     paper.PaperID,
				DecisionID:  decision.DecisionID,
				AuthorID:    author.AuthorID,
				Status:      models.AttemptStatusDelivered,
				AttemptedAt: d.now(),
			}

			if err := d.notifier.SendDecisionNotification(ctx, paper, author, decision); err != nil {
				reason := normalizeErrorReason(err)
				attempt.Status = models.AttemptStatusFailed
				attempt.ErrorReason = &reason
			}

			if err := d.repo.RecordNotificationAttempt(ctx, &attempt); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to record notification attempt for author %s: %w", author.AuthorID, err)
				}
				mu.Unlock()
			}
		}(author)
	}
	wg.Wait()

	return firstErr
}

// aggregate derives the decision-level status from the latest attempt per
// author across the whole ledger.
func (d *NotificationDispatcher) aggregate(ctx context.Context, decisionID string, totalAuthors int) (*DispatchResult, error) {
	failedIDs, err := d.repo.ListLatestFailedAuthorIDs(ctx, decisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive notification status: %w", err)
	}

	status := models.NotificationStatusPartial
	switch {
	case len(failedIDs) == 0:
		status = models.NotificationStatusSent
	case totalAuthors > 0 && len(failedIDs) >= totalAuthors:
		status = models.NotificationStatusFailed
	}

	if failedIDs == nil {
		failedIDs = []string{}
	}
	return &DispatchResult{Status: status, FailedAuthors: failedIDs}, nil
}

func normalizeErrorReason(err error) string {
	reason := strings.TrimSpace(err.Error())
	if reason == "" {
		return "notification_failed"
	}
	return reason
}
