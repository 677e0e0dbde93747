package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"conference-management-api/models"

	"github.com/google/uuid"
)

// RecordDecisionInput carries everything needed to record a final decision.
// IPAddress and UserAgent only feed the audit trail.
type RecordDecisionInput struct {
	PaperID   string
	Outcome   string
	Actor     models.Actor
	IPAddress string
	UserAgent string
}

// ResendInput carries the parameters of a targeted notification resend.
type ResendInput struct {
	PaperID   string
	Actor     models.Actor
	IPAddress string
	UserAgent string
}

// DecisionResult is the success payload of RecordDecision and
// ResendFailedNotifications.
type DecisionResult struct {
	DecisionID         string   `json:"decision_id"`
	Final              bool     `json:"final"`
	NotificationStatus string   `json:"notification_status"`
	FailedAuthors      []string `json:"failed_authors"`
}

// DecisionView is the redacted author-facing projection of a decision. It
// deliberately carries no reviewer identities and no review content.
type DecisionView struct {
	PaperID    string    `json:"paper_id"`
	PaperTitle string    `json:"paper_title"`
	Outcome    string    `json:"outcome"`
	RecordedAt time.Time `json:"recorded_at"`
	Final      bool      `json:"final"`
}

// DecisionService orchestrates decision recording, notification dispatch and
// the author-facing decision view.
type DecisionService struct {
	repo       PaperRepository
	dispatcher *NotificationDispatcher
	now        func() time.Time
}

// NewDecisionService constructs a DecisionService. A nil repo falls back to
// the MySQL repository on the shared connection; a nil notifier falls back to
// the SMTP notifier.
func NewDecisionService(repo PaperRepository, notifier DecisionNotifier) *DecisionService {
	if repo == nil {
		repo = NewGormPaperRepository(nil)
	}
	if notifier == nil {
		notifier = NewMailNotifier()
	}
	return &DecisionService{
		repo:       repo,
		dispatcher: NewNotificationDispatcher(repo, notifier),
		now:        time.Now,
	}
}

// RecordDecision validates the request, enforces the one-final-decision
// invariant, gates on review completeness, persists the decision and fans the
// notification out to every author. Notification failures are reported in the
// result, never as an error: once the decision row is written the recording
// has succeeded.
func (s *DecisionService) RecordDecision(ctx context.Context, input *RecordDecisionInput) (*DecisionResult, error) {
	paperID := strings.TrimSpace(input.PaperID)
	if paperID == "" {
		return nil, validationError("paper id is required")
	}
	if !input.Actor.IsEditor() {
		return nil, forbiddenError("only editors may record decisions")
	}
	outcome, ok := normalizeOutcome(input.Outcome)
	if !ok {
		return nil, validationError("outcome must be either 'accept' or 'reject'")
	}

	paper, err := s.repo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load paper", err)
	}
	if paper == nil {
		return nil, notFoundError("paper %s not found", paperID)
	}

	existing, err := s.repo.GetDecisionByPaperID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load decision", err)
	}
	if existing != nil && existing.Final {
		return nil, conflictError("decision has already been recorded for this paper")
	}

	assignments, err := s.repo.ListReviewAssignments(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load review assignments", err)
	}
	if !ReviewsComplete(assignments, paper.RequiredReviewCount) {
		return nil, validationError("reviews not complete")
	}

	decision := &models.Decision{
		DecisionID: uuid.NewString(),
		PaperID:    paperID,
		Outcome:    outcome,
		Final:      true,
		// Placeholder until the dispatch outcome is known.
		NotificationStatus: models.NotificationStatusFailed,
		RecordedBy:         input.Actor.ID,
		RecordedAt:         s.now(),
	}
	if err := s.repo.SaveDecision(ctx, decision); err != nil {
		if errors.Is(err, ErrDecisionExists) {
			return nil, conflictError("decision has already been recorded for this paper")
		}
		return nil, storageError("failed to persist decision", err)
	}

	dispatch, err := s.dispatcher.Dispatch(ctx, paper, decision)
	if err != nil {
		return nil, storageError("failed to dispatch notifications", err)
	}
	if _, err := s.repo.UpdateDecisionNotificationStatus(ctx, paperID, dispatch.Status); err != nil {
		return nil, storageError("failed to update notification status", err)
	}

	s.audit(ctx, input.Actor, "record_decision", paperID, input.IPAddress, input.UserAgent, map[string]string{
		"decision_id":         decision.DecisionID,
		"outcome":             outcome,
		"notification_status": dispatch.Status,
	})

	return &DecisionResult{
		DecisionID:         decision.DecisionID,
		Final:              true,
		NotificationStatus: dispatch.Status,
		FailedAuthors:      dispatch.FailedAuthors,
	}, nil
}

// ResendFailedNotifications re-contacts only the authors whose latest attempt
// for the paper's decision is failed, then refreshes the stored aggregate.
func (s *DecisionService) ResendFailedNotifications(ctx context.Context, input *ResendInput) (*DecisionResult, error) {
	paperID := strings.TrimSpace(input.PaperID)
	if paperID == "" {
		return nil, validationError("paper id is required")
	}
	if !input.Actor.IsEditor() {
		return nil, forbiddenError("only editors may resend notifications")
	}

	paper, err := s.repo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load paper", err)
	}
	if paper == nil {
		return nil, notFoundError("paper %s not found", paperID)
	}

	decision, err := s.repo.GetDecisionByPaperID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load decision", err)
	}
	if decision == nil {
		return nil, notFoundError("no decision to resend for paper %s", paperID)
	}

	dispatch, err := s.dispatcher.Resend(ctx, paper, decision)
	if err != nil {
		if errors.Is(err, ErrNoFailedRecipients) {
			return nil, notFoundError("no failed recipients for paper %s", paperID)
		}
		return nil, storageError("failed to resend notifications", err)
	}
	if _, err := s.repo.UpdateDecisionNotificationStatus(ctx, paperID, dispatch.Status); err != nil {
		return nil, storageError("failed to update notification status", err)
	}

	s.audit(ctx, input.Actor, "resend_notifications", paperID, input.IPAddress, input.UserAgent, map[string]string{
		"decision_id":         decision.DecisionID,
		"notification_status": dispatch.Status,
	})

	return &DecisionResult{
		DecisionID:         decision.DecisionID,
		Final:              decision.Final,
		NotificationStatus: dispatch.Status,
		FailedAuthors:      dispatch.FailedAuthors,
	}, nil
}

// GetDecisionView returns the redacted decision projection for editors and
// listed authors. Check order: missing paper id, then paper existence, then
// authorization, then decision existence.
func (s *DecisionService) GetDecisionView(ctx context.Context, paperID string, actor models.Actor) (*DecisionView, error) {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return nil, validationError("paper id is required")
	}

	paper, err := s.repo.GetPaperByID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load paper", err)
	}
	if paper == nil {
		return nil, notFoundError("paper %s not found", paperID)
	}

	if !actor.IsEditor() && !paper.HasAuthor(actor.ID) {
		return nil, forbiddenError("not allowed to view this decision")
	}

	decision, err := s.repo.GetDecisionByPaperID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load decision", err)
	}
	if decision == nil {
		return nil, notFoundError("no decision recorded for paper %s", paperID)
	}

	return &DecisionView{
		PaperID:    paper.PaperID,
		PaperTitle: paper.Title,
		Outcome:    decision.Outcome,
		RecordedAt: decision.RecordedAt,
		Final:      decision.Final,
	}, nil
}

// ListNotificationAttempts returns the raw attempt ledger for the paper's
// decision, editor-only.
func (s *DecisionService) ListNotificationAttempts(ctx context.Context, paperID string, actor models.Actor) ([]models.NotificationAttempt, error) {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return nil, validationError("paper id is required")
	}
	if !actor.IsEditor() {
		return nil, forbiddenError("only editors may view the notification ledger")
	}

	decision, err := s.repo.GetDecisionByPaperID(ctx, paperID)
	if err != nil {
		return nil, storageError("failed to load decision", err)
	}
	if decision == nil {
		return nil, notFoundError("no decision recorded for paper %s", paperID)
	}

	attempts, err := s.repo.ListNotificationAttempts(ctx, decision.DecisionID)
	if err != nil {
		return nil, storageError("failed to load notification attempts", err)
	}
	return attempts, nil
}

// audit appends an audit row, best effort. Audit failures are logged, never
// surfaced: the decision itself has already been recorded.
func (s *DecisionService) audit(ctx context.Context, actor models.Actor, action, paperID, ip, userAgent string, values map[string]string) {
	serialized, _ := json.Marshal(values)
	entityID := paperID
	entry := models.AuditLog{
		UserID:     actor.ID,
		Action:     action,
		EntityType: "paper",
		EntityID:   &entityID,
		NewValues:  strPtr(string(serialized)),
		IPAddress:  ip,
		CreatedAt:  s.now(),
	}
	if strings.TrimSpace(userAgent) != "" {
		ua := userAgent
		entry.UserAgent = &ua
	}
	if err := s.repo.RecordAuditLog(ctx, &entry); err != nil {
		log.Printf("Warning: failed to write audit log for %s on paper %s: %v", action, paperID, err)
	}
}

func normalizeOutcome(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "accept", "accepted":
		return models.OutcomeAccept, true
	case "reject", "rejected":
		return models.OutcomeReject, true
	}
	return "", false
}

func strPtr(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
