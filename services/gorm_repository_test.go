package services

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"conference-management-api/models"
)

func TestGormRepositoryGetPaperByIDMissing(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE paper_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{"paper_404"},
			columns: []string{"paper_id", "title", "required_review_count"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	paper, err := repo.GetPaperByID(context.Background(), "paper_404")
	if err != nil {
		t.Fatalf("GetPaperByID returned error: %v", err)
	}
	if paper != nil {
		t.Fatalf("expected nil for missing paper, got %+v", paper)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormRepositoryGetPaperByIDPreloadsAuthors(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `papers` WHERE paper_id = \\? AND delete_at IS NULL"),
			args:    []driver.Value{"paper_1"},
			columns: []string{"paper_id", "title", "required_review_count", "create_at"},
			rows:    [][]driver.Value{{"paper_1", "Adaptive Query Planning", int64(2), created}},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `paper_authors` WHERE .*paper_id.* ORDER BY author_order ASC"),
			columns: []string{"paper_author_id", "paper_id", "author_id", "email", "author_order"},
			rows: [][]driver.Value{
				{int64(1), "paper_1", "author_1", "author1@example.org", int64(1)},
				{int64(2), "paper_1", "author_2", "author2@example.org", int64(2)},
			},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	paper, err := repo.GetPaperByID(context.Background(), "paper_1")
	if err != nil {
		t.Fatalf("GetPaperByID returned error: %v", err)
	}
	if paper == nil || paper.Title != "Adaptive Query Planning" {
		t.Fatalf("unexpected paper: %+v", paper)
	}
	if len(paper.Authors) != 2 || paper.Authors[0].AuthorID != "author_1" {
		t.Fatalf("unexpected authors: %+v", paper.Authors)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormRepositoryListLatestFailedAuthorIDs(t *testing.T) {
	pattern := regexp.MustCompile(`(?is)SELECT a\.author_id.*FROM notification_attempts a.*status = 'failed'.*NOT EXISTS.*b\.attempted_at > a\.attempted_at.*b\.ledger_id > a\.ledger_id.*ORDER BY a\.ledger_id ASC`)

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: pattern,
			args:    []driver.Value{"decision_1"},
			columns: []string{"author_id"},
			rows:    [][]driver.Value{{"author_2"}, {"author_3"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	failed, err := repo.ListLatestFailedAuthorIDs(context.Background(), "decision_1")
	if err != nil {
		t.Fatalf("ListLatestFailedAuthorIDs returned error: %v", err)
	}
	if len(failed) != 2 || failed[0] != "author_2" || failed[1] != "author_3" {
		t.Fatalf("unexpected failed authors: %v", failed)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormRepositoryUpdateDecisionNotificationStatus(t *testing.T) {
	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `decisions` SET `notification_status`=\\? WHERE paper_id = \\?"),
			args:    []driver.Value{"sent", "paper_1"},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM `decisions` WHERE paper_id = \\?"),
			args:    []driver.Value{"paper_1"},
			columns: []string{"decision_id", "paper_id", "outcome", "final", "notification_status", "recorded_by", "recorded_at"},
			rows:    [][]driver.Value{{"decision_1", "paper_1", "accept", int64(1), "sent", "editor_1", recorded}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	decision, err := repo.UpdateDecisionNotificationStatus(context.Background(), "paper_1", models.NotificationStatusSent)
	if err != nil {
		t.Fatalf("UpdateDecisionNotificationStatus returned error: %v", err)
	}
	if decision == nil || decision.NotificationStatus != models.NotificationStatusSent || !decision.Final {
		t.Fatalf("unexpected decision: %+v", decision)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormRepositoryUpdateDecisionNotificationStatusMissing(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `decisions` SET `notification_status`=\\? WHERE paper_id = \\?"),
			args:    []driver.Value{"sent", "paper_404"},
			result:  scriptedResult{rowsAffected: 0},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	decision, err := repo.UpdateDecisionNotificationStatus(context.Background(), "paper_404", models.NotificationStatusSent)
	if err != nil {
		t.Fatalf("UpdateDecisionNotificationStatus returned error: %v", err)
	}
	if decision != nil {
		t.Fatalf("expected nil for missing decision, got %+v", decision)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormRepositoryRecordNotificationAttempt(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `notification_attempts`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	repo := NewGormPaperRepository(db)
	attempt := &models.NotificationAttempt{
		AttemptID:   "attempt_1",
		PaperID:     "paper_1",
		DecisionID:  "decision_1",
		AuthorID:    "author_1",
		Status:      models.AttemptStatusDelivered,
		AttemptedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := repo.RecordNotificationAttempt(context.Background(), attempt); err != nil {
		t.Fatalf("RecordNotificationAttempt returned error: %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
