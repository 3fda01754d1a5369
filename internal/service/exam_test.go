package service_test

import (
	"errors"
	"testing"

	"github.com/lifeuk-prep/trainer/internal/domain/catalog"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/progress"
	"github.com/lifeuk-prep/trainer/internal/service"
)

func buildCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	questions := make([]catalog.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, catalog.Question{
			ID:              i,
			Detail:          "question",
			PossibleAnswers: []string{"A", "B", "C", "D"},
			CorrectAnswers:  []string{"A"},
			Category:        "History",
		})
	}
	c, err := catalog.New(questions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func newService(t *testing.T, c *catalog.Catalog, store progress.Store, cfg service.Config) *service.ExamService {
	t.Helper()
	return service.NewExamService(c, store, selection.New(1), cfg, nil)
}

func TestStartSession_EmptyCatalog(t *testing.T) {
	c, err := catalog.New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := newService(t, c, progress.NewMemory(), service.Config{})

	if _, err := svc.StartSession(selection.ModePractice, selection.SetRandom, nil); !errors.Is(err, service.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestStartSession_RandomSet(t *testing.T) {
	svc := newService(t, buildCatalog(t, 40), progress.NewMemory(), service.Config{})

	sess, err := svc.StartSession(selection.ModePractice, selection.SetRandom, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Questions) != selection.DefaultSessionSize {
		t.Errorf("expected %d questions, got %d", selection.DefaultSessionSize, len(sess.Questions))
	}
}

func TestStartSession_FlaggedSetFillsFromOthers(t *testing.T) {
	store := progress.NewMemory()
	if err := store.SaveFlaggedIDs([]int{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := newService(t, buildCatalog(t, 40), store, service.Config{SessionSize: 10})

	sess, err := svc.StartSession(selection.ModePractice, selection.SetFlagged, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(sess.Questions))
	}
	primary := 0
	for _, q := range sess.Questions {
		if q.FromPrimaryPool {
			primary++
		}
	}
	if primary != 3 {
		t.Errorf("expected 3 questions from the flagged pool, got %d", primary)
	}
}

func TestSubmit_ScoresSession(t *testing.T) {
	svc := newService(t, buildCatalog(t, 5), progress.NewMemory(), service.Config{SessionSize: 5, PassMark: 3})

	sess, err := svc.StartSession(selection.ModeTimed, selection.SetRandom, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Answer the first three questions correctly, leave the rest blank.
	for i := 0; i < 3; i++ {
		q := sess.Questions[i]
		for idx, opt := range q.Options {
			if q.IsCorrectOption(opt) {
				sess.SelectOption(q.ID, idx)
			}
		}
	}

	result := svc.Submit(sess)
	if result.CorrectCount != 3 {
		t.Errorf("expected 3 correct, got %d", result.CorrectCount)
	}
	if result.Percentage != 60 {
		t.Errorf("expected 60%%, got %d", result.Percentage)
	}
	if !result.Passed {
		t.Error("expected pass at the configured mark")
	}
}

func TestToggleFlag_AddAndRemove(t *testing.T) {
	store := progress.NewMemory()
	svc := newService(t, buildCatalog(t, 5), store, service.Config{})

	ids, err := svc.ToggleFlag(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 3 {
		t.Fatalf("expected flagged ids [3], got %v", ids)
	}

	ids, err = svc.ToggleFlag(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty flagged ids, got %v", ids)
	}
}

func TestOverview_CountsUnionOnce(t *testing.T) {
	store := progress.NewMemory()
	// id 2 is both flagged and answered; it must reduce Unanswered once.
	store.SaveFlaggedIDs([]int{1, 2})
	store.SaveAnsweredIDs([]int{2, 3})
	svc := newService(t, buildCatalog(t, 10), store, service.Config{})

	o := svc.Overview()
	if o.TotalQuestions != 10 {
		t.Errorf("expected 10 total, got %d", o.TotalQuestions)
	}
	if o.Flagged != 2 || o.Answered != 2 {
		t.Errorf("expected 2 flagged and 2 answered, got %d and %d", o.Flagged, o.Answered)
	}
	if o.Unanswered != 7 {
		t.Errorf("expected 7 unanswered, got %d", o.Unanswered)
	}
}

func TestResetProgress(t *testing.T) {
	store := progress.NewMemory()
	store.SaveFlaggedIDs([]int{1})
	store.SaveAnsweredIDs([]int{2})
	svc := newService(t, buildCatalog(t, 5), store, service.Config{})

	if err := svc.ResetProgress(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := svc.Overview()
	if o.Flagged != 0 || o.Answered != 0 || o.Unanswered != 5 {
		t.Errorf("expected clean slate, got %+v", o)
	}
}

func TestTheme_DefaultsToDark(t *testing.T) {
	svc := newService(t, buildCatalog(t, 1), progress.NewMemory(), service.Config{})

	if got := svc.Theme(); got != "dark" {
		t.Errorf("expected default theme dark, got %q", got)
	}
	svc.SaveTheme("light")
	if got := svc.Theme(); got != "light" {
		t.Errorf("expected light, got %q", got)
	}
}
