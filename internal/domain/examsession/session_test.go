package examsession_test

import (
	"testing"
	"time"

	"github.com/lifeuk-prep/trainer/internal/domain/examsession"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/progress"
)

func singleSelect(id int) selection.SessionQuestion {
	return selection.SessionQuestion{
		ID:             id,
		Detail:         "single",
		Options:        []string{"A", "B", "C", "D"},
		CorrectAnswers: []string{"A"},
	}
}

func multiSelect(id int) selection.SessionQuestion {
	return selection.SessionQuestion{
		ID:             id,
		Detail:         "multi",
		Options:        []string{"A", "B", "C", "D"},
		CorrectAnswers: []string{"A", "B"},
	}
}

func newPracticeSession(t *testing.T, store progress.Store, questions ...selection.SessionQuestion) *examsession.Session {
	t.Helper()
	return examsession.New(selection.ModePractice, questions, 0, store, nil)
}

func assertSelected(t *testing.T, sess *examsession.Session, id int, want ...int) {
	t.Helper()
	got := sess.Answers(id)
	if len(got) != len(want) {
		t.Fatalf("expected selection %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected selection %v, got %v", want, got)
		}
	}
}

func TestSelectOption_SingleSelectReplaces(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1))

	sess.SelectOption(1, 2)
	sess.SelectOption(1, 0)

	assertSelected(t, sess, 1, 0)
}

func TestSelectOption_MultiSelectCapsAtRequired(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), multiSelect(1))

	sess.SelectOption(1, 0)
	sess.SelectOption(1, 1)
	sess.SelectOption(1, 2) // beyond required count, silently rejected

	assertSelected(t, sess, 1, 0, 1)
}

func TestSelectOption_MultiSelectToggleDeselects(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), multiSelect(1))

	sess.SelectOption(1, 0)
	sess.SelectOption(1, 1)
	sess.SelectOption(1, 0) // deselect always succeeds

	assertSelected(t, sess, 1, 1)
	sess.SelectOption(1, 3) // room again
	assertSelected(t, sess, 1, 1, 3)
}

func TestSelectOption_InvalidRequestsAreNoOps(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1))

	sess.SelectOption(99, 0) // unknown question
	sess.SelectOption(1, -1) // out of range
	sess.SelectOption(1, 40)

	if got := sess.Answers(1); len(got) != 0 {
		t.Errorf("expected no selection, got %v", got)
	}
}

func TestSelectOption_PersistsAnsweredImmediately(t *testing.T) {
	store := progress.NewMemory()
	sess := newPracticeSession(t, store, singleSelect(1), singleSelect(2))

	sess.SelectOption(1, 0)

	ids, err := store.AnsweredIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected answered ids [1], got %v", ids)
	}

	// Exiting must not undo the write-through.
	sess.Exit()
	ids, _ = store.AnsweredIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("answered ids lost after exit: %v", ids)
	}
}

func TestSelectOption_AnsweredSetIsMonotonic(t *testing.T) {
	store := progress.NewMemory()
	sess := newPracticeSession(t, store, multiSelect(1))

	sess.SelectOption(1, 0)
	sess.SelectOption(1, 0) // deselect back to empty

	ids, _ := store.AnsweredIDs()
	if len(ids) != 1 {
		t.Errorf("answered ids must not shrink when a selection is cleared, got %v", ids)
	}
}

func TestToggleFlag_PersistsImmediately(t *testing.T) {
	store := progress.NewMemory()
	sess := newPracticeSession(t, store, singleSelect(1), singleSelect(2))

	sess.ToggleFlag(2)
	ids, _ := store.FlaggedIDs()
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected flagged ids [2], got %v", ids)
	}

	sess.ToggleFlag(2)
	ids, _ = store.FlaggedIDs()
	if len(ids) != 0 {
		t.Errorf("expected flag removed, got %v", ids)
	}
}

func TestNew_SeedsFlagsFromStore(t *testing.T) {
	store := progress.NewMemory()
	if err := store.SaveFlaggedIDs([]int{2, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess := newPracticeSession(t, store, singleSelect(1), singleSelect(2))
	if !sess.Flagged(2) {
		t.Error("expected flag from an earlier session to be visible")
	}
	if sess.Flagged(1) {
		t.Error("unflagged question reported as flagged")
	}
}

func TestAdvance_BlockedOnPartialSelection(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), multiSelect(1), singleSelect(2))

	sess.SelectOption(1, 0) // one of two required
	if err := sess.Advance(); err != examsession.ErrIncompleteAnswer {
		t.Fatalf("expected ErrIncompleteAnswer, got %v", err)
	}
	if _, pos := sess.Current(); pos != 0 {
		t.Errorf("pointer moved despite incomplete answer, at %d", pos)
	}

	sess.SelectOption(1, 1) // complete
	if err := sess.Advance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, pos := sess.Current(); pos != 1 {
		t.Errorf("expected pointer at 1, got %d", pos)
	}
}

func TestAdvance_EmptySelectionMaySkip(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), multiSelect(1), singleSelect(2))

	if err := sess.Advance(); err != nil {
		t.Fatalf("skipping an untouched question must be allowed: %v", err)
	}
	if _, pos := sess.Current(); pos != 1 {
		t.Errorf("expected pointer at 1, got %d", pos)
	}
}

func TestAdvanceRetreat_Clamped(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1), singleSelect(2))

	sess.Retreat()
	if _, pos := sess.Current(); pos != 0 {
		t.Errorf("retreat below 0, at %d", pos)
	}

	sess.Advance()
	sess.Advance()
	sess.Advance()
	if _, pos := sess.Current(); pos != 1 {
		t.Errorf("advance beyond last question, at %d", pos)
	}
}

func TestSubmitWarnings(t *testing.T) {
	store := progress.NewMemory()
	sess := newPracticeSession(t, store, singleSelect(1), singleSelect(2), singleSelect(3))

	sess.SelectOption(1, 0)
	sess.ToggleFlag(2)
	sess.ToggleFlag(99) // flag outside the session does not count

	unanswered, flagged := sess.SubmitWarnings()
	if unanswered != 2 {
		t.Errorf("expected 2 unanswered, got %d", unanswered)
	}
	if flagged != 1 {
		t.Errorf("expected 1 flagged in session, got %d", flagged)
	}
}

func TestSubmit_MergesAnsweredAndReturnsOutcome(t *testing.T) {
	store := progress.NewMemory()
	if err := store.SaveAnsweredIDs([]int{50}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess := newPracticeSession(t, store, singleSelect(1), singleSelect(2))

	sess.SelectOption(1, 3)
	outcome := sess.Submit()

	if sess.State() != examsession.StateSubmitted {
		t.Fatalf("expected submitted state, got %s", sess.State())
	}
	if got := outcome.Answers[1]; len(got) != 1 || got[0] != 3 {
		t.Errorf("expected answer [3] for question 1, got %v", got)
	}

	ids, _ := store.AnsweredIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 50 {
		t.Errorf("expected merged answered ids [1 50], got %v", ids)
	}
}

func TestSubmit_TerminalSessionIsInert(t *testing.T) {
	store := progress.NewMemory()
	sess := newPracticeSession(t, store, singleSelect(1))

	sess.Exit()
	outcome := sess.Submit()

	if sess.State() != examsession.StateExited {
		t.Errorf("submit after exit changed state to %s", sess.State())
	}
	if len(outcome.Answers) != 0 {
		t.Errorf("expected empty outcome, got %v", outcome.Answers)
	}

	sess.SelectOption(1, 0)
	if got := sess.Answers(1); len(got) != 0 {
		t.Errorf("selection accepted after exit: %v", got)
	}
	sess.ToggleFlag(1)
	if sess.Flagged(1) {
		t.Error("flag accepted after exit")
	}
}

func TestTick_CountsDownAndForceSubmits(t *testing.T) {
	store := progress.NewMemory()
	sess := examsession.New(selection.ModeTimed, []selection.SessionQuestion{singleSelect(1)}, 2*time.Second, store, nil)

	sess.SelectOption(1, 0)

	if sess.Tick() {
		t.Fatal("budget not exhausted after one tick")
	}
	if sess.Remaining() != 1 {
		t.Fatalf("expected 1 second remaining, got %d", sess.Remaining())
	}
	if !sess.Tick() {
		t.Fatal("expected forced submit at zero")
	}
	if sess.State() != examsession.StateSubmitted {
		t.Fatalf("expected submitted state, got %s", sess.State())
	}

	// A straggling tick after teardown is harmless.
	if sess.Tick() {
		t.Error("tick fired again on a finished session")
	}
}

func TestTick_NoOpInPracticeMode(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1))
	if sess.Tick() {
		t.Error("practice sessions have no countdown")
	}
}

func TestExplanationVisible(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), multiSelect(1), singleSelect(2))

	if sess.ExplanationVisible() {
		t.Error("no selection yet, explanation must be hidden")
	}

	// One of two required options: visibility triggers on any non-empty
	// selection, not on completeness.
	sess.SelectOption(1, 0)
	if !sess.ExplanationVisible() {
		t.Error("expected explanation after a partial selection")
	}

	sess.SelectOption(1, 1)
	if err := sess.Advance(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.ExplanationVisible() {
		t.Error("explanation leaked onto an untouched question")
	}
}

func TestExplanationVisible_TimedModeDefersFeedback(t *testing.T) {
	store := progress.NewMemory()
	sess := examsession.New(selection.ModeTimed, []selection.SessionQuestion{singleSelect(1)}, time.Minute, store, nil)

	sess.SelectOption(1, 0)
	if sess.ExplanationVisible() {
		t.Error("timed mode must defer feedback to scoring")
	}
}

func TestAnswerCorrect(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1))

	sess.SelectOption(1, 1) // "B", wrong
	if sess.AnswerCorrect(1) {
		t.Error("wrong answer reported correct")
	}
	sess.SelectOption(1, 0) // "A", right
	if !sess.AnswerCorrect(1) {
		t.Error("right answer reported wrong")
	}
}

func TestJumpTo_Clamped(t *testing.T) {
	sess := newPracticeSession(t, progress.NewMemory(), singleSelect(1), singleSelect(2), singleSelect(3))

	sess.JumpTo(2)
	if _, pos := sess.Current(); pos != 2 {
		t.Errorf("expected pointer at 2, got %d", pos)
	}
	sess.JumpTo(99)
	if _, pos := sess.Current(); pos != 2 {
		t.Errorf("expected clamp at last question, got %d", pos)
	}
	sess.JumpTo(-4)
	if _, pos := sess.Current(); pos != 0 {
		t.Errorf("expected clamp at 0, got %d", pos)
	}
}
