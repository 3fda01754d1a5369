// Package examsession tracks one exam attempt: the current question
// pointer, per-question selections and flags, the countdown in timed mode,
// and the submit/exit lifecycle. Flag toggles and first-time answers are
// written through to the progress store the moment they happen, so exiting
// without submitting never loses them.
package examsession

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lifeuk-prep/trainer/internal/domain/scoring"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/progress"
)

// State is the session lifecycle state.
type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitted  State = "submitted"
	StateExited     State = "exited"
)

// ErrIncompleteAnswer signals that Advance was blocked because the current
// question has some, but not all, of its required options selected.
var ErrIncompleteAnswer = errors.New("answer incomplete")

// Outcome is the payload a submitted session hands to scoring.
type Outcome struct {
	Answers map[int][]int
	Flags   []int
}

// Session is one exam attempt over a fixed question set.
type Session struct {
	ID        string
	Mode      selection.Mode
	Questions []selection.SessionQuestion

	answers   map[int][]int
	flags     map[int]bool
	positions map[int]int // question id -> index in Questions
	current   int
	state     State
	remaining int // seconds, timed mode only

	store  progress.Store
	logger *slog.Logger
}

// New creates an in-progress session over the given questions. Flags are
// seeded from the durable store so a flag set in an earlier session shows
// up immediately. duration only applies in timed mode.
func New(mode selection.Mode, questions []selection.SessionQuestion, duration time.Duration, store progress.Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Questions: questions,
		answers:   make(map[int][]int),
		flags:     make(map[int]bool),
		positions: make(map[int]int, len(questions)),
		state:     StateInProgress,
		store:     store,
		logger:    logger,
	}
	for i, q := range questions {
		s.positions[q.ID] = i
	}
	if mode == selection.ModeTimed {
		s.remaining = int(duration.Seconds())
	}

	ids, err := store.FlaggedIDs()
	if err != nil {
		logger.Warn("failed to load flagged ids", "error", err)
	}
	for _, id := range ids {
		s.flags[id] = true
	}
	return s
}

func (s *Session) State() State   { return s.state }
func (s *Session) Remaining() int { return s.remaining }

// Current returns the current question and its position.
func (s *Session) Current() (selection.SessionQuestion, int) {
	return s.Questions[s.current], s.current
}

// Answers returns a copy of the selected option indices for a question.
func (s *Session) Answers(questionID int) []int {
	selected := s.answers[questionID]
	out := make([]int, len(selected))
	copy(out, selected)
	return out
}

// Flagged reports whether a question id is currently flagged.
func (s *Session) Flagged(questionID int) bool {
	return s.flags[questionID]
}

// SelectOption records a selection for a question. Single-select questions
// replace the prior choice; multi-select questions toggle, refusing new
// selections once the required count is reached. Out-of-range indices and
// unknown question ids are silent no-ops. The first non-empty selection for
// a question not yet in the durable answered set is persisted immediately.
func (s *Session) SelectOption(questionID, optionIndex int) {
	if s.state != StateInProgress {
		return
	}
	pos, ok := s.positions[questionID]
	if !ok {
		return
	}
	q := s.Questions[pos]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return
	}

	selected := s.answers[questionID]
	if q.RequiredCount() == 1 {
		s.answers[questionID] = []int{optionIndex}
	} else if at := indexOf(selected, optionIndex); at >= 0 {
		s.answers[questionID] = append(selected[:at:at], selected[at+1:]...)
	} else if len(selected) < q.RequiredCount() {
		s.answers[questionID] = append(selected, optionIndex)
	} else {
		return // already at the required count
	}

	if len(s.answers[questionID]) > 0 {
		s.recordAnswered(questionID)
	}
}

// ToggleFlag flips a question's flag and persists the full flagged set
// right away, independent of submit or exit.
func (s *Session) ToggleFlag(questionID int) {
	if s.state != StateInProgress {
		return
	}
	if s.flags[questionID] {
		delete(s.flags, questionID)
	} else {
		s.flags[questionID] = true
	}
	if err := s.store.SaveFlaggedIDs(s.flagIDs()); err != nil {
		s.logger.Error("failed to save flagged ids", "error", err)
	}
}

// Advance moves to the next question. It is blocked when the current
// question has a partial selection: some options chosen, fewer than
// required. A question with no selection at all may be skipped freely.
func (s *Session) Advance() error {
	q := s.Questions[s.current]
	n := len(s.answers[q.ID])
	if n > 0 && n < q.RequiredCount() {
		return ErrIncompleteAnswer
	}
	if s.current < len(s.Questions)-1 {
		s.current++
	}
	return nil
}

// Retreat moves to the previous question, clamped at the first.
func (s *Session) Retreat() {
	if s.current > 0 {
		s.current--
	}
}

// JumpTo moves the pointer straight to the given position, clamped to the
// question range. Direct navigation is not completeness-gated.
func (s *Session) JumpTo(position int) {
	if position < 0 {
		position = 0
	}
	if position > len(s.Questions)-1 {
		position = len(s.Questions) - 1
	}
	s.current = position
}

// SubmitWarnings returns what a confirmed submit would leave behind: the
// number of unanswered questions and the number of flags on questions in
// this session. Whether to prompt the user about them is the caller's
// decision; a forced submit ignores them entirely.
func (s *Session) SubmitWarnings() (unanswered, flaggedInSession int) {
	for _, q := range s.Questions {
		if len(s.answers[q.ID]) == 0 {
			unanswered++
		}
		if s.flags[q.ID] {
			flaggedInSession++
		}
	}
	return unanswered, flaggedInSession
}

// Submit finalizes the session and returns its answers and flags. Answered
// ids are merged into the durable set and the flag set is persisted once
// more. Submitting a session that already ended returns the same outcome
// without persisting again.
func (s *Session) Submit() Outcome {
	if s.state != StateInProgress {
		return s.outcome()
	}
	s.state = StateSubmitted

	ids, err := s.store.AnsweredIDs()
	if err != nil {
		s.logger.Warn("failed to load answered ids", "error", err)
		ids = nil
	}
	merged := make(map[int]bool, len(ids))
	for _, id := range ids {
		merged[id] = true
	}
	for id, selected := range s.answers {
		if len(selected) > 0 {
			merged[id] = true
		}
	}
	if err := s.store.SaveAnsweredIDs(sortedIDs(merged)); err != nil {
		s.logger.Error("failed to save answered ids", "error", err)
	}
	if err := s.store.SaveFlaggedIDs(s.flagIDs()); err != nil {
		s.logger.Error("failed to save flagged ids", "error", err)
	}
	return s.outcome()
}

// Exit abandons the session without scoring. Flags and answered ids that
// were written through during the session stay persisted.
func (s *Session) Exit() {
	if s.state != StateInProgress {
		return
	}
	s.state = StateExited
}

// Tick advances the countdown by one second. When the budget runs out it
// force-submits with whatever answers and flags exist and reports true.
// Ticks against a session that already ended are no-ops, so a timer firing
// after teardown is harmless.
func (s *Session) Tick() bool {
	if s.state != StateInProgress || s.Mode != selection.ModeTimed {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining > 0 {
		return false
	}
	s.Submit()
	return true
}

// ExplanationVisible reports whether practice mode should show the current
// question's explanation. The trigger is any non-empty selection, not a
// complete one.
func (s *Session) ExplanationVisible() bool {
	if s.Mode != selection.ModePractice {
		return false
	}
	q := s.Questions[s.current]
	return len(s.answers[q.ID]) > 0
}

// AnswerCorrect reports whether the question's current selection matches
// its answer key. Used for practice-mode feedback and the result review.
func (s *Session) AnswerCorrect(questionID int) bool {
	pos, ok := s.positions[questionID]
	if !ok {
		return false
	}
	return scoring.Correct(s.Questions[pos], s.answers[questionID])
}

// recordAnswered marks a question as answered in the durable store the
// first time it gets a selection. The answered set only ever grows here.
func (s *Session) recordAnswered(questionID int) {
	ids, err := s.store.AnsweredIDs()
	if err != nil {
		s.logger.Warn("failed to load answered ids", "error", err)
		ids = nil
	}
	for _, id := range ids {
		if id == questionID {
			return
		}
	}
	if err := s.store.SaveAnsweredIDs(append(ids, questionID)); err != nil {
		s.logger.Error("failed to save answered ids", "error", err)
	}
}

func (s *Session) outcome() Outcome {
	answers := make(map[int][]int, len(s.answers))
	for id, selected := range s.answers {
		out := make([]int, len(selected))
		copy(out, selected)
		answers[id] = out
	}
	return Outcome{Answers: answers, Flags: s.flagIDs()}
}

func (s *Session) flagIDs() []int {
	set := make(map[int]bool, len(s.flags))
	for id := range s.flags {
		set[id] = true
	}
	return sortedIDs(set)
}

func sortedIDs(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func indexOf(list []int, want int) int {
	for i, v := range list {
		if v == want {
			return i
		}
	}
	return -1
}
