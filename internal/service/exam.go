// Package service wires the catalog, selection engine, progress store and
// scoring together behind the operations the UI calls.
package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/lifeuk-prep/trainer/internal/domain/catalog"
	"github.com/lifeuk-prep/trainer/internal/domain/examsession"
	"github.com/lifeuk-prep/trainer/internal/domain/scoring"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/progress"
)

// ErrEmptyCatalog is returned when a session is requested but the catalog
// holds no questions at all.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Config holds the exam parameters.
type Config struct {
	SessionSize  int           // questions per session
	PassMark     int           // correct answers needed to pass
	ExamDuration time.Duration // countdown budget in timed mode
}

// Overview summarizes durable progress for the welcome screen.
type Overview struct {
	TotalQuestions int
	Flagged        int
	Answered       int
	Unanswered     int // questions neither flagged nor answered
}

// ExamService wires the catalog, the selection engine and the progress
// store together behind the operations the UI needs.
type ExamService struct {
	catalog  *catalog.Catalog
	store    progress.Store
	selector *selection.Selector
	cfg      Config
	logger   *slog.Logger
}

// NewExamService creates an ExamService.
func NewExamService(c *catalog.Catalog, store progress.Store, selector *selection.Selector, cfg Config, logger *slog.Logger) *ExamService {
	if cfg.SessionSize <= 0 {
		cfg.SessionSize = selection.DefaultSessionSize
	}
	if cfg.PassMark <= 0 {
		cfg.PassMark = scoring.DefaultPassMark
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExamService{
		catalog:  c,
		store:    store,
		selector: selector,
		cfg:      cfg,
		logger:   logger,
	}
}

// Catalog exposes the immutable question catalog (for search and counts).
func (s *ExamService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Config returns the exam parameters in effect.
func (s *ExamService) Config() Config {
	return s.cfg
}

// StartSession selects a question set for the given mode, set type and
// category filter and opens a session over it. Store read failures degrade
// to empty id sets so a session can always start.
func (s *ExamService) StartSession(mode selection.Mode, set selection.SetType, categories []string) (*examsession.Session, error) {
	if s.catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	flagged := s.idSet(s.store.FlaggedIDs, "flagged")
	answered := s.idSet(s.store.AnsweredIDs, "answered")

	questions := s.selector.Select(s.catalog, s.cfg.SessionSize, set, categories, flagged, answered)
	sess := examsession.New(mode, questions, s.cfg.ExamDuration, s.store, s.logger)

	s.logger.Info("session started",
		"session_id", sess.ID,
		"mode", mode,
		"set", set,
		"questions", len(questions),
	)
	return sess, nil
}

// Submit finalizes a session and scores it.
func (s *ExamService) Submit(sess *examsession.Session) scoring.Result {
	outcome := sess.Submit()
	result := scoring.Score(sess.Questions, outcome.Answers, s.cfg.PassMark)
	s.logger.Info("session submitted",
		"session_id", sess.ID,
		"correct", result.CorrectCount,
		"percentage", result.Percentage,
		"passed", result.Passed,
	)
	return result
}

// ToggleFlag flips a question's flag directly in the durable store. The
// result screen uses this after the session is gone.
func (s *ExamService) ToggleFlag(questionID int) ([]int, error) {
	ids, err := s.store.FlaggedIDs()
	if err != nil {
		return nil, err
	}
	out := ids[:0]
	found := false
	for _, id := range ids {
		if id == questionID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, questionID)
	}
	if err := s.store.SaveFlaggedIDs(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview reads durable progress counts for the welcome screen. Unanswered
// counts questions that are neither flagged nor answered.
func (s *ExamService) Overview() Overview {
	flagged := s.idSet(s.store.FlaggedIDs, "flagged")
	answered := s.idSet(s.store.AnsweredIDs, "answered")

	excluded := make(map[int]bool, len(flagged)+len(answered))
	for id := range flagged {
		excluded[id] = true
	}
	for id := range answered {
		excluded[id] = true
	}

	unanswered := s.catalog.Len() - len(excluded)
	if unanswered < 0 {
		unanswered = 0
	}
	return Overview{
		TotalQuestions: s.catalog.Len(),
		Flagged:        len(flagged),
		Answered:       len(answered),
		Unanswered:     unanswered,
	}
}

// ResetProgress clears both durable id sets. The caller is expected to
// confirm with the user first.
func (s *ExamService) ResetProgress() error {
	return s.store.Reset()
}

// Theme returns the persisted theme preference, defaulting to dark.
func (s *ExamService) Theme() string {
	theme, err := s.store.Theme()
	if err != nil {
		s.logger.Warn("failed to load theme", "error", err)
	}
	if theme == "" {
		return "dark"
	}
	return theme
}

// SaveTheme persists the theme preference.
func (s *ExamService) SaveTheme(theme string) {
	if err := s.store.SaveTheme(theme); err != nil {
		s.logger.Error("failed to save theme", "error", err)
	}
}

// idSet reads an id collection as a set, degrading to empty on error.
func (s *ExamService) idSet(read func() ([]int, error), name string) map[int]bool {
	ids, err := read()
	if err != nil {
		s.logger.Warn("failed to load ids", "collection", name, "error", err)
		return map[int]bool{}
	}
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
