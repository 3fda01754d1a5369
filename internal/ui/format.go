package ui

import (
	"fmt"

	"github.com/lifeuk-prep/trainer/internal/domain/examsession"
)

// formatClock renders remaining seconds as M:SS.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// selectHint tells the user how many options the question wants and, when
// the last advance was blocked, how many are still missing.
func selectHint(required, selected int, blocked bool) string {
	hint := "Select 1 answer"
	if required > 1 {
		hint = fmt.Sprintf("Select %d answers", required)
	}
	if blocked && selected < required {
		hint += fmt.Sprintf(" (please select %d more)", required-selected)
	}
	return hint
}

// questionStatus classifies a question for the navigation strip.
type questionStatus int

const (
	statusCurrent questionStatus = iota
	statusFlagged
	statusAnswered
	statusUntouched
)

func statusOf(sess *examsession.Session, pos, current int) questionStatus {
	q := sess.Questions[pos]
	switch {
	case pos == current:
		return statusCurrent
	case sess.Flagged(q.ID):
		return statusFlagged
	case len(sess.Answers(q.ID)) > 0:
		return statusAnswered
	default:
		return statusUntouched
	}
}
