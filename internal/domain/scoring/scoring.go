package scoring

import (
	"math"
	"sort"

	"github.com/lifeuk-prep/trainer/internal/domain/selection"
)

// DefaultPassMark is the number of correct answers needed to pass,
// regardless of how many questions the session actually delivered.
const DefaultPassMark = 18

// QuestionResult holds the outcome for a single question.
type QuestionResult struct {
	Question selection.SessionQuestion
	Selected []int
	Correct  bool
}

// Result is the aggregate outcome of a completed session.
type Result struct {
	PerQuestion  []QuestionResult
	CorrectCount int
	Percentage   int
	Passed       bool
}

// Correct reports whether the selected option indices match the question's
// answer key exactly. Indices are resolved to option text through the
// session's shuffled option order, so correctness depends on answer content
// rather than position.
func Correct(q selection.SessionQuestion, selected []int) bool {
	chosen := make([]string, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(q.Options) {
			return false
		}
		chosen = append(chosen, q.Options[idx])
	}
	if len(chosen) != len(q.CorrectAnswers) {
		return false
	}

	want := make([]string, len(q.CorrectAnswers))
	copy(want, q.CorrectAnswers)
	sort.Strings(chosen)
	sort.Strings(want)
	for i := range want {
		if chosen[i] != want[i] {
			return false
		}
	}
	return true
}

// Score grades a completed session against the given pass mark.
func Score(questions []selection.SessionQuestion, answers map[int][]int, passMark int) Result {
	result := Result{PerQuestion: make([]QuestionResult, 0, len(questions))}
	for _, q := range questions {
		selected := answers[q.ID]
		correct := len(selected) > 0 && Correct(q, selected)
		if correct {
			result.CorrectCount++
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			Question: q,
			Selected: selected,
			Correct:  correct,
		})
	}
	if len(questions) > 0 {
		result.Percentage = int(math.Round(100 * float64(result.CorrectCount) / float64(len(questions))))
	}
	result.Passed = result.CorrectCount >= passMark
	return result
}
