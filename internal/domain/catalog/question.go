package catalog

// Question is a single multiple-choice entry from the catalog. The JSON tags
// match the dataset shipped with the app (questions.json).
type Question struct {
	ID              int      `json:"question_id"`
	Detail          string   `json:"question_detail"`
	PossibleAnswers []string `json:"possible_answers"`
	CorrectAnswers  []string `json:"correct_answers"`
	Explanation     string   `json:"explanation"`
	Category        string   `json:"category"`
}

// RequiredCount is how many options the question demands. One means
// single-select (radio) behaviour, more than one means multi-select.
func (q Question) RequiredCount() int {
	return len(q.CorrectAnswers)
}

// IsCorrectOption reports whether the given option text is part of the
// answer key. Correctness is defined on option content, not position.
func (q Question) IsCorrectOption(text string) bool {
	for _, c := range q.CorrectAnswers {
		if c == text {
			return true
		}
	}
	return false
}
