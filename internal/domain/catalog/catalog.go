package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Catalog is the immutable set of all available questions, loaded once at
// startup. Selection and scoring treat it as read-only for the lifetime of
// the process.
type Catalog struct {
	questions []Question
}

// New validates the given questions and wraps them in a Catalog.
func New(questions []Question) (*Catalog, error) {
	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("question %d: id must be positive, got %d", i, q.ID)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if len(q.CorrectAnswers) == 0 {
			return nil, fmt.Errorf("question %d: no correct answers", q.ID)
		}
		for _, c := range q.CorrectAnswers {
			if !contains(q.PossibleAnswers, c) {
				return nil, fmt.Errorf("question %d: correct answer %q is not a possible answer", q.ID, c)
			}
		}
	}
	return &Catalog{questions: questions}, nil
}

// Parse decodes and validates a JSON question dataset.
func Parse(data []byte) (*Catalog, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return New(questions)
}

// Load reads a question dataset from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return Parse(data)
}

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Questions returns a copy of the question list. Callers may reorder the
// returned slice freely; the catalog's own order is never affected.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Categories returns the sorted distinct category labels present in the
// catalog.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range c.questions {
		if q.Category == "" || seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		out = append(out, q.Category)
	}
	sort.Strings(out)
	return out
}

// Search returns questions whose prompt or options contain the term,
// case-insensitively. An empty term matches nothing.
func (c *Catalog) Search(term string) []Question {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []Question
	for _, q := range c.questions {
		if strings.Contains(strings.ToLower(q.Detail), term) {
			out = append(out, q)
			continue
		}
		for _, opt := range q.PossibleAnswers {
			if strings.Contains(strings.ToLower(opt), term) {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
