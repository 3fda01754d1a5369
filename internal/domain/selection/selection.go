package selection

import (
	"math/rand"

	"github.com/lifeuk-prep/trainer/internal/domain/catalog"
)

// Mode controls feedback behaviour during a session.
type Mode string

const (
	ModePractice Mode = "practice" // untimed, immediate feedback
	ModeTimed    Mode = "timed"    // countdown, feedback deferred to scoring
)

// SetType names the pool a session's questions are drawn from.
type SetType string

const (
	SetRandom     SetType = "random"
	SetFlagged    SetType = "flagged"
	SetAnswered   SetType = "answered"
	SetUnanswered SetType = "unanswered"
)

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "All"

// DefaultSessionSize is the standard exam length.
const DefaultSessionSize = 24

// SessionQuestion is a session-local snapshot of a catalog question. Options
// holds a freshly shuffled copy of the question's possible answers, so answer
// indices are only meaningful within one session.
type SessionQuestion struct {
	ID             int
	Detail         string
	Options        []string
	CorrectAnswers []string
	Explanation    string
	Category       string

	// FromPrimaryPool records whether the question came from the requested
	// pool (e.g. was actually flagged) rather than being fallback fill. It
	// is frozen at selection time.
	FromPrimaryPool bool
}

// RequiredCount is how many options the question demands.
func (q SessionQuestion) RequiredCount() int {
	return len(q.CorrectAnswers)
}

// IsCorrectOption reports whether the option text is part of the answer key.
func (q SessionQuestion) IsCorrectOption(text string) bool {
	for _, c := range q.CorrectAnswers {
		if c == text {
			return true
		}
	}
	return false
}

// Selector draws question sets from a catalog. The random source is
// injectable so selections can be reproduced under a fixed seed.
type Selector struct {
	rng *rand.Rand
}

// New creates a Selector seeded with the given value.
func New(seed int64) *Selector {
	return NewFromRand(rand.New(rand.NewSource(seed)))
}

// NewFromRand creates a Selector using the given random source.
func NewFromRand(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// Select builds an ordered question set of up to size questions. Questions
// from the requested pool are always kept ahead of fallback fill, no
// question appears twice, and the catalog itself is never mutated. When the
// whole catalog holds fewer than size questions the result is simply
// shorter, never padded.
func (s *Selector) Select(c *catalog.Catalog, size int, set SetType, categories []string, flagged, answered map[int]bool) []SessionQuestion {
	if size <= 0 {
		size = DefaultSessionSize
	}

	pool := filterByCategory(c.Questions(), categories)
	if len(pool) == 0 {
		pool = c.Questions()
	}

	var primary, fill []catalog.Question
	switch set {
	case SetFlagged:
		primary, fill = partition(pool, func(q catalog.Question) bool { return flagged[q.ID] })
	case SetAnswered:
		primary, fill = partition(pool, func(q catalog.Question) bool { return answered[q.ID] })
	case SetUnanswered:
		primary, _ = partition(pool, func(q catalog.Question) bool {
			return !answered[q.ID] && !flagged[q.ID]
		})
		fill, _ = partition(pool, func(q catalog.Question) bool { return answered[q.ID] })
	default: // SetRandom
		primary, fill = pool, nil
	}

	var picked []catalog.Question
	if len(primary) >= size {
		picked = s.shuffled(primary)[:size]
	} else {
		picked = append(picked, primary...)
		need := size - len(picked)
		extra := s.shuffled(fill)
		if need < len(extra) {
			extra = extra[:need]
		}
		picked = append(picked, extra...)
	}

	// Pathological filters can still leave nothing; fall back to a fresh
	// shuffle of the whole catalog rather than returning an empty session.
	if len(picked) == 0 {
		picked = s.shuffled(c.Questions())
		if len(picked) > size {
			picked = picked[:size]
		}
	}

	out := make([]SessionQuestion, len(picked))
	for i, q := range picked {
		out[i] = s.snapshot(q, set == SetRandom || inPrimary(q, set, flagged, answered))
	}
	return out
}

// snapshot copies a catalog question, replacing its option order with a
// session-local shuffle. The original slices are left untouched.
func (s *Selector) snapshot(q catalog.Question, fromPrimary bool) SessionQuestion {
	options := make([]string, len(q.PossibleAnswers))
	copy(options, q.PossibleAnswers)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := make([]string, len(q.CorrectAnswers))
	copy(correct, q.CorrectAnswers)

	return SessionQuestion{
		ID:              q.ID,
		Detail:          q.Detail,
		Options:         options,
		CorrectAnswers:  correct,
		Explanation:     q.Explanation,
		Category:        q.Category,
		FromPrimaryPool: fromPrimary,
	}
}

// shuffled returns a new slice with the questions in random order.
func (s *Selector) shuffled(questions []catalog.Question) []catalog.Question {
	out := make([]catalog.Question, len(questions))
	copy(out, questions)
	s.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func filterByCategory(questions []catalog.Question, categories []string) []catalog.Question {
	wanted := make(map[string]bool)
	for _, cat := range categories {
		if cat == CategoryAll {
			return questions
		}
		if cat != "" {
			wanted[cat] = true
		}
	}
	if len(wanted) == 0 {
		return questions
	}
	var out []catalog.Question
	for _, q := range questions {
		if wanted[q.Category] {
			out = append(out, q)
		}
	}
	return out
}

func partition(questions []catalog.Question, in func(catalog.Question) bool) (inside, outside []catalog.Question) {
	for _, q := range questions {
		if in(q) {
			inside = append(inside, q)
		} else {
			outside = append(outside, q)
		}
	}
	return inside, outside
}

func inPrimary(q catalog.Question, set SetType, flagged, answered map[int]bool) bool {
	switch set {
	case SetFlagged:
		return flagged[q.ID]
	case SetAnswered:
		return answered[q.ID]
	case SetUnanswered:
		return !answered[q.ID] && !flagged[q.ID]
	default:
		return true
	}
}
