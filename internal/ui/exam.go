package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifeuk-prep/trainer/internal/domain/examsession"
	"github.com/lifeuk-prep/trainer/internal/domain/selection"
)

const lowTimeWarning = 300 // seconds left before the clock turns red

type examState struct {
	sess *examsession.Session
	set  selection.SetType

	keys examKeyMap
	help help.Model

	optCursor int
	blocked   bool   // last advance was rejected as incomplete
	confirm   string // "", "submit" or "exit"
}

func newExamState(sess *examsession.Session, set selection.SetType) examState {
	return examState{
		sess: sess,
		set:  set,
		keys: newExamKeyMap(),
		help: help.New(),
	}
}

func (m Model) updateExam(msg tea.Msg) (tea.Model, tea.Cmd) {
	e := &m.exam

	switch typed := msg.(type) {
	case tickMsg:
		if e.sess.State() != examsession.StateInProgress {
			return m, nil // session ended, let the tick chain die
		}
		if e.sess.Tick() {
			// Time ran out: the session force-submitted itself, which
			// overrides any pending confirmation prompt.
			return m.finishExam()
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if e.confirm != "" {
			return m.handleConfirm(typed.String())
		}

		q, pos := e.sess.Current()
		switch {
		case key.Matches(typed, e.keys.Up):
			if e.optCursor > 0 {
				e.optCursor--
			}
		case key.Matches(typed, e.keys.Down):
			if e.optCursor < len(q.Options)-1 {
				e.optCursor++
			}
		case key.Matches(typed, e.keys.Choose):
			e.sess.SelectOption(q.ID, e.optCursor)
			e.blocked = false
		case key.Matches(typed, e.keys.Prev):
			e.sess.Retreat()
			e.optCursor = 0
			e.blocked = false
		case key.Matches(typed, e.keys.Next):
			if pos == len(e.sess.Questions)-1 {
				return m.requestSubmit()
			}
			if err := e.sess.Advance(); err != nil {
				e.blocked = true
			} else {
				e.optCursor = 0
				e.blocked = false
			}
		case key.Matches(typed, e.keys.Flag):
			e.sess.ToggleFlag(q.ID)
		case key.Matches(typed, e.keys.Submit):
			return m.requestSubmit()
		case key.Matches(typed, e.keys.Exit):
			e.confirm = "exit"
		default:
			if typed.String() == "?" {
				e.help.ShowAll = !e.help.ShowAll
			}
		}
	}
	return m, nil
}

// requestSubmit applies the two-phase submit contract: ask the core what a
// submit would leave behind and only prompt when there is something to warn
// about.
func (m Model) requestSubmit() (tea.Model, tea.Cmd) {
	unanswered, flagged := m.exam.sess.SubmitWarnings()
	if unanswered == 0 && flagged == 0 {
		return m.finishExam()
	}
	m.exam.confirm = "submit"
	return m, nil
}

func (m Model) handleConfirm(pressed string) (tea.Model, tea.Cmd) {
	e := &m.exam
	action := e.confirm
	e.confirm = ""

	if pressed != "y" {
		return m, nil
	}
	if action == "exit" {
		e.sess.Exit()
		m.welcome = newWelcomeState(m.svc)
		m.screen = screenWelcome
		return m, nil
	}
	return m.finishExam()
}

func (m Model) finishExam() (tea.Model, tea.Cmd) {
	result := m.svc.Submit(m.exam.sess)

	flags := make(map[int]bool)
	for _, qr := range result.PerQuestion {
		if m.exam.sess.Flagged(qr.Question.ID) {
			flags[qr.Question.ID] = true
		}
	}

	m.result = newResultState(result, flags)
	m.screen = screenResult
	return m, nil
}

func (m Model) viewExam() string {
	e := m.exam
	t := m.theme
	sess := e.sess
	q, pos := sess.Current()
	selected := sess.Answers(q.ID)

	var b strings.Builder

	// Header
	header := t.Title.Render(fmt.Sprintf("Question %d", pos+1)) +
		t.Muted.Render(fmt.Sprintf(" / %d", len(sess.Questions)))
	if sess.Mode == selection.ModeTimed {
		clock := formatClock(sess.Remaining())
		if sess.Remaining() < lowTimeWarning {
			header += "   " + t.Danger.Render("⏱ "+clock)
		} else {
			header += "   " + t.Text.Render("⏱ "+clock)
		}
	}
	if sess.Flagged(q.ID) {
		header += "   " + t.Warning.Render("⚑ flagged")
	}
	if note := m.poolNote(q); note != "" {
		header += "   " + note
	}
	b.WriteString(header + "\n\n")

	// Question card
	b.WriteString(t.Text.Render(q.Detail) + "\n\n")

	hint := selectHint(q.RequiredCount(), len(selected), e.blocked)
	if e.blocked {
		b.WriteString(t.Danger.Render(hint) + "\n")
	} else {
		b.WriteString(t.Accent.Render(hint) + "\n")
	}

	showFeedback := sess.ExplanationVisible()
	for i, opt := range q.Options {
		b.WriteString(m.renderOption(q, i, opt, selected, i == e.optCursor, showFeedback) + "\n")
	}

	if showFeedback {
		if sess.AnswerCorrect(q.ID) {
			b.WriteString("\n" + t.Success.Render("✓ Correct!") + "\n")
		} else {
			b.WriteString("\n" + t.Danger.Render("✗ Incorrect") + "\n")
		}
		b.WriteString(t.Muted.Render("Explanation: "+q.Explanation) + "\n")
	}

	// Navigation strip
	b.WriteString("\n" + m.renderNavStrip() + "\n")

	// Footer
	switch e.confirm {
	case "submit":
		unanswered, flagged := sess.SubmitWarnings()
		b.WriteString("\n" + t.Warning.Render(fmt.Sprintf(
			"Submit with %d unanswered and %d flagged question(s)? y/n", unanswered, flagged)))
	case "exit":
		b.WriteString("\n" + t.Danger.Render("Exit the exam without scoring? y/n"))
	default:
		b.WriteString("\n" + e.help.View(e.keys))
	}

	return t.Card.Render(b.String())
}

// poolNote explains where the current question came from when practising a
// flagged set: still flagged, resolved, or random filler.
func (m Model) poolNote(q selection.SessionQuestion) string {
	if m.exam.set != selection.SetFlagged {
		return ""
	}
	t := m.theme
	switch {
	case q.FromPrimaryPool && m.exam.sess.Flagged(q.ID):
		return t.Warning.Render("from flagged pool")
	case q.FromPrimaryPool:
		return t.Success.Render("resolved")
	default:
		return t.Muted.Render("random filler")
	}
}

func (m Model) renderOption(q selection.SessionQuestion, idx int, text string, selected []int, atCursor, showFeedback bool) string {
	t := m.theme
	isSelected := false
	for _, s := range selected {
		if s == idx {
			isSelected = true
			break
		}
	}

	marker := "( )"
	if q.RequiredCount() > 1 {
		marker = "[ ]"
	}
	if isSelected {
		if q.RequiredCount() > 1 {
			marker = "[x]"
		} else {
			marker = "(o)"
		}
	}

	cursor := "  "
	if atCursor {
		cursor = t.Accent.Render("❯ ")
	}

	line := marker + " " + text
	switch {
	case showFeedback && q.IsCorrectOption(text):
		line = t.Success.Render(line)
	case showFeedback && isSelected:
		line = t.Danger.Render(line)
	case isSelected:
		line = t.Accent.Render(line)
	default:
		line = t.Text.Render(line)
	}
	return cursor + line
}

func (m Model) renderNavStrip() string {
	sess := m.exam.sess
	_, current := sess.Current()
	t := m.theme

	parts := make([]string, len(sess.Questions))
	for i := range sess.Questions {
		label := fmt.Sprintf("%d", i+1)
		switch statusOf(sess, i, current) {
		case statusCurrent:
			parts[i] = t.Accent.Render("[" + label + "]")
		case statusFlagged:
			parts[i] = t.Warning.Render(label)
		case statusAnswered:
			parts[i] = t.Success.Render(label)
		default:
			parts[i] = t.Muted.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
