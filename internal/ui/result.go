package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifeuk-prep/trainer/internal/domain/scoring"
)

type resultState struct {
	result scoring.Result

	cursor   int
	expanded int // -1 means nothing expanded
	flags    map[int]bool
	errText  string
}

func newResultState(result scoring.Result, flags map[int]bool) resultState {
	return resultState{
		result:   result,
		expanded: -1,
		flags:    flags,
	}
}

func (m Model) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	r := &m.result

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.result.PerQuestion)-1 {
			r.cursor++
		}
	case "enter", " ":
		if r.expanded == r.cursor {
			r.expanded = -1
		} else {
			r.expanded = r.cursor
		}
	case "f":
		// Flags can still be managed after scoring; persist straight away.
		qid := r.result.PerQuestion[r.cursor].Question.ID
		if _, err := m.svc.ToggleFlag(qid); err != nil {
			r.errText = "flag not saved: " + err.Error()
			return m, nil
		}
		r.flags[qid] = !r.flags[qid]
	case "t":
		m.toggleTheme()
	case "r":
		m.welcome = newWelcomeState(m.svc)
		m.screen = screenWelcome
	}
	return m, nil
}

func (m Model) viewResult() string {
	r := m.result
	t := m.theme
	passMark := m.svc.Config().PassMark
	var b strings.Builder

	if r.result.Passed {
		b.WriteString(t.Success.Render("PASS") + "  " + t.Success.Render(fmt.Sprintf("%d%%", r.result.Percentage)) + "\n")
	} else {
		b.WriteString(t.Danger.Render("FAIL") + "  " + t.Danger.Render(fmt.Sprintf("%d%%", r.result.Percentage)) + "\n")
	}
	b.WriteString(t.Text.Render(fmt.Sprintf("%d of %d correct.", r.result.CorrectCount, len(r.result.PerQuestion))) + " ")
	b.WriteString(t.Muted.Render(fmt.Sprintf("You need %d or more to pass.", passMark)) + "\n\n")

	b.WriteString(t.Title.Render("Review your answers") + "\n")
	for i, qr := range r.result.PerQuestion {
		b.WriteString(m.renderReviewLine(i, qr) + "\n")
		if r.expanded == i {
			b.WriteString(m.renderReviewDetail(qr))
		}
	}

	if r.errText != "" {
		b.WriteString("\n" + t.Danger.Render(r.errText) + "\n")
	}
	b.WriteString("\n" + t.Muted.Render("↑/↓ move · enter details · f flag · r try again · t theme · q quit"))
	return t.Card.Render(b.String())
}

func (m Model) renderReviewLine(idx int, qr scoring.QuestionResult) string {
	r := m.result
	t := m.theme

	mark := t.Danger.Render("✗")
	if qr.Correct {
		mark = t.Success.Render("✓")
	}
	flag := "  "
	if r.flags[qr.Question.ID] {
		flag = t.Warning.Render("⚑ ")
	}
	cursor := "  "
	if idx == r.cursor {
		cursor = t.Accent.Render("> ")
	}

	detail := qr.Question.Detail
	line := fmt.Sprintf("%s %s%d. %s", mark, flag, idx+1, detail)
	if idx == r.cursor {
		return cursor + t.Accent.Render(line)
	}
	return cursor + t.Text.Render(line)
}

func (m Model) renderReviewDetail(qr scoring.QuestionResult) string {
	t := m.theme
	var b strings.Builder

	chosen := make(map[int]bool, len(qr.Selected))
	for _, idx := range qr.Selected {
		chosen[idx] = true
	}
	for i, opt := range qr.Question.Options {
		marker := "   "
		if chosen[i] {
			marker = " ● "
		}
		line := marker + opt
		switch {
		case qr.Question.IsCorrectOption(opt):
			line = t.Success.Render(line)
		case chosen[i]:
			line = t.Danger.Render(line)
		default:
			line = t.Muted.Render(line)
		}
		b.WriteString("    " + line + "\n")
	}
	b.WriteString("    " + t.Muted.Render("Explanation: "+qr.Question.Explanation) + "\n")
	return b.String()
}
