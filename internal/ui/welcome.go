package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifeuk-prep/trainer/internal/domain/selection"
	"github.com/lifeuk-prep/trainer/internal/service"
)

var setTypes = []selection.SetType{
	selection.SetRandom,
	selection.SetUnanswered,
	selection.SetFlagged,
	selection.SetAnswered,
}

type welcomeState struct {
	overview service.Overview

	mode       selection.Mode
	setCursor  int
	categories []string // CategoryAll plus the catalog's labels
	catCursor  int

	confirmReset bool
	errText      string
}

func newWelcomeState(svc *service.ExamService) welcomeState {
	return welcomeState{
		overview:   svc.Overview(),
		mode:       selection.ModePractice,
		categories: append([]string{selection.CategoryAll}, svc.Catalog().Categories()...),
	}
}

func (m Model) updateWelcome(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	w := &m.welcome

	if w.confirmReset {
		if keyMsg.String() == "y" {
			if err := m.svc.ResetProgress(); err != nil {
				w.errText = "reset failed: " + err.Error()
			}
			w.overview = m.svc.Overview()
		}
		w.confirmReset = false
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if w.setCursor > 0 {
			w.setCursor--
		}
	case "down", "j":
		if w.setCursor < len(setTypes)-1 {
			w.setCursor++
		}
	case "left", "h":
		if w.catCursor > 0 {
			w.catCursor--
		}
	case "right", "l":
		if w.catCursor < len(w.categories)-1 {
			w.catCursor++
		}
	case "m":
		if w.mode == selection.ModePractice {
			w.mode = selection.ModeTimed
		} else {
			w.mode = selection.ModePractice
		}
	case "t":
		m.toggleTheme()
	case "r":
		if w.overview.Flagged > 0 || w.overview.Answered > 0 {
			w.confirmReset = true
		}
	case "enter":
		set := setTypes[w.setCursor]
		categories := []string{w.categories[w.catCursor]}
		sess, err := m.svc.StartSession(w.mode, set, categories)
		if err != nil {
			w.errText = err.Error()
			return m, nil
		}
		m.exam = newExamState(sess, set)
		m.screen = screenExam
		if w.mode == selection.ModeTimed {
			return m, tickCmd()
		}
	}
	return m, nil
}

func (m Model) viewWelcome() string {
	w := m.welcome
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("Life in the UK Test") + "\n")
	b.WriteString(t.Muted.Render(fmt.Sprintf("%d questions in the catalog", w.overview.TotalQuestions)) + "\n\n")

	modeLine := "Mode: "
	if w.mode == selection.ModePractice {
		modeLine += t.Accent.Render("Practice") + t.Muted.Render("  (untimed, instant feedback)")
	} else {
		modeLine += t.Accent.Render("Timed exam") + t.Muted.Render(fmt.Sprintf("  (%s, feedback at the end)", formatClock(int(m.svc.Config().ExamDuration.Seconds()))))
	}
	b.WriteString(modeLine + "\n\n")

	b.WriteString(t.Text.Render("Question set:") + "\n")
	for i, set := range setTypes {
		cursor := "  "
		line := setLabel(set, w.overview)
		if i == w.setCursor {
			cursor = t.Accent.Render("> ")
			line = t.Accent.Render(line)
		} else {
			line = t.Text.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + t.Text.Render("Category: ") + t.Accent.Render(w.categories[w.catCursor]) + "\n")

	if w.confirmReset {
		b.WriteString("\n" + t.Danger.Render("Reset ALL progress (flags and answered marks)? y/n") + "\n")
	} else if w.errText != "" {
		b.WriteString("\n" + t.Danger.Render(w.errText) + "\n")
	}

	b.WriteString("\n" + t.Muted.Render("enter start · ↑/↓ set · ←/→ category · m mode · r reset · t theme · q quit"))
	return t.Card.Render(b.String())
}

func setLabel(set selection.SetType, o service.Overview) string {
	switch set {
	case selection.SetUnanswered:
		return fmt.Sprintf("Unanswered questions (%d)", o.Unanswered)
	case selection.SetFlagged:
		return fmt.Sprintf("Flagged questions (%d)", o.Flagged)
	case selection.SetAnswered:
		return fmt.Sprintf("Answered questions (%d)", o.Answered)
	default:
		return "Random set"
	}
}
