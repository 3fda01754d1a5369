// Package ui renders the trainer's three screens (welcome, exam, result)
// with Bubble Tea. All exam rules live in the domain packages; this layer
// only routes key presses to core operations and draws their state.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lifeuk-prep/trainer/internal/service"
)

type screen int

const (
	screenWelcome screen = iota
	screenExam
	screenResult
)

// Options configures the UI model.
type Options struct {
	NoColor bool
}

// Model is the root Bubble Tea model.
type Model struct {
	svc  *service.ExamService
	opts Options

	theme  Theme
	screen screen

	welcome welcomeState
	exam    examState
	result  resultState

	width  int
	height int
}

// NewModel constructs the root model on the welcome screen.
func NewModel(svc *service.ExamService, opts Options) Model {
	m := Model{
		svc:    svc,
		opts:   opts,
		screen: screenWelcome,
	}
	m.theme = themeByName(svc.Theme(), opts.NoColor)
	m.welcome = newWelcomeState(svc)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenExam:
		return m.updateExam(msg)
	case screenResult:
		return m.updateResult(msg)
	default:
		return m.updateWelcome(msg)
	}
}

// View renders the active screen.
func (m Model) View() string {
	switch m.screen {
	case screenExam:
		return m.viewExam()
	case screenResult:
		return m.viewResult()
	default:
		return m.viewWelcome()
	}
}

// toggleTheme flips dark/light and persists the preference.
func (m *Model) toggleTheme() {
	name := "dark"
	if m.theme.Name == "dark" {
		name = "light"
	}
	m.svc.SaveTheme(name)
	m.theme = themeByName(name, m.opts.NoColor)
}

// tickMsg carries the one-second countdown tick.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
