package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the set of styles a screen renders with. The dark/light
// preference is persisted in the progress store.
type Theme struct {
	Name string

	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
	Card    lipgloss.Style
}

func themeByName(name string, noColor bool) Theme {
	if noColor {
		return plainTheme(name)
	}
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

func darkTheme() Theme {
	return Theme{
		Name:    "dark",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:    "light",
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(1, 2),
	}
}

func plainTheme(name string) Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:    name,
		Title:   plain,
		Text:    plain,
		Muted:   plain,
		Accent:  plain,
		Success: plain,
		Danger:  plain,
		Warning: plain,
		Card:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2),
	}
}
