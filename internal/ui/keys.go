package ui

import "github.com/charmbracelet/bubbles/key"

// examKeyMap holds the exam screen bindings and feeds the help footer.
type examKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Choose key.Binding
	Flag   key.Binding
	Submit key.Binding
	Exit   key.Binding
}

func newExamKeyMap() examKeyMap {
	return examKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "option up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "option down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Flag: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "flag"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "submit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "exit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k examKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Prev, k.Next, k.Flag, k.Submit, k.Exit}
}

// FullHelp implements help.KeyMap.
func (k examKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Choose},
		{k.Prev, k.Next, k.Flag},
		{k.Submit, k.Exit},
	}
}
