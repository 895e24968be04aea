package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help footer.
type keyMap struct {
	Next   key.Binding
	Spin   key.Binding
	Export key.Binding
	Help   key.Binding
	Quit   key.Binding

	Submit key.Binding
	Retry  key.Binding
	Edit   key.Binding

	state State
}

func defaultKeyMap() keyMap {
	return keyMap{
		// "r" only matches a bare r: ctrl+r and alt+r arrive as different keys
		// and stay unhandled.
		Next: key.NewBinding(
			key.WithKeys("right", "left", "up", "down", "r"),
			key.WithHelp("←/→/r", "another album"),
		),
		Spin: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "spin/pause"),
		),
		Export: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save playlist"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "load catalog"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit catalog URL"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	switch k.state {
	case StateInput:
		return []key.Binding{k.Submit, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit"))}
	case StateLoading:
		return []key.Binding{k.Quit}
	case StateError:
		return []key.Binding{k.Retry, k.Edit, k.Quit}
	default:
		return []key.Binding{k.Next, k.Spin, k.Help, k.Quit}
	}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	if k.state != StateBrowsing {
		return [][]key.Binding{k.ShortHelp()}
	}
	return [][]key.Binding{
		{k.Next, k.Spin},
		{k.Export, k.Help, k.Quit},
	}
}
