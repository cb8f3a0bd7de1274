package tui

import "github.com/charmbracelet/bubbles/key"

// WatchKeyMap defines the key bindings for the watch screen.
type WatchKeyMap struct {
	Pause    key.Binding
	Restart  key.Binding
	Faster   key.Binding
	Slower   key.Binding
	LevelUp  key.Binding
	LevelDn  key.Binding
	Quit     key.Binding
	ShowFull key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Restart, k.Faster, k.Slower},
		{k.LevelUp, k.LevelDn, k.ShowFull, k.Quit},
	}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		LevelUp: key.NewBinding(
			key.WithKeys("]", "up"),
			key.WithHelp("]", "level up"),
		),
		LevelDn: key.NewBinding(
			key.WithKeys("[", "down"),
			key.WithHelp("[", "level down"),
		),
		ShowFull: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
