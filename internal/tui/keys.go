package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextRegion key.Binding
	PrevRegion key.Binding
	Theme      key.Binding
	Scroll     key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextRegion: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next region")),
		PrevRegion: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev region")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Scroll:     key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextRegion, k.Theme, k.Scroll, k.Quit}
}
