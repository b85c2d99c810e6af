package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause  key.Binding
	Stop       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Target     key.Binding
	Faster     key.Binding
	Slower     key.Binding
	NextColl   key.Binding
	PrevColl   key.Binding
	Up         key.Binding
	Down       key.Binding
	PlayRow    key.Binding
	AddPhrase  key.Binding
	RemoveCurr key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PlayPause:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Stop:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Next:       key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next")),
		Prev:       key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev")),
		Target:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "target on/off")),
		Faster:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		NextColl:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next collection")),
		PrevColl:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev collection")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PlayRow:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play selected")),
		AddPhrase:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add phrase")),
		RemoveCurr: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove phrase")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.Prev, k.Target, k.NextColl, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Stop, k.Next, k.Prev},
		{k.Target, k.Faster, k.Slower, k.Theme},
		{k.NextColl, k.PrevColl, k.Up, k.Down, k.PlayRow},
		{k.AddPhrase, k.RemoveCurr, k.Help, k.Quit},
	}
}

type formKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Switch key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Switch, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
