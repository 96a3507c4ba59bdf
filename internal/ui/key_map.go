package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	toggle   key.Binding
	next     key.Binding
	previous key.Binding
	volUp    key.Binding
	volDown  key.Binding
	seekFwd  key.Binding
	seekBack key.Binding
	shuffle  key.Binding
	repeat   key.Binding
	devices  key.Binding
	refresh  key.Binding
	enter    key.Binding
	back     key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:     key.NewBinding(key.WithKeys("n", "l"), key.WithHelp("n/l", "next")),
		previous: key.NewBinding(key.WithKeys("p", "h"), key.WithHelp("p/h", "previous")),
		volUp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		volDown:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		seekFwd:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +10s")),
		seekBack: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -10s")),
		shuffle:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		devices:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "devices")),
		refresh:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "transfer")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.next, k.previous, k.devices, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.next, k.previous},
		{k.volUp, k.volDown, k.seekFwd, k.seekBack},
		{k.shuffle, k.repeat, k.devices, k.refresh},
		{k.help, k.quit},
	}
}
