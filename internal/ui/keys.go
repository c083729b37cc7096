package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a navigation input after physical key decoding.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyDown
	KeyUp
	KeyRight
	KeyEnter
	KeyAscend
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyAscend:
		return "ascend"
	case KeyQuit:
		return "quit"
	}
	return "none"
}

// KeyMap binds physical keys to navigation inputs.
type KeyMap struct {
	Left   key.Binding
	Down   key.Binding
	Up     key.Binding
	Right  key.Binding
	Enter  key.Binding
	Ascend key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns arrow and vi-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Ascend: key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Resolve maps a key press to a navigation input. Unbound keys resolve to
// KeyNone.
func (km KeyMap) Resolve(msg tea.KeyMsg) Key {
	switch {
	case key.Matches(msg, km.Left):
		return KeyLeft
	case key.Matches(msg, km.Down):
		return KeyDown
	case key.Matches(msg, km.Up):
		return KeyUp
	case key.Matches(msg, km.Right):
		return KeyRight
	case key.Matches(msg, km.Enter):
		return KeyEnter
	case key.Matches(msg, km.Ascend):
		return KeyAscend
	case key.Matches(msg, km.Quit):
		return KeyQuit
	}
	return KeyNone
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Left, km.Down, km.Up, km.Right, km.Enter, km.Ascend, km.Quit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Down, km.Up, km.Right},
		{km.Enter, km.Ascend, km.Quit},
	}
}
