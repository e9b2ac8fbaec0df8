// Package tui provides the terminal user interface for taskdex.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Keymap contains all key bindings for the application.
type Keymap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Actions
	Select     key.Binding
	Back       key.Binding
	SwitchPane key.Binding
	Quit       key.Binding
	Help       key.Binding
	Refresh    key.Binding

	// Item actions
	Toggle key.Binding
	Add    key.Binding
	Copy   key.Binding

	// Layout
	Collapse   key.Binding
	Shrink     key.Binding
	Grow       key.Binding
	ShrinkMore key.Binding
	GrowMore   key.Binding
}

// DefaultKeymap returns the default key bindings. vim adds hjkl-style
// navigation keys.
func DefaultKeymap(vim bool) Keymap {
	up := []string{"up"}
	down := []string{"down"}
	top := []string{"home"}
	bottom := []string{"end"}
	if vim {
		up = append(up, "k")
		down = append(down, "j")
		top = append(top, "g")
		bottom = append(bottom, "G")
	}

	return Keymap{
		Up:     key.NewBinding(key.WithKeys(up...), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys(down...), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys(top...), key.WithHelp("gg", "top")),
		Bottom: key.NewBinding(key.WithKeys(bottom...), key.WithHelp("G", "bottom")),

		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Toggle: key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "done")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),

		Collapse:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "collapse sidebar")),
		Shrink:     key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "shrink")),
		Grow:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "grow")),
		ShrinkMore: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "shrink more")),
		GrowMore:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "grow more")),
	}
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Select, k.Toggle, k.Add, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.SwitchPane},
		{k.Select, k.Back, k.Toggle, k.Add, k.Copy},
		{k.Collapse, k.Shrink, k.Grow, k.ShrinkMore, k.GrowMore},
		{k.Refresh, k.Help, k.Quit},
	}
}

// KeyState tracks multi-key sequences (like 'gg').
type KeyState struct {
	WaitingG bool // Waiting for second 'g' in 'gg'
}

// HandleKey processes a key press and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, k Keymap) (string, bool) {
	s := msg.String()

	if ks.WaitingG {
		ks.WaitingG = false
		if s == "g" {
			return "top", true
		}
		// If not 'g', reset and process normally
	}

	if s == "g" && key.Matches(msg, k.Top) {
		ks.WaitingG = true
		return "", true
	}

	switch {
	case key.Matches(msg, k.Up):
		return "up", true
	case key.Matches(msg, k.Down):
		return "down", true
	case key.Matches(msg, k.Top):
		return "top", true
	case key.Matches(msg, k.Bottom):
		return "bottom", true
	case key.Matches(msg, k.Select):
		return "select", true
	case key.Matches(msg, k.Back):
		return "back", true
	case key.Matches(msg, k.SwitchPane):
		return "switch_pane", true
	case key.Matches(msg, k.Quit):
		return "quit", true
	case key.Matches(msg, k.Help):
		return "help", true
	case key.Matches(msg, k.Refresh):
		return "refresh", true
	case key.Matches(msg, k.Toggle):
		return "toggle", true
	case key.Matches(msg, k.Add):
		return "add", true
	case key.Matches(msg, k.Copy):
		return "copy", true
	case key.Matches(msg, k.Collapse):
		return "collapse", true
	case key.Matches(msg, k.Shrink):
		return "shrink", true
	case key.Matches(msg, k.Grow):
		return "grow", true
	case key.Matches(msg, k.ShrinkMore):
		return "shrink_more", true
	case key.Matches(msg, k.GrowMore):
		return "grow_more", true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
}
