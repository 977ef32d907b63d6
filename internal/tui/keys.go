package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the canvas viewer.
type KeyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reset   key.Binding

	// Append adds the next agent template to a workflow view.
	Append   key.Binding
	Deselect key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset"),
	),
	Append: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add agent"),
	),
	Deselect: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "deselect"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// hints returns the bindings shown in the status bar.
func (k KeyMap) hints(workflow bool) []key.Binding {
	out := []key.Binding{k.ZoomIn, k.ZoomOut, k.Reset}
	if workflow {
		out = append(out, k.Append)
	}
	return append(out, k.Quit)
}
