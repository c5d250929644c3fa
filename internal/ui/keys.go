package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings of the dashboard
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Collapse    key.Binding
	Expand      key.Binding
	SwitchPane  key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	EditStart   key.Binding
	EditEnd     key.Binding
	Graph       key.Binding
	Open        key.Binding
	Retry       key.Binding
	Reload      key.Binding
	Summary     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:         key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Collapse:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Expand:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		DeselectAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "deselect all")),
		EditStart:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start date")),
		EditEnd:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end date")),
		Graph:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "graph")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Retry:       key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry kinds")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload hosts")),
		Summary:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "summary")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Toggle, k.EditStart, k.EditEnd, k.Graph, k.Open, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Collapse, k.Expand},
		{k.SwitchPane, k.Toggle, k.SelectAll, k.DeselectAll},
		{k.EditStart, k.EditEnd, k.Graph, k.Open},
		{k.Retry, k.Reload, k.Summary, k.Help, k.Quit},
	}
}
