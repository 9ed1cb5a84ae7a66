package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Toggle      key.Binding
	Launch      key.Binding
	Settings    key.Binding
	Filter      key.Binding
	Custom      key.Binding
	ClearOutput key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Save        key.Binding
	Cancel      key.Binding
	Browse      key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Pick        key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	PrevTab:     key.NewBinding(key.WithKeys("shift+tab")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
	Down:        key.NewBinding(key.WithKeys("down", "j")),
	Left:        key.NewBinding(key.WithKeys("left", "h", "[")),
	Right:       key.NewBinding(key.WithKeys("right", "l", "]")),
	Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "switch path")),
	Launch:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Settings:    key.NewBinding(key.WithKeys("s", ","), key.WithHelp("s", "settings")),
	Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Custom:      key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "git args")),
	ClearOutput: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	PageUp:      key.NewBinding(key.WithKeys("pgup")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown")),
	Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	Browse:      key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "browse")),
	NextField:   key.NewBinding(key.WithKeys("tab", "down")),
	PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	Pick:        key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "use this directory")),
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
