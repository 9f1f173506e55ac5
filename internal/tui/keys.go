package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Stop       key.Binding
	Force      key.Binding
	Pause      key.Binding
	Reset      key.Binding
	NextPreset key.Binding
	PrevPreset key.Binding
	Clear      key.Binding
	Switch     key.Binding
	Help       key.Binding
	Suspend    key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Force:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "force end")),
		Pause:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause/resume")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		NextPreset: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next preset")),
		PrevPreset: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev preset")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear history")),
		Switch:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch timer")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Suspend:    key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Pause, k.Switch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop, k.Force, k.Pause, k.Reset},
		{k.NextPreset, k.PrevPreset, k.Switch},
		{k.Clear, k.Help, k.Suspend, k.Quit},
	}
}

// confirmKeyMap is shown while the clear-history prompt is open.
type confirmKeyMap struct {
	Yes key.Binding
	No  key.Binding
}

func newConfirmKeyMap() confirmKeyMap {
	return confirmKeyMap{
		Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
		No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	}
}

func (k confirmKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Yes, k.No} }

func (k confirmKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
