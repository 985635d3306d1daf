package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	NewCol key.Binding
	AddTsk key.Binding
	Rename key.Binding
	Edit   key.Binding
	DelTsk key.Binding
	DelCol key.Binding
	PickUp key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NewCol: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new column")),
		AddTsk: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Rename: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename column")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		DelTsk: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		DelCol: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete column")),
		PickUp: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pick up")),
		Drop:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "drop outside")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.NewCol, k.AddTsk, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.NewCol, k.Rename, k.DelCol},
		{k.AddTsk, k.Edit, k.DelTsk},
		{k.PickUp, k.Drop, k.Cancel},
		{k.Help, k.Quit},
	}
}

// dragKeyMap is shown while a gesture is active.
type dragKeyMap struct{ k keyMap }

func (d dragKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{d.k.Left, d.k.Right, d.k.Up, d.k.Down, d.k.Drop, d.k.Cancel}
}

func (d dragKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{d.ShortHelp()} }
