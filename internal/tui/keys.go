package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Up, Down   key.Binding
	Add        key.Binding
	Complete   key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Filter     key.Binding
	PickFilter key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filter:     key.NewBinding(key.WithKeys("tab", "f"), key.WithHelp("tab", "next filter")),
		PickFilter: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "filter")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Complete, k.Edit, k.Delete, k.Filter, k.Reload, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Complete, k.Edit, k.Delete},
		{k.Filter, k.PickFilter, k.Reload, k.Quit},
	}
}

type formKeyMap struct {
	Next, Prev key.Binding
	Submit     key.Binding
	Back       key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit: key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "add todo")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Submit, k.Back}
}

func (k formKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type editKeyMap struct {
	Next, Prev   key.Binding
	StatusPrev   key.Binding
	StatusNext   key.Binding
	Save, Cancel key.Binding
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		StatusPrev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "status")),
		StatusNext: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "status")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s", "enter"), key.WithHelp("ctrl+s", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.StatusPrev, k.StatusNext, k.Save, k.Cancel}
}

func (k editKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
