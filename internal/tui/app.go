// Package tui is the interactive terminal client. It renders the state owned
// by todolist and turns key presses into todolist intents.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
)

type focusArea int

const (
	focusList focusArea = iota
	focusForm
	focusEdit
)

// Model is the top-level Bubble Tea model.
type Model struct {
	ctrl  *todolist.Controller
	state todolist.State

	list    list.Model
	form    Form
	edit    *ItemView
	focus   focusArea
	spinner spinner.Model
	help    help.Model
	keys    listKeyMap

	width, height int
}

func New(ctrl *todolist.Controller) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.PaginationStyle = helpStyle
	// Letter keys belong to the todo actions; keep paging on arrows and pgup/pgdown.
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"))
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	state := todolist.NewState()
	state.Loading = true

	return Model{
		ctrl:    ctrl,
		state:   state,
		list:    l,
		form:    NewForm(),
		spinner: sp,
		help:    help.New(),
		keys:    newListKeyMap(),
	}
}

// State returns the todo state currently rendered.
func (m Model) State() todolist.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return todolist.Load{} },
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case todolist.Load, todolist.Create, todolist.Update, todolist.Delete,
		todolist.Complete, todolist.SetFilter, todolist.Fetched, todolist.Mutated:
		return m.dispatch(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.focus {
		case focusForm:
			return m.updateForm(msg)
		case focusEdit:
			return m.updateEdit(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blinks and other component messages go to whatever has focus.
	var cmd tea.Cmd
	switch m.focus {
	case focusForm:
		m.form, cmd = m.form.Update(msg)
	case focusEdit:
		if m.edit != nil {
			var v ItemView
			v, cmd = m.edit.Update(msg)
			m.edit = &v
		}
	}
	return m, cmd
}

// dispatch hands msg to the controller and refreshes the view of its state.
func (m Model) dispatch(msg tea.Msg) (tea.Model, tea.Cmd) {
	prevSeq := m.state.Seq

	var cmd tea.Cmd
	m.state, cmd = m.ctrl.Update(m.state, msg)
	cmds := []tea.Cmd{cmd}

	switch msg := msg.(type) {
	case todolist.Fetched:
		if msg.Seq == prevSeq {
			m.endEdit()
			m.syncItems()
		}
	case todolist.SetFilter:
		m.syncItems()
	}
	if m.state.Seq != prevSeq {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) syncItems() {
	visible := m.state.Visible()
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, NewItemView(t))
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
}

func (m *Model) endEdit() {
	if m.edit != nil {
		m.edit.Cancel()
		m.edit = nil
	}
	if m.focus == focusEdit {
		m.focus = focusList
	}
}

// selected returns the highlighted row, backed by the todo as currently loaded.
func (m Model) selected() (ItemView, bool) {
	v, ok := m.list.SelectedItem().(ItemView)
	if !ok {
		return ItemView{}, false
	}
	t, ok := m.state.Find(v.Todo.ID)
	if !ok {
		return ItemView{}, false
	}
	return NewItemView(t), true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.state.Loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Add):
		m.focus = focusForm
		return m, m.form.Focus()
	case key.Matches(msg, m.keys.Filter):
		return m.dispatch(todolist.SetFilter{Filter: m.state.Filter.Next()})
	case key.Matches(msg, m.keys.PickFilter):
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(model.Filters) {
			return m.dispatch(todolist.SetFilter{Filter: model.Filters[i]})
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(todolist.Load{})
	case key.Matches(msg, m.keys.Complete):
		if v, ok := m.selected(); ok && v.CanComplete() {
			return m.dispatch(todolist.Complete{ID: v.Todo.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if v, ok := m.selected(); ok {
			return m.dispatch(todolist.Delete{ID: v.Todo.ID})
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		v, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := v.StartEdit()
		m.edit = &v
		m.focus = focusEdit
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	if !m.form.Focused() {
		m.focus = focusList
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.edit == nil {
		m.focus = focusList
		return m, nil
	}
	v, cmd := m.edit.Update(msg)
	if !v.Editing() {
		m.edit = nil
		m.focus = focusList
		return m, cmd
	}
	m.edit = &v
	return m, cmd
}

func (m *Model) layout() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	m.form.SetWidth(w - 4)
	m.help.Width = m.width

	// header, filter bar, banner, form panel and help take the rest
	h := m.height - 17
	if h < 3 {
		h = 3
	}
	m.list.SetSize(w, h)
}

func (m Model) header() string {
	done := 0
	for _, t := range m.state.Todos {
		if t.IsCompleted() {
			done++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(m.state.Todos)-done,
		accentStyle.Render("Total"), len(m.state.Todos),
	)
}

func (m Model) filterBar() string {
	tabs := make([]string, 0, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == m.state.Filter {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header() + "\n")
	b.WriteString(m.filterBar() + "\n")
	if m.state.Err != "" && !m.state.Loading {
		b.WriteString(bannerStyle.Render(m.state.Err) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.state.Loading:
		b.WriteString(m.spinner.View() + " Loading...\n")
	case len(m.list.Items()) == 0:
		b.WriteString(mutedStyle.Render("  No todos found") + "\n")
	default:
		b.WriteString(m.list.View() + "\n")
	}

	if m.edit != nil {
		b.WriteString(m.edit.EditView() + "\n")
	}
	b.WriteString(m.form.View() + "\n")

	var keys help.KeyMap = m.keys
	switch m.focus {
	case focusForm:
		keys = m.form.keys
	case focusEdit:
		keys = newEditKeyMap()
	default:
		m.keys.Complete.SetEnabled(false)
		if v, ok := m.selected(); ok && v.CanComplete() {
			m.keys.Complete.SetEnabled(true)
		}
		keys = m.keys
	}
	b.WriteString(helpStyle.Render(m.help.View(keys)))
	return b.String()
}
