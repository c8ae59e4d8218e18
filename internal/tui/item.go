package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
)

const dateLayout = "2006-01-02"

type editField int

const (
	editTitle editField = iota
	editDescription
	editStatus
	editFieldCount
)

// ItemView shows one todo and owns its edit drafts. Drafts are seeded from
// the todo each time editing starts.
type ItemView struct {
	Todo model.Todo

	editing bool
	field   editField
	title   textinput.Model
	desc    textarea.Model
	status  model.Status
	keys    editKeyMap
}

func NewItemView(t model.Todo) ItemView {
	return ItemView{Todo: t, keys: newEditKeyMap()}
}

// FilterValue implements list.Item.
func (v ItemView) FilterValue() string { return v.Todo.Title }

func (v ItemView) Editing() bool { return v.editing }

// Class is the status display class of the todo.
func (v ItemView) Class() string { return StatusClass(v.Todo.Status) }

// CanComplete reports whether the complete action is offered.
func (v ItemView) CanComplete() bool { return !v.Todo.IsCompleted() }

// Actions lists the action labels shown under a selected row.
func (v ItemView) Actions() []string {
	var out []string
	if v.CanComplete() {
		out = append(out, "[c] Complete")
	}
	return append(out, "[e] Edit", "[d] Delete")
}

func (v *ItemView) StartEdit() tea.Cmd {
	// No limits: an untouched draft must go back exactly as loaded.
	v.title = textinput.New()
	v.title.Prompt = ""
	v.title.CharLimit = 0
	v.title.SetValue(v.Todo.Title)

	v.desc = textarea.New()
	v.desc.Prompt = ""
	v.desc.ShowLineNumbers = false
	v.desc.CharLimit = 0
	v.desc.MaxHeight = 0
	v.desc.SetHeight(3)
	v.desc.SetValue(v.Todo.Description)

	v.status = v.Todo.Status
	if !v.status.IsValid() {
		v.status = model.StatusPending
	}
	v.editing = true
	return v.focusField(editTitle)
}

// Cancel leaves edit mode. Nothing is sent.
func (v *ItemView) Cancel() {
	v.editing = false
	v.title.Blur()
	v.desc.Blur()
}

// Save leaves edit mode and returns the update intent carrying the drafted
// title, description and status. Priority is never part of an edit.
func (v *ItemView) Save() todolist.Update {
	in := model.UpdateInput{
		Title:       model.StringPtr(v.title.Value()),
		Description: model.StringPtr(v.desc.Value()),
		Status:      model.StatusPtr(v.status),
	}
	v.Cancel()
	return todolist.Update{ID: v.Todo.ID, Input: in}
}

func (v *ItemView) focusField(f editField) tea.Cmd {
	v.field = f
	v.title.Blur()
	v.desc.Blur()
	switch f {
	case editTitle:
		return v.title.Focus()
	case editDescription:
		return v.desc.Focus()
	}
	return nil
}

func (v *ItemView) cycleStatus(step int) {
	n := len(model.Statuses)
	for i, s := range model.Statuses {
		if s == v.status {
			v.status = model.Statuses[(i+step+n)%n]
			return
		}
	}
	v.status = model.StatusPending
}

func (v ItemView) Update(msg tea.Msg) (ItemView, tea.Cmd) {
	if !v.editing {
		return v, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keys.Cancel):
			v.Cancel()
			return v, nil
		case key.Matches(msg, v.keys.Save):
			// Enter starts a new line in the description; ctrl+s always saves.
			if v.field == editDescription && msg.String() == "enter" {
				break
			}
			intent := v.Save()
			return v, func() tea.Msg { return intent }
		case key.Matches(msg, v.keys.Next):
			return v, v.focusField((v.field + 1) % editFieldCount)
		case key.Matches(msg, v.keys.Prev):
			return v, v.focusField((v.field + editFieldCount - 1) % editFieldCount)
		case v.field == editStatus && key.Matches(msg, v.keys.StatusNext):
			v.cycleStatus(1)
			return v, nil
		case v.field == editStatus && key.Matches(msg, v.keys.StatusPrev):
			v.cycleStatus(-1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.field {
	case editTitle:
		v.title, cmd = v.title.Update(msg)
	case editDescription:
		v.desc, cmd = v.desc.Update(msg)
	}
	return v, cmd
}

// EditView renders the edit panel.
func (v ItemView) EditView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit todo") + "\n")
	b.WriteString(labelStyle.Render("Title") + "\n" + v.title.View() + "\n")
	b.WriteString(labelStyle.Render("Description") + "\n" + v.desc.View() + "\n")
	b.WriteString(labelStyle.Render("Status") + "\n")

	parts := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		label := s.Label()
		switch {
		case s == v.status && v.field == editStatus:
			label = selectedStyle.Render(label)
		case s == v.status:
			label = classStyle(StatusClass(s)).Render(label)
		default:
			label = mutedStyle.Render(label)
		}
		parts = append(parts, label)
	}
	b.WriteString(strings.Join(parts, "  "))
	return panelString(b.String(), true)
}

// itemDelegate draws a todo on two lines: the summary row and, beneath it,
// the description followed by the actions when the row is selected.
type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 2 }
func (d itemDelegate) Spacing() int                        { return 1 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	v, ok := item.(ItemView)
	if !ok {
		return
	}
	t := v.Todo
	class := v.Class()
	selected := index == m.Index()

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render(">") + " "
	}
	box := classStyle(class).Render(classBox(class))
	badge := classStyle(class).Render("[" + string(t.Status) + "]")
	date := mutedStyle.Render(t.CreatedAt.Local().Format(dateLayout))

	width := m.Width()
	if width <= 0 {
		width = 80
	}
	room := width - ansi.StringWidth(prefix+box+badge+date) - 4
	if room < 8 {
		room = 8
	}
	title := ansi.Truncate(t.Title, room, "...")
	if t.IsCompleted() {
		title = doneStyle.Render(title)
	}
	fmt.Fprintf(w, "%s%s %s %s %s\n", prefix, box, title, badge, date)

	// The row has a fixed height, so the description is flattened to one line.
	desc := strings.Join(strings.Fields(t.Description), " ")
	second := mutedStyle.Render(ansi.Truncate(desc, width-4, "..."))
	if selected {
		acts := accentStyle.Render(strings.Join(v.Actions(), "  "))
		if desc != "" {
			second += "  "
		}
		second += acts
	}
	fmt.Fprint(w, "    "+second)
}
