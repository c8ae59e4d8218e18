package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/todolist"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldPriority
	fieldCount
)

var errBlankTitle = errors.New("Title cannot be empty")

// Form collects a new todo. Drafts survive a rejected submit and are cleared
// after an accepted one.
type Form struct {
	title       textinput.Model
	description textarea.Model
	priority    textinput.Model

	field   formField
	focused bool
	err     string
	keys    formKeyMap
}

func NewForm() Form {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Prompt = ""
	desc.Placeholder = "Details (optional)"
	desc.ShowLineNumbers = false
	desc.CharLimit = 1000
	desc.SetHeight(2)

	prio := textinput.New()
	prio.Prompt = ""
	prio.Placeholder = "0"
	prio.CharLimit = 3

	return Form{
		title:       title,
		description: desc,
		priority:    prio,
		keys:        newFormKeyMap(),
	}
}

func (f Form) Focused() bool { return f.focused }

// Focus puts the cursor in the title field.
func (f *Form) Focus() tea.Cmd {
	f.focused = true
	return f.focusField(fieldTitle)
}

func (f *Form) Blur() {
	f.focused = false
	f.title.Blur()
	f.description.Blur()
	f.priority.Blur()
}

func (f *Form) SetWidth(w int) {
	f.title.Width = w
	f.priority.Width = w
	f.description.SetWidth(w)
}

func (f *Form) focusField(field formField) tea.Cmd {
	f.field = field
	f.title.Blur()
	f.description.Blur()
	f.priority.Blur()
	switch field {
	case fieldDescription:
		return f.description.Focus()
	case fieldPriority:
		return f.priority.Focus()
	default:
		return f.title.Focus()
	}
}

// Submit turns the drafts into a create intent. It reports false, leaving
// every draft in place, when the title is blank or the priority is invalid.
func (f *Form) Submit() (todolist.Create, bool) {
	in, err := f.input()
	if err != nil {
		f.err = err.Error()
		return todolist.Create{}, false
	}
	f.err = ""
	f.title.Reset()
	f.description.Reset()
	f.priority.Reset()
	return todolist.Create{Input: in}, true
}

func (f Form) input() (model.CreateInput, error) {
	title := f.title.Value()
	if strings.TrimSpace(title) == "" {
		return model.CreateInput{}, errBlankTitle
	}

	priority := 0
	if raw := strings.TrimSpace(f.priority.Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return model.CreateInput{}, fmt.Errorf("Priority must be a number from %d to %d", model.MinPriority, model.MaxPriority)
		}
		priority = n
	}

	in := model.CreateInput{
		Title:       title,
		Description: f.description.Value(),
		Priority:    priority,
		Status:      model.StatusPending,
	}
	if err := in.Validate(); err != nil {
		return model.CreateInput{}, err
	}
	return in, nil
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.Back):
			f.Blur()
			return f, nil
		case key.Matches(msg, f.keys.Next):
			return f, f.focusField((f.field + 1) % fieldCount)
		case key.Matches(msg, f.keys.Prev):
			return f, f.focusField((f.field + fieldCount - 1) % fieldCount)
		case key.Matches(msg, f.keys.Submit):
			// Enter starts a new line in the description; ctrl+s always submits.
			if f.field == fieldDescription && msg.String() == "enter" {
				break
			}
			intent, ok := f.Submit()
			if !ok {
				return f, nil
			}
			return f, func() tea.Msg { return intent }
		}
	}

	var cmd tea.Cmd
	switch f.field {
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldPriority:
		f.priority, cmd = f.priority.Update(msg)
	default:
		f.title, cmd = f.title.Update(msg)
	}
	return f, cmd
}

func (f Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New todo"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Title") + "\n" + f.title.View() + "\n")
	b.WriteString(labelStyle.Render("Description") + "\n" + f.description.View() + "\n")
	b.WriteString(labelStyle.Render("Priority") + "\n" + f.priority.View())
	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err))
	}
	return panelString(b.String(), f.focused)
}
