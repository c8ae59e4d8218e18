// Package todolist owns the in-memory todo collection shown by the client.
//
// All state lives in State. Reduce is the pure transition function: given a
// state and an intent or result message it returns the next state and, at
// most, one network call to make. Controller executes those calls through
// the API client and feeds the results back as messages.
//
// Reconciliation is a full re-fetch after every successful mutation; there
// is no optimistic patching. Each fetch carries a sequence number and only
// the response to the newest fetch is applied.
package todolist

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

// Op names a network operation.
type Op int

const (
	OpFetch Op = iota
	OpCreate
	OpUpdate
	OpDelete
	OpComplete
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpComplete:
		return "complete"
	}
	return "unknown"
}

// FailureMessage is the banner text shown when o fails, whatever the cause.
func (o Op) FailureMessage() string {
	if o == OpFetch {
		return "Failed to fetch todos"
	}
	return "Failed to " + o.String() + " todo"
}

type State struct {
	Todos   []model.Todo
	Loading bool
	Err     string
	Filter  model.Filter
	// Seq identifies the newest fetch issued; older responses are dropped.
	Seq uint64
}

func NewState() State {
	return State{Todos: []model.Todo{}, Filter: model.FilterAll}
}

// Visible returns the todos passing the current filter, in server order.
func (s State) Visible() []model.Todo {
	return s.Filter.Apply(s.Todos)
}

// Find returns the loaded todo with id.
func (s State) Find(id model.ID) (model.Todo, bool) {
	for _, t := range s.Todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// Intents.
type (
	Load      struct{}
	Create    struct{ Input model.CreateInput }
	Delete    struct{ ID model.ID }
	Complete  struct{ ID model.ID }
	SetFilter struct{ Filter model.Filter }
)

type Update struct {
	ID    model.ID
	Input model.UpdateInput
}

// Results.
type (
	Fetched struct {
		Seq   uint64
		Todos []model.Todo
		Err   error
	}
	Mutated struct {
		Op  Op
		ID  model.ID
		Err error
	}
)

// Call is a network request Reduce wants issued.
type Call struct {
	Op     Op
	Seq    uint64
	ID     model.ID
	Create model.CreateInput
	Update model.UpdateInput
}

// Reduce applies msg to s. It never performs I/O.
func Reduce(s State, msg tea.Msg) (State, *Call) {
	switch msg := msg.(type) {
	case Load:
		return beginFetch(s)

	case Create:
		return s, &Call{Op: OpCreate, Create: msg.Input}
	case Update:
		return s, &Call{Op: OpUpdate, ID: msg.ID, Update: msg.Input}
	case Delete:
		return s, &Call{Op: OpDelete, ID: msg.ID}
	case Complete:
		return s, &Call{Op: OpComplete, ID: msg.ID}

	case SetFilter:
		if msg.Filter.IsValid() {
			s.Filter = msg.Filter
		}
		return s, nil

	case Mutated:
		if msg.Err != nil {
			s.Err = msg.Op.FailureMessage()
			return s, nil
		}
		s.Err = ""
		return beginFetch(s)

	case Fetched:
		if msg.Seq != s.Seq {
			return s, nil
		}
		s.Loading = false
		if msg.Err != nil {
			s.Err = OpFetch.FailureMessage()
			return s, nil
		}
		s.Todos = msg.Todos
		if s.Todos == nil {
			s.Todos = []model.Todo{}
		}
		s.Err = ""
		return s, nil
	}
	return s, nil
}

func beginFetch(s State) (State, *Call) {
	s.Seq++
	s.Loading = true
	return s, &Call{Op: OpFetch, Seq: s.Seq}
}
