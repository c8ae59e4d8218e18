package model

import "fmt"

// Filter is a client-side view over already-loaded todos.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterPending    Filter = Filter(StatusPending)
	FilterInProgress Filter = Filter(StatusInProgress)
	FilterCompleted  Filter = Filter(StatusCompleted)
)

// Filters lists the filters in the order the filter bar shows them.
var Filters = []Filter{FilterAll, FilterPending, FilterInProgress, FilterCompleted}

func (f Filter) IsValid() bool {
	return f == FilterAll || Status(f).IsValid()
}

func (f Filter) Label() string {
	if f == FilterAll || f == "" {
		return "All"
	}
	return Status(f).Label()
}

// Matches reports whether t passes the filter. The zero Filter behaves like FilterAll.
func (f Filter) Matches(t Todo) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return t.Status == Status(f)
}

// Next returns the filter after f in bar order, wrapping around.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Apply returns the todos matching f, preserving order. The input is not modified.
func (f Filter) Apply(todos []Todo) []Todo {
	out := make([]Todo, 0, len(todos))
	for _, t := range todos {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	if f := Filter(s); f.IsValid() {
		return f, nil
	}
	st, err := ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("unknown filter %q: must be all, pending, in_progress or completed", s)
	}
	return Filter(st), nil
}
