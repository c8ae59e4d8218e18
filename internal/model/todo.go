package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Status is the lifecycle state of a todo. Exactly one holds at any time.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Label is the human-readable name used by pickers and headers.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// ParseStatus accepts the wire value ("in_progress") or a dashed variant ("in-progress").
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if s == "in-progress" {
		st = StatusInProgress
	}
	if !st.IsValid() {
		return "", fmt.Errorf("unknown status %q: must be one of pending, in_progress, completed", s)
	}
	return st, nil
}

// ID is the server-assigned identifier. Servers may send it as a number or a
// string; it is kept verbatim and only ever used to build URL paths.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Todo is the single entity managed by the service.
type Todo struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    int        `json:"priority"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (t Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// UnmarshalJSON tolerates a null description, which some serializers emit
// for blank optional text.
func (t *Todo) UnmarshalJSON(b []byte) error {
	type alias Todo
	aux := struct {
		Description *string `json:"description"`
		*alias
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.Description = ""
	if aux.Description != nil {
		t.Description = *aux.Description
	}
	return nil
}
