package model_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/tada/internal/model"
)

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		status model.Status
		want   bool
	}{
		{"pending", model.StatusPending, true},
		{"in progress", model.StatusInProgress, true},
		{"completed", model.StatusCompleted, true},
		{"empty", model.Status(""), false},
		{"dashed", model.Status("in-progress"), false},
		{"invalid", model.Status("done"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	if got, err := model.ParseStatus("in-progress"); err != nil || got != model.StatusInProgress {
		t.Errorf("ParseStatus(in-progress) = %q, %v", got, err)
	}
	if _, err := model.ParseStatus("done"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestTodo_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   model.ID
		wantDesc string
	}{
		{
			name:     "numeric id",
			body:     `{"id": 42, "title": "Buy milk", "description": "2%", "priority": 3, "status": "pending", "created_at": "2025-01-01T10:00:00.123456Z"}`,
			wantID:   "42",
			wantDesc: "2%",
		},
		{
			name:   "string id",
			body:   `{"id": "9b2f", "title": "Buy milk", "status": "pending", "created_at": "2025-01-01T10:00:00Z"}`,
			wantID: "9b2f",
		},
		{
			name:   "null description",
			body:   `{"id": 1, "title": "Buy milk", "description": null, "status": "pending", "created_at": "2025-01-01T10:00:00Z"}`,
			wantID: "1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var todo model.Todo
			if err := json.Unmarshal([]byte(tt.body), &todo); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if todo.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", todo.ID, tt.wantID)
			}
			if todo.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", todo.Description, tt.wantDesc)
			}
			if todo.Title != "Buy milk" {
				t.Errorf("Title = %q", todo.Title)
			}
			if todo.CreatedAt.Year() != 2025 {
				t.Errorf("CreatedAt = %v", todo.CreatedAt)
			}
		})
	}
}

func TestTodo_IsCompleted(t *testing.T) {
	if (model.Todo{Status: model.StatusPending}).IsCompleted() {
		t.Error("pending todo reported completed")
	}
	if !(model.Todo{Status: model.StatusCompleted}).IsCompleted() {
		t.Error("completed todo not reported completed")
	}
}

func TestFilter_Apply(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := []model.Todo{
		{ID: "1", Title: "a", Status: model.StatusPending, CreatedAt: now},
		{ID: "2", Title: "b", Status: model.StatusCompleted, CreatedAt: now},
		{ID: "3", Title: "c", Status: model.StatusInProgress, CreatedAt: now},
		{ID: "4", Title: "d", Status: model.StatusPending, CreatedAt: now},
	}
	tests := []struct {
		filter model.Filter
		want   []model.ID
	}{
		{model.FilterAll, []model.ID{"1", "2", "3", "4"}},
		{model.FilterPending, []model.ID{"1", "4"}},
		{model.FilterInProgress, []model.ID{"3"}},
		{model.FilterCompleted, []model.ID{"2"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := tt.filter.Apply(todos)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d todos, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
	if len(todos) != 4 || todos[1].ID != "2" {
		t.Error("Apply modified its input")
	}
}

func TestFilter_NextWraps(t *testing.T) {
	f := model.FilterAll
	seen := map[model.Filter]bool{}
	for range model.Filters {
		seen[f] = true
		f = f.Next()
	}
	if f != model.FilterAll {
		t.Errorf("after a full cycle got %q, want all", f)
	}
	if len(seen) != len(model.Filters) {
		t.Errorf("visited %d filters, want %d", len(seen), len(model.Filters))
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Filter
		wantErr bool
	}{
		{"", model.FilterAll, false},
		{"all", model.FilterAll, false},
		{"completed", model.FilterCompleted, false},
		{"in-progress", model.FilterInProgress, false},
		{"archived", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      model.CreateInput
		wantErr string
	}{
		{"valid", model.CreateInput{Title: "Buy milk", Status: model.StatusPending}, ""},
		{"max priority", model.CreateInput{Title: "x", Priority: 10, Status: model.StatusPending}, ""},
		{"blank title", model.CreateInput{Title: "   ", Status: model.StatusPending}, "title: required"},
		{"negative priority", model.CreateInput{Title: "x", Priority: -1, Status: model.StatusPending}, "priority: must be at least 0"},
		{"priority too high", model.CreateInput{Title: "x", Priority: 11, Status: model.StatusPending}, "priority: must be at most 10"},
		{"bad status", model.CreateInput{Title: "x", Status: "done"}, "status: must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !errors.Is(err, model.ErrInvalidInput) {
				t.Errorf("error %v does not wrap ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestUpdateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      model.UpdateInput
		wantErr bool
	}{
		{"empty", model.UpdateInput{}, false},
		{"status only", model.UpdateInput{Status: model.StatusPtr(model.StatusInProgress)}, false},
		{"zero priority", model.UpdateInput{Priority: model.IntPtr(0)}, false},
		{"blank title", model.UpdateInput{Title: model.StringPtr(" ")}, true},
		{"empty description allowed", model.UpdateInput{Description: model.StringPtr("")}, false},
		{"bad priority", model.UpdateInput{Priority: model.IntPtr(42)}, true},
		{"bad status", model.UpdateInput{Status: model.StatusPtr("archived")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateInput_MarshalOmitsUnset(t *testing.T) {
	b, err := json.Marshal(model.UpdateInput{Status: model.StatusPtr(model.StatusCompleted)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"status":"completed"}` {
		t.Errorf("got %s", b)
	}
}
