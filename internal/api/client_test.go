package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idilsaglam/tada/internal/api"
	"github.com/idilsaglam/tada/internal/api/apitest"
	"github.com/idilsaglam/tada/internal/model"
)

func newClient(t *testing.T, srv *apitest.Server) *api.Client {
	t.Helper()
	c, err := api.New(srv.URL())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func seed() []apitest.Todo {
	return []apitest.Todo{
		{ID: 1, Title: "Buy milk", Status: "pending"},
		{ID: 2, Title: "Write report", Description: "Q3", Priority: 5, Status: "in_progress"},
		{ID: 3, Title: "Call mom", Status: "completed"},
	}
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "/api", "localhost"} {
		if _, err := api.New(raw); err == nil {
			t.Errorf("New(%q): expected error", raw)
		}
	}
}

func TestClient_List(t *testing.T) {
	tests := []struct {
		name     string
		paginate bool
	}{
		{"bare array", false},
		{"results envelope", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, seed()...)
			srv.Paginate = tt.paginate
			c := newClient(t, srv)

			todos, err := c.List(context.Background())
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(todos) != 3 {
				t.Fatalf("got %d todos, want 3", len(todos))
			}
			if todos[1].ID != "2" || todos[1].Status != model.StatusInProgress || todos[1].Priority != 5 {
				t.Errorf("unexpected todo: %+v", todos[1])
			}
			if srv.Count(http.MethodGet, "/todos/") != 1 {
				t.Errorf("expected one GET /todos/, got %+v", srv.Requests())
			}
		})
	}
}

func TestClient_ListEmpty(t *testing.T) {
	srv := apitest.NewServer(t)
	todos, err := newClient(t, srv).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", todos)
	}
}

func TestClient_ListRejectsUnknownShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer ts.Close()

	c, err := api.New(ts.URL + "/api")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.List(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestClient_Get(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)

	todo, err := c.Get(context.Background(), "2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if todo.Title != "Write report" || todo.Description != "Q3" {
		t.Errorf("unexpected todo: %+v", todo)
	}
	if srv.Count(http.MethodGet, "/todos/2/") != 1 {
		t.Errorf("expected GET /todos/2/, got %+v", srv.Requests())
	}

	_, err = c.Get(context.Background(), "99")
	if !api.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestClient_CreateSendsJSON(t *testing.T) {
	srv := apitest.NewServer(t)
	c := newClient(t, srv)

	in := model.CreateInput{Title: "Buy milk", Description: "2%", Priority: 3, Status: model.StatusPending}
	todo, err := c.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.ID == "" || todo.Title != "Buy milk" || todo.Status != model.StatusPending {
		t.Errorf("unexpected todo: %+v", todo)
	}
	if todo.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != http.MethodPost || req.Path != "/api/todos/" {
		t.Errorf("got %s %s", req.Method, req.Path)
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if req.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	for _, key := range []string{"title", "description", "priority", "status"} {
		if _, ok := body[key]; !ok {
			t.Errorf("body missing %q: %s", key, req.Body)
		}
	}
}

func TestClient_UpdateIsPartial(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)

	todo, err := c.Update(context.Background(), "2", model.UpdateInput{Status: model.StatusPtr(model.StatusCompleted)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if todo.Status != model.StatusCompleted {
		t.Errorf("status = %q", todo.Status)
	}
	if todo.Title != "Write report" || todo.Description != "Q3" || todo.Priority != 5 {
		t.Errorf("unspecified fields changed: %+v", todo)
	}

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	if last.Method != http.MethodPatch || last.Path != "/api/todos/2/" {
		t.Errorf("got %s %s", last.Method, last.Path)
	}
	if string(last.Body) != `{"status":"completed"}` {
		t.Errorf("body = %s", last.Body)
	}
}

func TestClient_Remove(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)

	if err := c.Remove(context.Background(), "1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	for _, td := range srv.Todos() {
		if td.ID == 1 {
			t.Error("todo 1 still present")
		}
	}
	if err := c.Remove(context.Background(), "1"); !api.IsNotFound(err) {
		t.Errorf("second Remove: expected not found, got %v", err)
	}
}

func TestClient_Complete(t *testing.T) {
	tests := []struct {
		name     string
		echo     bool
		wantTodo bool
	}{
		{"confirmation body", false, false},
		{"echoed todo", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, seed()...)
			srv.EchoOnComplete = tt.echo
			c := newClient(t, srv)

			todo, err := c.Complete(context.Background(), "1")
			if err != nil {
				t.Fatalf("Complete: %v", err)
			}
			if (todo != nil) != tt.wantTodo {
				t.Fatalf("todo = %+v, wantTodo %v", todo, tt.wantTodo)
			}
			if todo != nil && todo.Status != model.StatusCompleted {
				t.Errorf("status = %q", todo.Status)
			}
			if srv.Count(http.MethodPost, "/todos/1/complete/") != 1 {
				t.Errorf("expected POST /todos/1/complete/, got %+v", srv.Requests())
			}
		})
	}
}

func TestClient_CompleteTwice(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)
	for i := 0; i < 2; i++ {
		if _, err := c.Complete(context.Background(), "1"); err != nil {
			t.Fatalf("Complete #%d: %v", i+1, err)
		}
		todo, err := c.Get(context.Background(), "1")
		if err != nil {
			t.Fatal(err)
		}
		if todo.Status != model.StatusCompleted {
			t.Errorf("after Complete #%d status = %q", i+1, todo.Status)
		}
	}
}

func TestClient_ListByStatus(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)

	todos, err := c.ListByStatus(context.Background(), model.StatusInProgress)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != "2" {
		t.Errorf("unexpected todos: %+v", todos)
	}
	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	if last.Path != "/api/todos/by_status/" || last.RawQuery != "status=in_progress" {
		t.Errorf("got %s?%s", last.Path, last.RawQuery)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	srv.Fail(apitest.OpCreate, http.StatusInternalServerError)
	c := newClient(t, srv)

	_, err := c.Create(context.Background(), model.CreateInput{Title: "x", Status: model.StatusPending})
	var se *api.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T %v", err, err)
	}
	if se.StatusCode != http.StatusInternalServerError || se.Method != http.MethodPost || se.Path != "/todos/" {
		t.Errorf("unexpected error: %+v", se)
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	c := newClient(t, srv)
	srv.Close()

	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var se *api.StatusError
	if errors.As(err, &se) {
		t.Errorf("transport failure reported as status error: %v", err)
	}
}

func TestClient_DroppedConnection(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	srv.Fail(apitest.OpList, apitest.NetworkFailure)
	if _, err := newClient(t, srv).List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := apitest.NewServer(t, seed()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClient(t, srv).List(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
