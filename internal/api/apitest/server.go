// Package apitest provides an in-memory implementation of the todo REST
// resource for tests. It mirrors the reference backend: integer ids,
// trailing-slash routes, a complete action that answers with a bare
// confirmation, and a by_status action that rejects a missing status.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Operation names accepted by Fail.
const (
	OpList     = "list"
	OpGet      = "get"
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpComplete = "complete"
	OpByStatus = "by_status"
)

// NetworkFailure makes a failed operation drop the connection instead of answering.
const NetworkFailure = -1

// Todo is the server-side record. Ids are integers, as the reference backend emits them.
type Todo struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Request is one recorded call.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	todos    []Todo
	nextID   int
	requests []Request
	failures map[string]int

	// Paginate wraps list responses in a {"results": [...]} envelope.
	Paginate bool
	// EchoOnComplete makes the complete action return the updated todo.
	EchoOnComplete bool
}

// NewServer starts a fake seeded with todos; it is closed when the test ends.
func NewServer(t testing.TB, seed ...Todo) *Server {
	t.Helper()
	s := &Server{nextID: 1, failures: map[string]int{}}
	for _, td := range seed {
		s.insert(td)
	}
	s.srv = httptest.NewServer(s.routes())
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base, the equivalent of http://localhost:8000/api.
func (s *Server) URL() string { return s.srv.URL + "/api" }

// Close stops the server; later calls fail at the transport level.
func (s *Server) Close() { s.srv.Close() }

// Fail makes op answer with status until Recover is called.
func (s *Server) Fail(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = status
}

func (s *Server) Recover(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, op)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many recorded requests used method on path (path relative to the API base).
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == "/api"+path {
			n++
		}
	}
	return n
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Todo(nil), s.todos...)
}

func (s *Server) insert(td Todo) Todo {
	if td.ID == 0 {
		td.ID = s.nextID
	}
	if td.ID >= s.nextID {
		s.nextID = td.ID + 1
	}
	if td.Status == "" {
		td.Status = "pending"
	}
	if td.CreatedAt.IsZero() {
		td.CreatedAt = time.Now().UTC()
	}
	td.UpdatedAt = td.CreatedAt
	s.todos = append(s.todos, td)
	return td
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api/todos", func(r chi.Router) {
		r.With(s.failing(OpList)).Get("/", s.handleList)
		r.With(s.failing(OpCreate)).Post("/", s.handleCreate)
		r.With(s.failing(OpByStatus)).Get("/by_status/", s.handleByStatus)
		r.With(s.failing(OpGet)).Get("/{id}/", s.handleGet)
		r.With(s.failing(OpUpdate)).Patch("/{id}/", s.handleUpdate)
		r.With(s.failing(OpDelete)).Delete("/{id}/", s.handleDelete)
		r.With(s.failing(OpComplete)).Post("/{id}/complete/", s.handleComplete)
	})
	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     body,
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) failing(op string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.mu.Lock()
			status, failed := s.failures[op]
			s.mu.Unlock()
			if !failed {
				next.ServeHTTP(w, r)
				return
			}
			if status == NetworkFailure {
				if hj, ok := w.(http.Hijacker); ok {
					if conn, _, err := hj.Hijack(); err == nil {
						conn.Close()
						return
					}
				}
				status = http.StatusBadGateway
			}
			writeJSON(w, status, map[string]string{"detail": "injected failure"})
		})
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	todos := s.Todos()
	if todos == nil {
		todos = []Todo{}
	}
	if s.Paginate {
		writeJSON(w, http.StatusOK, map[string]any{
			"count":    len(todos),
			"next":     nil,
			"previous": nil,
			"results":  todos,
		})
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Status parameter required"})
		return
	}
	out := []Todo{}
	for _, td := range s.Todos() {
		if td.Status == status {
			out = append(out, td)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, s.todos[i])
}

var validStatus = map[string]bool{"pending": true, "in_progress": true, "completed": true}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    int    `json:"priority"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"title": {"This field may not be blank."}})
		return
	}
	if in.Status != "" && !validStatus[in.Status] {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"status": {"Not a valid choice."}})
		return
	}
	s.mu.Lock()
	td := s.insert(Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, td)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		notFound(w)
		return
	}
	td := s.todos[i]
	for field, raw := range patch {
		var err error
		switch field {
		case "title":
			err = json.Unmarshal(raw, &td.Title)
		case "description":
			err = json.Unmarshal(raw, &td.Description)
		case "priority":
			err = json.Unmarshal(raw, &td.Priority)
		case "status":
			err = json.Unmarshal(raw, &td.Status)
			if err == nil && !validStatus[td.Status] {
				writeJSON(w, http.StatusBadRequest, map[string][]string{"status": {"Not a valid choice."}})
				return
			}
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{field: {err.Error()}})
			return
		}
	}
	td.UpdatedAt = time.Now().UTC()
	s.todos[i] = td
	writeJSON(w, http.StatusOK, td)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		notFound(w)
		return
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(chi.URLParam(r, "id"))
	if i < 0 {
		notFound(w)
		return
	}
	s.todos[i].Status = "completed"
	s.todos[i].UpdatedAt = time.Now().UTC()
	if s.EchoOnComplete {
		writeJSON(w, http.StatusOK, s.todos[i])
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "todo completed"})
}

// indexOf must be called with s.mu held.
func (s *Server) indexOf(rawID string) int {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return -1
	}
	for i, td := range s.todos {
		if td.ID == id {
			return i
		}
	}
	return -1
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
