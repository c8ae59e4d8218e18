package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	todosPath = "/todos/"

	headerRequestID = "X-Request-ID"
	maxErrorBody    = 512
)

var queryEncoder = schema.NewEncoder()

// Client talks to the todo REST resource. It holds no state besides its
// configuration: no retries, no caching, no timeouts beyond what the
// caller's context and http.Client impose.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a client rooted at baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// List returns every todo in server order. Both a bare array and a
// paginated {"results": [...]} envelope are accepted; only the first page is read.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	body, err := c.do(ctx, http.MethodGet, todosPath, nil, nil)
	if err != nil {
		return nil, err
	}
	todos, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", todosPath, err)
	}
	return todos, nil
}

func (c *Client) Get(ctx context.Context, id model.ID) (model.Todo, error) {
	path := todoPath(id)
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return model.Todo{}, err
	}
	return decodeTodo(http.MethodGet, path, body)
}

func (c *Client) Create(ctx context.Context, in model.CreateInput) (model.Todo, error) {
	body, err := c.do(ctx, http.MethodPost, todosPath, nil, in)
	if err != nil {
		return model.Todo{}, err
	}
	return decodeTodo(http.MethodPost, todosPath, body)
}

// Update sends a PATCH carrying only the fields set in in.
func (c *Client) Update(ctx context.Context, id model.ID, in model.UpdateInput) (model.Todo, error) {
	path := todoPath(id)
	body, err := c.do(ctx, http.MethodPatch, path, nil, in)
	if err != nil {
		return model.Todo{}, err
	}
	return decodeTodo(http.MethodPatch, path, body)
}

// Remove deletes the todo. Whatever confirmation the server sends is discarded.
func (c *Client) Remove(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
	return err
}

// Complete asks the server to move the todo to completed. The updated todo is
// returned when the server echoes it; servers that answer with a bare
// confirmation object yield a nil todo and no error.
func (c *Client) Complete(ctx context.Context, id model.ID) (*model.Todo, error) {
	path := todoPath(id) + "complete/"
	body, err := c.do(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return nil, err
	}
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &probe) != nil || probe.ID == nil {
		return nil, nil
	}
	todo, err := decodeTodo(http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

type statusQuery struct {
	Status model.Status `schema:"status"`
}

// ListByStatus asks the server to filter by status.
func (c *Client) ListByStatus(ctx context.Context, status model.Status) ([]model.Todo, error) {
	q := url.Values{}
	if err := queryEncoder.Encode(statusQuery{Status: status}, q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	path := todosPath + "by_status/"
	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	todos, err := decodeList(body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return todos, nil
}

func todoPath(id model.ID) string {
	return todosPath + url.PathEscape(id.String()) + "/"
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) ([]byte, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s %s: marshal: %w", method, path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)

	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	log.Debug("request",
		zap.Int("status", resp.StatusCode),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(method, path, resp.StatusCode, body)
	}
	return body, nil
}

func decodeTodo(method, path string, body []byte) (model.Todo, error) {
	var todo model.Todo
	if err := json.Unmarshal(body, &todo); err != nil {
		return model.Todo{}, fmt.Errorf("%s %s: decode todo: %w", method, path, err)
	}
	return todo, nil
}

func decodeList(body []byte) ([]model.Todo, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var todos []model.Todo
		if err := json.Unmarshal(body, &todos); err != nil {
			return nil, fmt.Errorf("decode todos: %w", err)
		}
		return nonNil(todos), nil
	}
	var page struct {
		Results *[]model.Todo `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	if page.Results == nil {
		return nil, fmt.Errorf("decode todos: expected an array or a results envelope")
	}
	return nonNil(*page.Results), nil
}

func nonNil(todos []model.Todo) []model.Todo {
	if todos == nil {
		return []model.Todo{}
	}
	return todos
}
