package todolist

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/model"
)

// Service is the subset of the API client the controller needs.
type Service interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, in model.CreateInput) (model.Todo, error)
	Update(ctx context.Context, id model.ID, in model.UpdateInput) (model.Todo, error)
	Remove(ctx context.Context, id model.ID) error
	Complete(ctx context.Context, id model.ID) (*model.Todo, error)
}

type Controller struct {
	svc    Service
	logger *zap.Logger
}

func NewController(svc Service, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{svc: svc, logger: logger}
}

// Update reduces msg and returns the command performing the resulting call, if any.
func (c *Controller) Update(s State, msg tea.Msg) (State, tea.Cmd) {
	switch msg := msg.(type) {
	case Fetched:
		switch {
		case msg.Seq != s.Seq:
			c.logger.Debug("discarding stale fetch", zap.Uint64("seq", msg.Seq), zap.Uint64("latest", s.Seq))
		case msg.Err != nil:
			c.logger.Error(OpFetch.FailureMessage(), zap.Stringer("op", OpFetch), zap.Error(msg.Err))
		}
	case Mutated:
		if msg.Err != nil {
			c.logger.Error(msg.Op.FailureMessage(),
				zap.Stringer("op", msg.Op),
				zap.Stringer("id", msg.ID),
				zap.Error(msg.Err),
			)
		}
	}

	next, call := Reduce(s, msg)
	if call == nil {
		return next, nil
	}
	return next, c.Exec(*call)
}

// Exec returns a command that performs call and reports the outcome as a
// Fetched or Mutated message. Calls are never cancelled once issued.
func (c *Controller) Exec(call Call) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		switch call.Op {
		case OpFetch:
			todos, err := c.svc.List(ctx)
			return Fetched{Seq: call.Seq, Todos: todos, Err: err}
		case OpCreate:
			_, err := c.svc.Create(ctx, call.Create)
			return Mutated{Op: OpCreate, Err: err}
		case OpUpdate:
			_, err := c.svc.Update(ctx, call.ID, call.Update)
			return Mutated{Op: OpUpdate, ID: call.ID, Err: err}
		case OpDelete:
			err := c.svc.Remove(ctx, call.ID)
			return Mutated{Op: OpDelete, ID: call.ID, Err: err}
		case OpComplete:
			_, err := c.svc.Complete(ctx, call.ID)
			return Mutated{Op: OpComplete, ID: call.ID, Err: err}
		}
		return nil
	}
}
