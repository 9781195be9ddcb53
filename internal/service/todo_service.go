package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
)

// TodoStore opens one transaction per call and hands fn a gateway bound to it.
type TodoStore interface {
	WithinTx(ctx context.Context, fn func(domain.TodoGateway) error) error
}

// TodoService holds the todo business rules. Every public method runs in
// exactly one store transaction.
type TodoService struct {
	store TodoStore
	log   *slog.Logger
}

// NewTodoService creates a todo service. A nil log falls back to the process
// logger.
func NewTodoService(store TodoStore, log *slog.Logger) *TodoService {
	if log == nil {
		log = logger.Get()
	}
	return &TodoService{store: store, log: log}
}

func (s *TodoService) GetAllTodos(ctx context.Context) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	err := s.store.WithinTx(ctx, func(g domain.TodoGateway) error {
		var err error
		todos, err = g.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get all todos: %w", err)
	}
	return todos, nil
}

// GetTodosByCompleted returns todos with the given completed flag, newest first.
func (s *TodoService) GetTodosByCompleted(ctx context.Context, completed bool) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	err := s.store.WithinTx(ctx, func(g domain.TodoGateway) error {
		var err error
		todos, err = g.FindByCompletedOrderByCreatedAtDesc(ctx, completed)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get todos by completed: %w", err)
	}
	return todos, nil
}

// CreateTodo persists a new todo. Any id or creation time supplied by the
// caller is discarded so a create can never overwrite an existing row.
func (s *TodoService) CreateTodo(ctx context.Context, input domain.Todo) (*domain.Todo, error) {
	todo := input
	todo.ID = 0
	todo.CreatedAt = time.Time{}

	err := s.store.WithinTx(ctx, func(g domain.TodoGateway) error {
		return g.Save(ctx, &todo)
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return &todo, nil
}

// UpdateTodo copies title and completed from input onto the stored todo.
// Description is deliberately kept at its stored value whatever input says.
func (s *TodoService) UpdateTodo(ctx context.Context, id int64, input domain.Todo) (*domain.Todo, error) {
	var updated *domain.Todo
	err := s.store.WithinTx(ctx, func(g domain.TodoGateway) error {
		existing, err := g.FindByID(ctx, id)
		if err != nil {
			return err
		}

		existing.Title = input.Title
		existing.Completed = input.Completed

		if err := g.Save(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}
	return updated, nil
}

// DeleteTodo removes a todo. Failures, including a missing row, are logged
// once and reported as a failed outcome instead of an error.
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) domain.DeleteOutcome {
	err := s.store.WithinTx(ctx, func(g domain.TodoGateway) error {
		return g.DeleteByID(ctx, id)
	})
	if err != nil {
		logger.FromContext(ctx, s.log).Error("exception occurred while deleting the item",
			"todo_id", id,
			"error", err,
		)
		return domain.DeleteFailed()
	}
	return domain.DeleteSucceeded()
}
