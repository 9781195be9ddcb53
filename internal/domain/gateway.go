package domain

import "context"

// TodoGateway is the persistence boundary for todos. Implementations own no
// business rules.
type TodoGateway interface {
	FindAll(ctx context.Context) ([]*Todo, error)
	FindByCompletedOrderByCreatedAtDesc(ctx context.Context, completed bool) ([]*Todo, error)
	// FindByID returns ErrTodoNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*Todo, error)
	// Save inserts when ID is zero and otherwise writes every mutable column
	// for that ID, inserting the row if it does not exist. Store-generated
	// fields are written back into t.
	Save(ctx context.Context, t *Todo) error
	// DeleteByID returns ErrTodoNotFound when no row matches.
	DeleteByID(ctx context.Context, id int64) error
}
