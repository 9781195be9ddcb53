package repository

import (
	"context"
	"errors"
	"fmt"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, title, description, completed, created_at`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TodoRepository stores todos in Postgres.
type TodoRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool, q: pool}
}

// WithinTx runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *TodoRepository) WithinTx(ctx context.Context, fn func(domain.TodoGateway) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&TodoRepository{pool: r.pool, q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := r.q.Query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

func (r *TodoRepository) FindByCompletedOrderByCreatedAtDesc(ctx context.Context, completed bool) ([]*domain.Todo, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos
		 WHERE completed = $1
		 ORDER BY created_at DESC, id DESC`,
		completed,
	)
	if err != nil {
		return nil, fmt.Errorf("find todos by completed: %w", err)
	}
	defer rows.Close()

	return scanTodos(rows)
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	var t domain.Todo
	err := r.q.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id).
		Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo %d: %w", id, err)
	}
	return &t, nil
}

func (r *TodoRepository) Save(ctx context.Context, t *domain.Todo) error {
	if t.ID == 0 {
		err := r.q.QueryRow(ctx,
			`INSERT INTO todos (title, description, completed)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			t.Title, t.Description, t.Completed,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}
		return nil
	}

	// created_at is only written on first insert.
	err := r.q.QueryRow(ctx,
		`INSERT INTO todos (id, title, description, completed)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE
		 SET title = EXCLUDED.title,
		     description = EXCLUDED.description,
		     completed = EXCLUDED.completed
		 RETURNING created_at`,
		t.ID, t.Title, t.Description, t.Completed,
	).Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("save todo %d: %w", t.ID, err)
	}
	return nil
}

func (r *TodoRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *TodoRepository) Close() {
	r.pool.Close()
}

func scanTodos(rows pgx.Rows) ([]*domain.Todo, error) {
	res := make([]*domain.Todo, 0)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		res = append(res, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return res, nil
}
