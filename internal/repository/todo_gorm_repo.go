package repository

import (
	"context"
	"errors"
	"fmt"

	"todo_webapp/internal/domain"

	"gorm.io/gorm"
)

// GormTodoRepository stores todos through gorm. It backs the SQLite driver
// used for local runs and tests.
type GormTodoRepository struct {
	db *gorm.DB
}

func NewGormTodoRepository(db *gorm.DB) *GormTodoRepository {
	return &GormTodoRepository{db: db}
}

// Migrate creates or updates the todos table.
func (r *GormTodoRepository) Migrate() error {
	if err := r.db.AutoMigrate(&domain.Todo{}); err != nil {
		return fmt.Errorf("migrate todos: %w", err)
	}
	return nil
}

func (r *GormTodoRepository) WithinTx(ctx context.Context, fn func(domain.TodoGateway) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormTodoRepository{db: tx})
	})
}

func (r *GormTodoRepository) FindAll(ctx context.Context) ([]*domain.Todo, error) {
	todos := make([]*domain.Todo, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	return todos, nil
}

func (r *GormTodoRepository) FindByCompletedOrderByCreatedAtDesc(ctx context.Context, completed bool) ([]*domain.Todo, error) {
	todos := make([]*domain.Todo, 0)
	err := r.db.WithContext(ctx).
		Where("completed = ?", completed).
		Order("created_at DESC").
		Order("id DESC").
		Find(&todos).Error
	if err != nil {
		return nil, fmt.Errorf("find todos by completed: %w", err)
	}
	return todos, nil
}

func (r *GormTodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	var t domain.Todo
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo %d: %w", id, err)
	}
	return &t, nil
}

func (r *GormTodoRepository) Save(ctx context.Context, t *domain.Todo) error {
	db := r.db.WithContext(ctx)
	if t.ID == 0 {
		if err := db.Create(t).Error; err != nil {
			return fmt.Errorf("insert todo: %w", err)
		}
		return nil
	}
	if err := db.Save(t).Error; err != nil {
		return fmt.Errorf("save todo %d: %w", t.ID, err)
	}
	return nil
}

func (r *GormTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Todo{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *GormTodoRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormTodoRepository) Close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
