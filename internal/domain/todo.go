package domain

import (
	"errors"
	"time"
)

// ErrTodoNotFound is returned by the gateway and the service when no todo
// matches the requested id.
var ErrTodoNotFound = errors.New("todo not found")

type Todo struct {
	ID          int64     `db:"id" json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `db:"title" json:"title" gorm:"not null"`
	Description string    `db:"description" json:"description" gorm:"not null;default:''"`
	Completed   bool      `db:"completed" json:"completed" gorm:"not null;default:false;index:idx_todos_completed_created_at,priority:1"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt" gorm:"not null;autoCreateTime;index:idx_todos_completed_created_at,priority:2,sort:desc"`
}

// TableName pins the table name shared with the SQL migrations.
func (Todo) TableName() string {
	return "todos"
}
