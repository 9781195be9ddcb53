package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// TodoService is the business layer the todo routes call into.
type TodoService interface {
	GetAllTodos(ctx context.Context) ([]*domain.Todo, error)
	GetTodosByCompleted(ctx context.Context, completed bool) ([]*domain.Todo, error)
	CreateTodo(ctx context.Context, input domain.Todo) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id int64, input domain.Todo) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id int64) domain.DeleteOutcome
}

// TodoRequest is the body accepted by create and update. Ids and creation
// times are never taken from clients.
type TodoRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=255"`
	Description string `json:"description" binding:"max=1000"`
	Completed   bool   `json:"completed"`
}

func (r TodoRequest) toDomain() domain.Todo {
	return domain.Todo{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
	}
}

type TodoHandler struct {
	svc TodoService
}

func NewTodoHandler(svc TodoService) *TodoHandler {
	registerValidators()
	return &TodoHandler{svc: svc}
}

// List returns every todo, or only those matching ?completed=true|false,
// newest first.
func (h *TodoHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		todos []*domain.Todo
		err   error
	)
	if raw, ok := c.GetQuery("completed"); ok {
		completed, perr := strconv.ParseBool(raw)
		if perr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed filter"})
			return
		}
		todos, err = h.svc.GetTodosByCompleted(ctx, completed)
	} else {
		todos, err = h.svc.GetAllTodos(ctx)
	}
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) Create(c *gin.Context) {
	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	todo, err := h.svc.CreateTodo(c.Request.Context(), req.toDomain())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	todo, err := h.svc.UpdateTodo(c.Request.Context(), id, req.toDomain())
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Delete always answers 200. Whether the row was removed is carried by the
// plain-text body.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	outcome := h.svc.DeleteTodo(c.Request.Context(), id)
	if !outcome.Succeeded() {
		todoDeleteFailures.Inc()
	}
	c.String(http.StatusOK, outcome.String())
}

func (h *TodoHandler) serviceError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrTodoNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
		return
	}
	// recorded for the request logger; never sent to the client
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
