package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"todo_webapp/internal/db"
	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errStoreDown = errors.New("connection refused")

type brokenStore struct{}

func (brokenStore) WithinTx(context.Context, func(domain.TodoGateway) error) error {
	return errStoreDown
}

func newRouter(svc TodoService) *gin.Engine {
	h := NewTodoHandler(svc)
	r := gin.New()
	api := r.Group("/api/todos")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.PUT("/:id", h.Update)
	api.DELETE("/:id", h.Delete)
	return r
}

func newTestService(t *testing.T) (*service.TodoService, *repository.GormTodoRepository) {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	repo := repository.NewGormTodoRepository(gdb)
	require.NoError(t, repo.Migrate())
	t.Cleanup(repo.Close)
	return service.NewTodoService(repo, logger.New(&bytes.Buffer{}, "error", false)), repo
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeTodo(t *testing.T, w *httptest.ResponseRecorder) domain.Todo {
	t.Helper()
	var todo domain.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todo))
	return todo
}

func TestTodoHandler_CreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "read book", "description": "ch. 3"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decodeTodo(t, w)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Contains(t, w.Body.String(), `"createdAt"`)

	w = doJSON(t, r, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, created.ID, todos[0].ID)
	assert.Equal(t, "ch. 3", todos[0].Description)
}

func TestTodoHandler_ListEmptyIsArray(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/api/todos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTodoHandler_ListByCompleted(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	done := decodeTodo(t, doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "done", "completed": true}))
	doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "open"})

	w := doJSON(t, r, http.MethodGet, "/api/todos?completed=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var todos []domain.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, done.ID, todos[0].ID)

	w = doJSON(t, r, http.MethodGet, "/api/todos?completed=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoHandler_CreateValidation(t *testing.T) {
	cases := []struct {
		name string
		body any
		want string
	}{
		{"missing title", gin.H{"description": "no title"}, "validation failed"},
		{"empty title", gin.H{"title": ""}, "validation failed"},
		{"blank title", gin.H{"title": "   "}, "validation failed"},
		{"malformed json", `{"title": "x"`, "malformed request body"},
		{"wrong type", `{"title": 42}`, "malformed request body"},
		{"empty body", "", "malformed request body"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			r := newRouter(svc)

			w := doJSON(t, r, http.MethodPost, "/api/todos", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.want, body["error"])

			all, err := svc.GetAllTodos(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all, "rejected request must not persist")
		})
	}
}

func TestTodoHandler_ValidationNamesField(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Fields []FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "title", body.Fields[0].Field)
}

func TestTodoHandler_CreateIgnoresClientID(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	first := decodeTodo(t, doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "first"}))
	second := decodeTodo(t, doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"id": first.ID, "title": "second"}))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestTodoHandler_Update(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	created := decodeTodo(t, doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "a", "description": "keep me"}))

	w := doJSON(t, r, http.MethodPut, "/api/todos/"+itoa(created.ID),
		gin.H{"title": "b", "description": "replace me", "completed": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeTodo(t, w)
	assert.Equal(t, "b", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, "keep me", updated.Description)
}

func TestTodoHandler_UpdateErrors(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	t.Run("unknown id is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/todos/999", gin.H{"title": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"todo not found"}`, w.Body.String())
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/todos/abc", gin.H{"title": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("blank title is 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/todos/1", gin.H{"title": " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTodoHandler_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	r := newRouter(svc)

	created := decodeTodo(t, doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "bye"}))

	w := doJSON(t, r, http.MethodDelete, "/api/todos/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = doJSON(t, r, http.MethodGet, "/api/todos", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/todos/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.DeleteFailedMessage, w.Body.String())
}

func TestTodoHandler_StoreFailures(t *testing.T) {
	svc := service.NewTodoService(brokenStore{}, logger.New(&bytes.Buffer{}, "error", false))
	r := newRouter(svc)

	t.Run("list is 500 without detail", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/todos", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("create is 500", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/todos", gin.H{"title": "x"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("update is 500", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/todos/1", gin.H{"title": "x"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("delete is still 200", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/todos/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.DeleteFailedMessage, w.Body.String())
	})
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
