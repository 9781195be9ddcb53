package main

import (
	"context"
	"log"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
)

var samples = []domain.Todo{
	{Title: "Try the todo app", Description: "Create, complete and delete an item"},
	{Title: "Read the API docs", Description: "GET/POST/PUT/DELETE under /api/todos"},
	{Title: "Ship it", Completed: true},
}

func main() {
	// uses DB_DRIVER / DATABASE_URL like the server
	cfg := config.Load()
	ctx := context.Background()

	var store service.TodoStore
	switch cfg.DBDriver {
	case config.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		repo := repository.NewGormTodoRepository(gdb)
		defer repo.Close()
		if err := repo.Migrate(); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = repo
	default:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store = repository.NewTodoRepository(pool)
	}

	svc := service.NewTodoService(store, nil)

	existing, err := svc.GetAllTodos(ctx)
	if err != nil {
		log.Fatalf("list todos: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Title] = true
	}

	for _, sample := range samples {
		if have[sample.Title] {
			log.Printf("todo already exists title=%q\n", sample.Title)
			continue
		}
		created, err := svc.CreateTodo(ctx, sample)
		if err != nil {
			log.Fatalf("create todo %q: %v", sample.Title, err)
		}
		log.Printf("todo created id=%d title=%q completed=%v created_at=%v\n",
			created.ID, created.Title, created.Completed, created.CreatedAt)
	}
}
