package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	httpServer "todo_webapp/internal/http"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
)

// store is what the server needs from either repository implementation.
type store interface {
	service.TodoStore
	Ping(ctx context.Context) error
	Close()
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	gin.SetMode(gin.ReleaseMode)

	st, err := openStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to open store", "driver", cfg.DBDriver, "error", err)
	}

	redisClient := middleware.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	todoService := service.NewTodoService(st, logger.Get())
	router := httpServer.NewRouter(todoService, st, redisClient, httpServer.RouterConfig{
		Version:        cfg.AppVersion,
		AllowedOrigins: cfg.AllowedOrigins,
		CORSMaxAge:     cfg.CORSMaxAge,
		RateLimit:      cfg.APIRateLimit,
		RateWindow:     cfg.APIRateWindow,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down server")
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				st.Close()
				if redisClient != nil {
					return redisClient.Close()
				}
				return nil
			},
		},
	)

	exitCode := <-wait
	logger.Info("server exited", "code", exitCode)
	os.Exit(exitCode)
}

func openStore(ctx context.Context, cfg *config.Config) (store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewGormTodoRepository(gdb)
		if err := repo.Migrate(); err != nil {
			repo.Close()
			return nil, err
		}
		return repo, nil
	default:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repository.NewTodoRepository(pool), nil
	}
}
