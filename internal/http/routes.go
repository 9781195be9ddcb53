package http

import (
	"time"

	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

// RouterConfig carries the externally supplied HTTP policy.
type RouterConfig struct {
	Version        string
	AllowedOrigins []string
	CORSMaxAge     time.Duration
	RateLimit      int
	RateWindow     time.Duration
}

// NewRouter wires the todo API, health checks and metrics onto a gin engine.
// redisClient may be nil, in which case API rate limiting is disabled.
func NewRouter(todos handlers.TodoService, store handlers.Pinger, redisClient *redis.Client, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(middleware.CORSConfig{
		PathPrefix:     "/api/",
		AllowedOrigins: cfg.AllowedOrigins,
		MaxAge:         cfg.CORSMaxAge,
	}))

	RegisterRoutes(r, handlers.NewTodoHandler(todos), handlers.NewHealthHandler(store, cfg.Version), redisClient, cfg)
	return r
}

func RegisterRoutes(r *gin.Engine, todoHandler *handlers.TodoHandler, healthHandler *handlers.HealthHandler, redisClient *redis.Client, cfg RouterConfig) {
	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(redisClient, cfg.RateLimit, cfg.RateWindow))

	todos := api.Group("/todos")
	{
		todos.GET("", todoHandler.List)
		todos.POST("", todoHandler.Create)
		todos.PUT("/:id", todoHandler.Update)
		todos.DELETE("/:id", todoHandler.Delete)
	}
}
