package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig is the cross-origin policy for one path prefix.
type CORSConfig struct {
	PathPrefix     string
	AllowedOrigins []string
	MaxAge         time.Duration
}

// CORS applies the allow-list policy to requests under cfg.PathPrefix.
// It must be installed on the engine, not on a route group: preflight
// requests match no route and would otherwise never reach it.
// Requests from origins outside the allow-list are rejected with 403.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	apply := cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{"*"},
		MaxAge:       cfg.MaxAge,
	})

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, cfg.PathPrefix) {
			c.Next()
			return
		}
		apply(c)
	}
}
