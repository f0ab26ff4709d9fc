package server

import (
	"net/http"
	"time"

	"github.com/cloudfilestore/api/internal/config"
	"github.com/cloudfilestore/api/internal/file"
	"github.com/cloudfilestore/api/internal/identity"
	"github.com/cloudfilestore/api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config      config.Config
	Logger      *zap.Logger
	DB          *pgxpool.Pool
	ObjectStore *minio.Client
	FileService *file.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(deps.Logger))
	router.Use(corsMiddleware(deps.Config.CORS.AllowedOrigin))

	metrics.InitMetrics()
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	api := router.Group("/v1")
	protected := api.Group("/")
	protected.Use(identity.Middleware())

	if deps.FileService != nil {
		file.RegisterRoutes(protected, deps.FileService)
	}

	return router
}

// corsMiddleware permits the configured front-end origin and answers
// preflight requests; every response carries the CORS headers.
func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logg *zap.Logger) gin.HandlerFunc {
	if logg == nil {
		return gin.Logger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logg.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
