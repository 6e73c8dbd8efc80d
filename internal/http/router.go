// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/emberapp/go-dating-backend/internal/config"
	"github.com/emberapp/go-dating-backend/internal/domain"
	"github.com/emberapp/go-dating-backend/internal/http/handlers"
	"github.com/emberapp/go-dating-backend/internal/http/middleware"
	"github.com/emberapp/go-dating-backend/internal/repo"
	"github.com/emberapp/go-dating-backend/internal/services"
)

// answerRepoShim adapts the repository free functions to the
// services.AnswerRepo interface expected by the AnswerService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type answerRepoShim struct{}

// UpsertAnswer proxies repo.UpsertAnswer.
func (answerRepoShim) UpsertAnswer(ctx context.Context, db *gorm.DB, userID, questionID, text string, answeredAt time.Time) (*domain.Answer, error) {
	return repo.UpsertAnswer(ctx, db, userID, questionID, text, answeredAt)
}

// ListAnswers proxies repo.ListAnswers.
func (answerRepoShim) ListAnswers(ctx context.Context, db *gorm.DB, userID string) ([]domain.Answer, error) {
	return repo.ListAnswers(ctx, db, userID)
}

// CountAnswers proxies repo.CountAnswers.
func (answerRepoShim) CountAnswers(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountAnswers(ctx, db, userID)
}

// DeleteAnswers proxies repo.DeleteAnswers.
func (answerRepoShim) DeleteAnswers(ctx context.Context, db *gorm.DB, userID string) error {
	return repo.DeleteAnswers(ctx, db, userID)
}

// poolShim adapts repo.ListAnswerUserIDs to the services.PoolProvider
// interface used by the discovery ranker.
type poolShim struct{}

// ListAnswerUserIDs proxies repo.ListAnswerUserIDs.
func (poolShim) ListAnswerUserIDs(ctx context.Context, db *gorm.DB, excludeUserID string, limit int) ([]string, error) {
	return repo.ListAnswerUserIDs(ctx, db, excludeUserID, limit)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// compression, CORS and security headers, health and metrics endpoints, and
// then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (X-User-ID is masked by default)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress responses (question catalog and feeds are repetitive JSON)
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", middleware.MarkRateBypass(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dependency injection: services ← repo/db/cache
	cache := services.NewScoreCache(cfg.Discovery.CacheSize, cfg.Discovery.CacheTTL)

	answerSvc := services.NewAnswerService(db, answerRepoShim{}, cache)
	answerSvc.MaxAnswerRunes = cfg.MaxAnswerRunes

	discoverSvc := services.NewDiscoveryService(db, answerRepoShim{}, poolShim{}, cache)
	discoverSvc.PageSize = cfg.Discovery.PageSize
	discoverSvc.PoolLimit = cfg.Discovery.PoolLimit
	discoverSvc.Concurrency = cfg.Discovery.Concurrency

	h := handlers.New(answerSvc, discoverSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Questionnaire
		api.GET("/compatibility/questions", h.ListQuestions)
		api.GET("/compatibility/profile", h.GetProfile)
		api.PUT("/compatibility/answers/:questionId", h.SubmitAnswer)
		api.DELETE("/compatibility/answers", h.ResetAnswers)

		// Discovery
		api.GET("/discover", h.Discover)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
