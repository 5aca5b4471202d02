// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, the per-request database session,
// idempotency, and rate limiting.
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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-twitter-backend/internal/config"
	"github.com/tbourn/go-twitter-backend/internal/http/handlers"
	"github.com/tbourn/go-twitter-backend/internal/http/middleware"
	"github.com/tbourn/go-twitter-backend/internal/repo"
	"github.com/tbourn/go-twitter-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), the per-request
// database session, idempotency and rate limiting, CORS and security headers,
// health and metrics endpoints, and then mounts the public API under the
// configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with credential scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (upload cap plus JSON headroom)
//  6. Gzip compression (metrics and media excluded)
//  7. Metrics
//  8. Session: request-scoped DB handle with timeout-bounded context
//  9. CORS and security headers
//
// Authenticated route groups additionally run, in order: RequireAPIKey,
// IdempotencyValidator (so the replay lookup sees the resolved user), and
// the rate limiter (so replays bypass it). Public groups run the limiter
// keyed by client IP.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	mediaBase := joinBase(cfg.APIBasePath, "/media")

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (Api-Key is masked built-in)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit: the media upload cap plus headroom for the
	//    multipart framing and ordinary JSON bodies.
	r.Use(limitBody(cfg.MaxUploadBytes + 1<<20))

	// 6) Compression. Metrics negotiates its own encoding and media blobs
	//    are already compressed formats, so both stay uncompressed.
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics", mediaBase}),
	))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Request-scoped database session with bounded context
	r.Use(middleware.Session(db, cfg.RequestTimeout))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps
		// tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderAPIKey, middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in
		// addition to gin-contrib/cors).
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
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderAPIKey, middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
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

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db
	tweetSvc := &services.TweetService{DB: db, MaxTextRunes: cfg.MaxTweetRunes}
	userSvc := &services.UserService{DB: db}
	mediaSvc := &services.MediaService{DB: db, MaxUploadBytes: cfg.MaxUploadBytes}
	h := handlers.New(tweetSvc, userSvc, mediaSvc, mediaBase, cfg.IdempotencyTTL)

	// Replay lookup backing the idempotency validator.
	idemLookup := func(ctx context.Context, userID uint, scope, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		if err != nil || rec == nil {
			return false, nil
		}
		return true, nil
	}
	idemValidator := middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		idemLookup,
	)

	// Token-bucket rate limiter per user/IP. Shared between the groups so a
	// caller cannot double its budget by mixing endpoints.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())

	apiBase := cfg.APIBasePath // e.g. "/api"

	// Public endpoints (rate limited by client IP).
	pub := groupWithPrefix(r, apiBase)
	pub.Use(rl.Handler())
	{
		pub.GET("/tweets", h.ListTweets)
		pub.GET("/all_users", h.ListUsers)
		pub.GET("/users/:id", h.GetUser)
		pub.POST("/add_user", h.CreateUser)
		pub.GET("/media/:id", h.GetMedia)
	}

	// Authenticated endpoints. Auth runs first so the idempotency lookup and
	// the limiter key see the resolved user; replays bypass the limiter.
	authed := groupWithPrefix(r, apiBase)
	authed.Use(middleware.RequireAPIKey(db), idemValidator, rl.Handler())
	{
		authed.POST("/tweets", h.PostTweet)
		authed.DELETE("/tweets/:id", h.DeleteTweet)
		authed.POST("/tweets/:id/likes", h.LikeTweet)
		authed.DELETE("/tweets/:id/likes", h.UnlikeTweet)

		authed.GET("/users/me", h.Me)
		authed.POST("/users/:id/follow", h.FollowUser)
		authed.DELETE("/users/:id/follow", h.UnfollowUser)

		authed.POST("/medias", h.UploadMedia)
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

// joinBase concatenates the API base path and a route suffix, collapsing the
// root base to avoid a double slash.
func joinBase(base, suffix string) string {
	if base == "" || base == "/" {
		return suffix
	}
	return base + suffix
}
