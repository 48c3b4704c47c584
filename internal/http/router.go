// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, authentication, idempotency, and rate
// limiting.
package httpapi

import (
	"context"
	"errors"
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

	_ "github.com/tbourn/phrase-craze-backend/docs" // swagger spec registration
	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/config"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/http/handlers"
	"github.com/tbourn/phrase-craze-backend/internal/http/middleware"
	"github.com/tbourn/phrase-craze-backend/internal/oracle"
	"github.com/tbourn/phrase-craze-backend/internal/preview"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

// Oracle is the language model behind challenge generation and scoring.
type Oracle interface {
	oracle.ChallengeGenerator
	oracle.Scorer
}

// Deps are the collaborators RegisterRoutes builds services from.
type Deps struct {
	DB       *gorm.DB
	Oracle   Oracle
	Previews preview.Store // defaults to the score_previews table
	Clock    *clock.Policy // defaults to the configured game time zone
}

// idempotencyShim adapts the repository free functions to
// handlers.IdempotencyStore.
type idempotencyShim struct{ db *gorm.DB }

// Get proxies repo.GetIdempotency.
func (s idempotencyShim) Get(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, s.db, userID, scope, key, now)
}

// Save proxies repo.CreateIdempotency. A concurrent duplicate already holds
// the same response, so it is not an error.
func (s idempotencyShim) Save(ctx context.Context, userID, scope, key string, status int, body string, ttl time.Duration) error {
	_, err := repo.CreateIdempotency(ctx, s.db, userID, scope, key, status, body, ttl)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the game API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Compression, CORS and security headers
//
// Player routes then add Auth, the idempotency validator and the per-user
// rate limiter (in that order, so a replay can bypass the limiter). Routes that
// call the oracle draw from a second, stricter bucket. Admin routes require
// the is_admin flag.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) error {
	r.HandleMethodNotAllowed = true

	clk := deps.Clock
	if clk == nil {
		var err error
		if clk, err = clock.New(cfg.Game.TimeZone); err != nil {
			return err
		}
	}
	previews := deps.Previews
	if previews == nil {
		previews = &preview.DBStore{DB: deps.DB}
	}
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	if apiBase == "/" {
		apiBase = ""
	}

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Compression, CORS posture, security headers
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:      cfg.Security.EnableHSTS,
		HSTSMaxAge:      cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{apiBase + "/me", apiBase + "/admin"},
		EnablePolicy:    true,
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

	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/oracle
	db := deps.DB
	lbSvc := &services.LeaderboardService{DB: db, LaunchDate: cfg.Game.LaunchDate, Limit: cfg.Game.LeaderboardN}
	userSvc := &services.UserService{DB: db}
	h := handlers.New(handlers.Services{
		Challenges: services.NewChallengeService(db, deps.Oracle),
		Submissions: &services.SubmissionService{
			DB:             db,
			Scorer:         deps.Oracle,
			Previews:       previews,
			MinPhraseRunes: cfg.Game.MinPhraseLen,
			MaxPhraseRunes: cfg.Game.MaxPhraseLen,
			PreviewTTL:     cfg.Game.PreviewTTL,
		},
		Votes:        &services.VoteService{DB: db, Quota: cfg.Game.VoteQuota},
		Leaderboards: lbSvc,
		Users:        userSvc,
	}, handlers.Options{
		Clock:          clk,
		Idempotency:    idempotencyShim{db: db},
		IdempotencyTTL: cfg.IdempotencyTTL,
		Stats: func(ctx context.Context, category domain.Category, start, end string) (int64, *time.Time, error) {
			return repo.LeaderboardStats(ctx, db, category, start, end)
		},
	})

	rl := middleware.NewRateLimiter("api", cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	oracleRL := middleware.NewRateLimiter("oracle", cfg.OracleRateRPS, cfg.OracleRateBurst, middleware.KeyByUserOrIP())

	// Public API
	api := groupWithPrefix(r, apiBase)
	{
		pub := api.Group("", rl.Handler())
		pub.GET("/categories", h.ListCategories)
		pub.GET("/leaderboards/:category", h.GetLeaderboard)
	}

	// Player API
	player := api.Group("")
	player.Use(middleware.Auth(middleware.AuthOptions{
		Secret:         []byte(cfg.Auth.JWTSecret),
		AllowDevHeader: cfg.Auth.AllowDevHeader,
	}))
	player.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200},
		idempotencyLookup(db),
	))
	player.Use(rl.Handler())
	{
		// Challenges and submissions
		player.GET("/challenges/:category", oracleRL.Handler(), h.GetChallenge)
		player.POST("/submissions", oracleRL.Handler(), h.Submit)
		player.GET("/previews/:challenge_id", h.GetPreviewStatus)

		// Votes
		player.GET("/votes/:category/pair", h.GetVotingPair)
		player.GET("/votes/:category/remaining", h.GetRemainingVotes)
		player.POST("/submissions/:id/votes", h.CastVote)

		// Profile
		player.GET("/me", h.GetMe)
		player.POST("/me/checkin", h.CheckIn)
		player.PUT("/me/name", h.Rename)
		player.GET("/me/name/suggestions", h.SuggestNames)
	}

	// Admin API
	admin := player.Group("/admin", middleware.RequireAdmin(func(ctx context.Context, userID string) (bool, error) {
		u, err := repo.GetUser(ctx, db, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return u.IsAdmin, nil
	}))
	{
		admin.POST("/leaderboards/:category/refresh", h.RefreshLeaderboard)
		admin.POST("/users", h.CreateUser)
		admin.POST("/users/:id/backfill-names", h.BackfillNames)
	}
	return nil
}

// corsMiddleware returns the CORS posture: allow all origins when none are
// configured, otherwise echo allow-listed origins.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	allowHeaders := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderUserID, middleware.HeaderIdempotencyKey}
	exposeHeaders := []string{"X-Request-ID", "Content-Length", "ETag", "Idempotency-Replayed"}
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even for requests without an Origin header.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     allowHeaders,
				ExposeHeaders:    exposeHeaders,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     methods,
			AllowHeaders:     allowHeaders,
			ExposeHeaders:    exposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
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

// idempotencyLookup reports whether a stored vote response exists. A miss is
// (false, nil); storage errors are returned for the validator to log.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
		rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return rec != nil, nil
	}
}
