// Package handlers exposes the game API over HTTP.
//
// Handlers are transport-thin: they validate input, resolve the caller and the
// current game day, call application services, and translate results into
// HTTP responses (including conditional and idempotent responses).
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/http/middleware"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ChallengeService returns the daily challenge of a category.
type ChallengeService interface {
	// GetOrCreate returns today's challenge, generating it on first use.
	GetOrCreate(ctx context.Context, category domain.Category, today string) (*domain.Challenge, error)
}

// SubmissionService records phrases and serves voting pairs.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SubmissionService interface {
	// Submit scores a phrase and stores it, or only previews the score.
	Submit(ctx context.Context, in services.SubmitInput, today string) (*services.SubmissionResult, error)
	// PreviewStatus reports an earlier score preview for a challenge.
	PreviewStatus(ctx context.Context, userID, challengeID string) (*services.PreviewStatus, error)
	// VotingPair returns two submissions of the voting day.
	VotingPair(ctx context.Context, category domain.Category, voterID, today string) ([]domain.Submission, error)
}

// VoteService enforces the per-category daily vote quota.
type VoteService interface {
	Cast(ctx context.Context, voterID, submissionID string, category domain.Category, today string) (int, error)
	Remaining(ctx context.Context, voterID string, category domain.Category, today string) (*services.Quota, error)
}

// LeaderboardService ranks players and materializes daily scores.
type LeaderboardService interface {
	Query(ctx context.Context, category domain.Category, timeframe, today string) (*services.Leaderboard, error)
	Window(timeframe, today string) (start, end string, err error)
	UpdateDaily(ctx context.Context, category domain.Category, date string) error
}

// UserService manages player profiles and streaks.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, email, name string, admin bool) (*domain.User, error)
	CheckIn(ctx context.Context, userID, today string) (*services.CheckInResult, error)
	Rename(ctx context.Context, userID, name string) (*domain.User, error)
	SuggestNames(ctx context.Context) ([]string, error)
	BackfillSubmissionNames(ctx context.Context, userID string) (int64, error)
}

// IdempotencyStore persists responses of unsafe requests for replay.
// Get returns an error when no live record exists.
type IdempotencyStore interface {
	Get(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	Save(ctx context.Context, userID, scope, key string, status int, body string, ttl time.Duration) error
}

// LeaderboardStats reports the entry count and latest update of a leaderboard
// window. It feeds the weak ETag of leaderboard reads.
type LeaderboardStats func(ctx context.Context, category domain.Category, start, end string) (count int64, maxUpdatedAt *time.Time, err error)

//
// Handler wiring
//

// Services bundles the application services the handlers call.
type Services struct {
	Challenges   ChallengeService
	Submissions  SubmissionService
	Votes        VoteService
	Leaderboards LeaderboardService
	Users        UserService
}

// Options carries optional collaborators. Nil Idempotency disables replay;
// nil Stats disables leaderboard ETags.
type Options struct {
	Clock          *clock.Policy
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Stats          LeaderboardStats
}

// Handlers groups the HTTP endpoints of the game.
type Handlers struct {
	svc     Services
	clock   *clock.Policy
	idem    IdempotencyStore
	idemTTL time.Duration
	stats   LeaderboardStats
}

// New constructs Handlers bound to the given services.
func New(svc Services, opts Options) *Handlers {
	clk := opts.Clock
	if clk == nil {
		clk = &clock.Policy{}
	}
	ttl := opts.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handlers{
		svc:     svc,
		clock:   clk,
		idem:    opts.Idempotency,
		idemTTL: ttl,
		stats:   opts.Stats,
	}
}

// today is the current game day in the configured zone.
func (h *Handlers) today() string { return h.clock.Today() }

// userID extracts the authenticated player id set by middleware.Auth.
func userID(c *gin.Context) string {
	if v, ok := c.Get(middleware.UserIDKey); ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// requireUser writes a 401 and returns false when the caller is anonymous.
func requireUser(c *gin.Context) (string, bool) {
	uid := userID(c)
	if uid == "" {
		failService(c, services.ErrUnauthenticated)
		return "", false
	}
	return uid, true
}

// categoryParam normalizes the :category path parameter.
func categoryParam(c *gin.Context) (domain.Category, bool) {
	cat, ok := domain.ParseCategory(c.Param("category"))
	if !ok {
		failService(c, services.ErrInvalidCategory)
	}
	return cat, ok
}
