package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/http/middleware"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

// ---------- fixed game day ----------

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

const (
	testToday     = "2025-03-10"
	testYesterday = "2025-03-09"
)

// ---------- flexible service stubs ----------

type stubChallenges struct {
	getOrCreate func(context.Context, domain.Category, string) (*domain.Challenge, error)
}

func (s stubChallenges) GetOrCreate(ctx context.Context, cat domain.Category, today string) (*domain.Challenge, error) {
	if s.getOrCreate != nil {
		return s.getOrCreate(ctx, cat, today)
	}
	return &domain.Challenge{ID: "ch-1", Category: cat, Date: today, Prompt: "p"}, nil
}

type stubSubmissions struct {
	submit        func(context.Context, services.SubmitInput, string) (*services.SubmissionResult, error)
	previewStatus func(context.Context, string, string) (*services.PreviewStatus, error)
	votingPair    func(context.Context, domain.Category, string, string) ([]domain.Submission, error)
}

func (s stubSubmissions) Submit(ctx context.Context, in services.SubmitInput, today string) (*services.SubmissionResult, error) {
	if s.submit != nil {
		return s.submit(ctx, in, today)
	}
	return &services.SubmissionResult{Score: 5}, nil
}

func (s stubSubmissions) PreviewStatus(ctx context.Context, u, ch string) (*services.PreviewStatus, error) {
	if s.previewStatus != nil {
		return s.previewStatus(ctx, u, ch)
	}
	return &services.PreviewStatus{ChallengeID: ch}, nil
}

func (s stubSubmissions) VotingPair(ctx context.Context, cat domain.Category, voter, today string) ([]domain.Submission, error) {
	if s.votingPair != nil {
		return s.votingPair(ctx, cat, voter, today)
	}
	return nil, services.ErrNotEnoughSubmissions
}

type stubVotes struct {
	cast      func(context.Context, string, string, domain.Category, string) (int, error)
	remaining func(context.Context, string, domain.Category, string) (*services.Quota, error)
}

func (s stubVotes) Cast(ctx context.Context, voter, sub string, cat domain.Category, today string) (int, error) {
	if s.cast != nil {
		return s.cast(ctx, voter, sub, cat, today)
	}
	return 4, nil
}

func (s stubVotes) Remaining(ctx context.Context, voter string, cat domain.Category, today string) (*services.Quota, error) {
	if s.remaining != nil {
		return s.remaining(ctx, voter, cat, today)
	}
	return &services.Quota{Category: cat, Remaining: 5, Limit: 5}, nil
}

type stubLeaderboards struct {
	query       func(context.Context, domain.Category, string, string) (*services.Leaderboard, error)
	updateDaily func(context.Context, domain.Category, string) error
}

func (s stubLeaderboards) Query(ctx context.Context, cat domain.Category, tf, today string) (*services.Leaderboard, error) {
	if s.query != nil {
		return s.query(ctx, cat, tf, today)
	}
	return &services.Leaderboard{Category: cat, Timeframe: tf}, nil
}

func (s stubLeaderboards) Window(tf, today string) (string, string, error) {
	lb := &services.LeaderboardService{LaunchDate: "2025-01-01"}
	return lb.Window(tf, today)
}

func (s stubLeaderboards) UpdateDaily(ctx context.Context, cat domain.Category, date string) error {
	if s.updateDaily != nil {
		return s.updateDaily(ctx, cat, date)
	}
	return nil
}

type stubUsers struct {
	get      func(context.Context, string) (*domain.User, error)
	create   func(context.Context, string, string, bool) (*domain.User, error)
	checkIn  func(context.Context, string, string) (*services.CheckInResult, error)
	rename   func(context.Context, string, string) (*domain.User, error)
	suggest  func(context.Context) ([]string, error)
	backfill func(context.Context, string) (int64, error)
}

func (s stubUsers) Get(ctx context.Context, id string) (*domain.User, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.User{ID: id}, nil
}

func (s stubUsers) Create(ctx context.Context, email, name string, admin bool) (*domain.User, error) {
	if s.create != nil {
		return s.create(ctx, email, name, admin)
	}
	return &domain.User{ID: "new", Email: email, IsAdmin: admin}, nil
}

func (s stubUsers) CheckIn(ctx context.Context, id, today string) (*services.CheckInResult, error) {
	if s.checkIn != nil {
		return s.checkIn(ctx, id, today)
	}
	return &services.CheckInResult{User: &domain.User{ID: id}}, nil
}

func (s stubUsers) Rename(ctx context.Context, id, name string) (*domain.User, error) {
	if s.rename != nil {
		return s.rename(ctx, id, name)
	}
	return &domain.User{ID: id, Name: &name}, nil
}

func (s stubUsers) SuggestNames(ctx context.Context) ([]string, error) {
	if s.suggest != nil {
		return s.suggest(ctx)
	}
	return []string{"Adventurous Banana", "Bold Penguin", "Jolly Comet"}, nil
}

func (s stubUsers) BackfillSubmissionNames(ctx context.Context, id string) (int64, error) {
	if s.backfill != nil {
		return s.backfill(ctx, id)
	}
	return 0, nil
}

// memIdempotency is an in-memory IdempotencyStore.
type memIdempotency struct {
	mu   sync.Mutex
	recs map[string]*domain.Idempotency
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{recs: map[string]*domain.Idempotency{}}
}

func (m *memIdempotency) Get(_ context.Context, userID, scope, key string, _ time.Time) (*domain.Idempotency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID+"|"+scope+"|"+key]
	if !ok {
		return nil, errors.New("not found")
	}
	return rec, nil
}

func (m *memIdempotency) Save(_ context.Context, userID, scope, key string, status int, body string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[userID+"|"+scope+"|"+key] = &domain.Idempotency{UserID: userID, Scope: scope, Key: key, Status: status, Body: body}
	return nil
}

func (m *memIdempotency) lookup(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
	rec, err := m.Get(ctx, userID, scope, key, now)
	return err == nil && rec != nil, nil
}

// ---------- router under test ----------

// fillDefaults swaps nil services for zero-value stubs.
func fillDefaults(s Services) Services {
	if s.Challenges == nil {
		s.Challenges = stubChallenges{}
	}
	if s.Submissions == nil {
		s.Submissions = stubSubmissions{}
	}
	if s.Votes == nil {
		s.Votes = stubVotes{}
	}
	if s.Leaderboards == nil {
		s.Leaderboards = stubLeaderboards{}
	}
	if s.Users == nil {
		s.Users = stubUsers{}
	}
	return s
}

// newTestRouter mounts every handler the way the production router does,
// with dev-header auth and no admin check.
func newTestRouter(t *testing.T, svc Services, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if opts.Clock == nil {
		opts.Clock = clock.Fixed(testNow)
	}
	h := New(fillDefaults(svc), opts)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/categories", h.ListCategories)
	r.GET("/leaderboards/:category", h.GetLeaderboard)

	var lookup middleware.IdempotencyLookup
	if m, ok := opts.Idempotency.(*memIdempotency); ok {
		lookup = m.lookup
	}
	api := r.Group("")
	api.Use(middleware.Auth(middleware.AuthOptions{AllowDevHeader: true}))
	api.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, lookup))
	api.GET("/challenges/:category", h.GetChallenge)
	api.GET("/previews/:challenge_id", h.GetPreviewStatus)
	api.POST("/submissions", h.Submit)
	api.POST("/submissions/:id/votes", h.CastVote)
	api.GET("/votes/:category/pair", h.GetVotingPair)
	api.GET("/votes/:category/remaining", h.GetRemainingVotes)
	api.GET("/me", h.GetMe)
	api.POST("/me/checkin", h.CheckIn)
	api.PUT("/me/name", h.Rename)
	api.GET("/me/name/suggestions", h.SuggestNames)

	admin := api.Group("/admin")
	admin.POST("/leaderboards/:category/refresh", h.RefreshLeaderboard)
	admin.POST("/users", h.CreateUser)
	admin.POST("/users/:id/backfill-names", h.BackfillNames)
	return r
}

// do performs a request as user (empty for anonymous) with an optional JSON body.
func do(r http.Handler, method, path, user string, body any, hdr ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, _ := json.Marshal(b)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set(middleware.HeaderUserID, user)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return v
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	if er := decode[ErrorResponse](t, w); er.Code != code {
		t.Fatalf("code=%q want %q", er.Code, code)
	}
}
