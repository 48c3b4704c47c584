package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/oracle"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

const (
	today     = "2025-03-10"
	yesterday = "2025-03-09"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// newFileDB opens a WAL database file with the production pool, so
// concurrent transactions really overlap instead of queueing on one
// connection.
func newFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "game.db"))
	if err != nil {
		t.Fatalf("open sqlite file: %v", err)
	}
	db = db.Session(&gorm.Session{Logger: logger.Default.LogMode(logger.Silent)})
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// dbBackends runs concurrency tests on the single-connection memory DB and
// on a pooled file DB.
var dbBackends = []struct {
	name string
	open func(*testing.T) *gorm.DB
}{
	{"memory", newTestDB},
	{"file", newFileDB},
}

func mustUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	var n *string
	if name != "" {
		n = &name
	}
	u, err := repo.CreateUser(context.Background(), db, uuid.NewString()+"@example.com", n, false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustChallenge(t *testing.T, db *gorm.DB, cat domain.Category, day string) *domain.Challenge {
	t.Helper()
	c, err := repo.CreateChallenge(context.Background(), db, cat, day, "Create a phrase that sparkles")
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return c
}

func mustSubmission(t *testing.T, db *gorm.DB, u *domain.User, cat domain.Category, day string, score int) *domain.Submission {
	t.Helper()
	s := &domain.Submission{
		UserID:          u.ID,
		Username:        u.DisplayName(),
		ChallengeID:     uuid.NewString(),
		Category:        cat,
		Date:            day,
		Prompt:          "Create a phrase that sparkles",
		Phrase:          "glitter on the tide",
		InitialScore:    score,
		FinalSubmission: true,
	}
	if err := repo.CreateSubmission(context.Background(), db, s); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return s
}

// fakeGenerator is an oracle.ChallengeGenerator with a call counter.
type fakeGenerator struct {
	calls  atomic.Int32
	prompt string
	err    error
	delay  time.Duration
	hook   func() // runs before returning
}

func (f *fakeGenerator) Generate(ctx context.Context, c domain.Category) (string, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.hook != nil {
		f.hook()
	}
	if f.err != nil {
		return "", f.err
	}
	if f.prompt != "" {
		return f.prompt, nil
	}
	return "Create a phrase that celebrates " + c.DisplayName(), nil
}

// fakeScorer is an oracle.Scorer returning a fixed score.
type fakeScorer struct {
	mu     sync.Mutex
	calls  int
	value  int
	err    error
	phrase []string
}

func (f *fakeScorer) Score(ctx context.Context, phrase string, c domain.Category, prompt string) (oracle.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.phrase = append(f.phrase, phrase)
	if f.err != nil {
		return oracle.Score{}, f.err
	}
	return oracle.Score{Value: f.value, Feedback: fmt.Sprintf("Score: %d/10", f.value), Parsed: true}, nil
}

func (f *fakeScorer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
