package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:preview_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestDBStore_RoundTripAndExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s := &DBStore{DB: newTestDB(t), Now: func() time.Time { return now }}
	ctx := context.Background()

	if _, err := s.Get(ctx, "u1", "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	p := &domain.ScorePreview{UserID: "u1", ChallengeID: "c1", Phrase: "moonlit", Score: 7, Feedback: "nice", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, "u1", "c1")
	if err != nil || got.Score != 7 || got.Phrase != "moonlit" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := s.Get(ctx, "u1", "c1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired marker must be hidden, got %v", err)
	}

	if err := s.Delete(ctx, "u1", "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "u1", "c1"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestRedisStore_Key(t *testing.T) {
	if got := (&RedisStore{}).key("u1", "c1"); got != "preview:u1:c1" {
		t.Fatalf("default key = %q", got)
	}
	if got := (&RedisStore{Prefix: "pc:preview"}).key("u1", "c1"); got != "pc:preview:u1:c1" {
		t.Fatalf("prefixed key = %q", got)
	}
}

func TestDecodeMarker_RestoresUserID(t *testing.T) {
	p := domain.ScorePreview{UserID: "u1", ChallengeID: "c1", Phrase: "x", Score: 4, Feedback: "f"}
	raw, _ := json.Marshal(p)
	got, err := decodeMarker(raw, "u1")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.UserID != "u1" || got.ChallengeID != "c1" || got.Score != 4 {
		t.Fatalf("decoded = %+v", got)
	}
	if _, err := decodeMarker([]byte("{"), "u1"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNewRedisStore_UnreachableFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	// Port 1 on loopback refuses connections.
	if _, _, err := NewRedisStore(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatalf("expected connection error")
	}
}
