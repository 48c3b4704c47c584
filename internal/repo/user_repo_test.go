package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	name := "quill"

	u, err := CreateUser(ctx, db, "q@example.com", &name, true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	got, err := GetUser(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.DisplayName() != "quill" || !got.IsAdmin || got.Email != "q@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := GetUser(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := CreateUser(ctx, db, "q@example.com", nil, false); !IsDuplicate(err) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}
}

func TestGetUserForUpdate_InsideTransaction(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "lockme")
	err := db.Transaction(func(tx *gorm.DB) error {
		got, err := GetUserForUpdate(context.Background(), tx, u.ID)
		if err != nil {
			return err
		}
		if got.ID != u.ID {
			t.Fatalf("got %s", got.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func TestUpdateUserFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "")

	if err := UpdateUserFields(ctx, db, u.ID, map[string]any{"voting_streak": 4, "daily_votes": 2}); err != nil {
		t.Fatalf("UpdateUserFields: %v", err)
	}
	got, _ := GetUser(ctx, db, u.ID)
	if got.VotingStreak != 4 || got.DailyVotes != 2 {
		t.Fatalf("fields not applied: %+v", got)
	}
	if err := UpdateUserFields(ctx, db, "missing", map[string]any{"daily_votes": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNameTaken(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedUser(t, db, "alpha")
	b := seedUser(t, db, "")

	if taken, err := NameTaken(ctx, db, "alpha", b.ID); err != nil || !taken {
		t.Fatalf("alpha should be taken for b: %v %v", taken, err)
	}
	if taken, _ := NameTaken(ctx, db, "alpha", a.ID); taken {
		t.Fatalf("a keeping its own name is not a conflict")
	}
	if taken, _ := NameTaken(ctx, db, "beta", b.ID); taken {
		t.Fatalf("beta is free")
	}
}

func TestBackfillSubmissionNames(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "old")
	other := seedUser(t, db, "other")

	for i, d := range []string{"2025-03-01", "2025-03-02"} {
		s := &domain.Submission{UserID: u.ID, Username: "old", ChallengeID: "c", Category: domain.CategoryIdiom, Date: d, Prompt: "p", Phrase: "phrase", InitialScore: i}
		if err := CreateSubmission(ctx, db, s); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if err := CreateSubmission(ctx, db, &domain.Submission{UserID: other.ID, Username: "other", ChallengeID: "c", Category: domain.CategoryIdiom, Date: "2025-03-01", Prompt: "p", Phrase: "phrase"}); err != nil {
		t.Fatalf("seed other: %v", err)
	}

	n, err := BackfillSubmissionNames(ctx, db, u.ID, "new")
	if err != nil || n != 2 {
		t.Fatalf("BackfillSubmissionNames = %d, %v", n, err)
	}
	var cnt int64
	db.Model(&domain.Submission{}).Where("username = ?", "other").Count(&cnt)
	if cnt != 1 {
		t.Fatalf("other user's submission must keep its name")
	}
	// Second run is a no-op.
	if n, _ := BackfillSubmissionNames(ctx, db, u.ID, "new"); n != 0 {
		t.Fatalf("second backfill touched %d rows", n)
	}
}
