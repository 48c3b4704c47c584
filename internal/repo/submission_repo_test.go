package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

func newSubmission(userID string, cat domain.Category, day string) *domain.Submission {
	return &domain.Submission{
		UserID: userID, Username: "n", ChallengeID: "c1",
		Category: cat, Date: day, Prompt: "p", Phrase: "a fine phrase", InitialScore: 6,
		FinalSubmission: true,
	}
}

func TestCreateSubmission_AssignsIDAndRejectsSecond(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	s := newSubmission("u1", domain.CategoryDialogue, "2025-03-10")
	if err := CreateSubmission(ctx, db, s); err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	if s.ID == "" || s.CreatedAt.IsZero() {
		t.Fatalf("id/timestamps not assigned: %+v", s)
	}
	err := CreateSubmission(ctx, db, newSubmission("u1", domain.CategoryDialogue, "2025-03-10"))
	if !IsDuplicate(err) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	got, err := FindFinalSubmission(ctx, db, "u1", domain.CategoryDialogue, "2025-03-10")
	if err != nil || got.ID != s.ID {
		t.Fatalf("FindFinalSubmission = %+v, %v", got, err)
	}
	if _, err := FindFinalSubmission(ctx, db, "u1", domain.CategoryDialogue, "2025-03-11"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIncrementVotes_ConcurrentNoLostUpdates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	s := newSubmission("u1", domain.CategoryIdiom, "2025-03-10")
	if err := CreateSubmission(ctx, db, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- IncrementVotes(ctx, db, s.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("IncrementVotes: %v", err)
		}
	}

	got, _ := GetSubmission(ctx, db, s.ID)
	if got.Votes != n {
		t.Fatalf("votes = %d; want %d", got.Votes, n)
	}
	if err := IncrementVotes(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRandomSubmissions_ExcludesVoterAndOtherDays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	for _, u := range []string{"a", "b", "c", "voter"} {
		if err := CreateSubmission(ctx, db, newSubmission(u, domain.CategoryEmotion, "2025-03-09")); err != nil {
			t.Fatalf("seed %s: %v", u, err)
		}
	}
	if err := CreateSubmission(ctx, db, newSubmission("d", domain.CategoryEmotion, "2025-03-10")); err != nil {
		t.Fatalf("seed d: %v", err)
	}

	for i := 0; i < 10; i++ {
		got, err := RandomSubmissions(ctx, db, domain.CategoryEmotion, "2025-03-09", "voter", 2)
		if err != nil {
			t.Fatalf("RandomSubmissions: %v", err)
		}
		if len(got) != 2 || got[0].ID == got[1].ID {
			t.Fatalf("want two distinct submissions, got %+v", got)
		}
		for _, s := range got {
			if s.UserID == "voter" || s.Date != "2025-03-09" {
				t.Fatalf("unexpected submission in sample: %+v", s)
			}
		}
	}
}
