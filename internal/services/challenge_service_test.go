package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

func TestChallenge_GetOrCreate_CachesForTheDay(t *testing.T) {
	db := newTestDB(t)
	gen := &fakeGenerator{}
	svc := NewChallengeService(db, gen)
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, domain.CategoryIdiom, today)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := svc.GetOrCreate(ctx, domain.CategoryIdiom, today)
	if err != nil {
		t.Fatalf("GetOrCreate (hit): %v", err)
	}
	if first.ID != second.ID || first.Prompt != second.Prompt {
		t.Fatalf("expected the cached row, got %+v vs %+v", first, second)
	}
	if n := gen.calls.Load(); n != 1 {
		t.Fatalf("oracle called %d times, want 1", n)
	}
}

func TestChallenge_GetOrCreate_NewDayGeneratesAgain(t *testing.T) {
	db := newTestDB(t)
	old := mustChallenge(t, db, domain.CategorySlogan, yesterday)
	gen := &fakeGenerator{prompt: "Create a phrase that sells rain boots"}
	svc := NewChallengeService(db, gen)

	got, err := svc.GetOrCreate(context.Background(), domain.CategorySlogan, today)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if got.ID == old.ID || got.Date != today || got.Prompt != gen.prompt {
		t.Fatalf("expected a fresh challenge for today, got %+v", got)
	}
}

func TestChallenge_GetOrCreate_ConcurrentFirstRequests(t *testing.T) {
	for _, b := range dbBackends {
		t.Run(b.name, func(t *testing.T) {
			db := b.open(t)
			gen := &fakeGenerator{delay: 20 * time.Millisecond}
			svc := NewChallengeService(db, gen)

			const n = 20
			ids := make([]string, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					c, err := svc.GetOrCreate(context.Background(), domain.CategoryEmotion, today)
					if err != nil {
						t.Errorf("GetOrCreate: %v", err)
						return
					}
					ids[i] = c.ID
				}(i)
			}
			wg.Wait()

			for _, id := range ids {
				if id != ids[0] {
					t.Fatalf("callers saw different challenges: %v", ids)
				}
			}
			var count int64
			db.Model(&domain.Challenge{}).Where("category = ? AND date = ?", domain.CategoryEmotion, today).Count(&count)
			if count != 1 {
				t.Fatalf("stored %d rows, want 1", count)
			}
			if calls := gen.calls.Load(); calls != 1 {
				t.Fatalf("oracle called %d times, want 1", calls)
			}
		})
	}
}

func TestChallenge_GetOrCreate_LosingInsertReadsWinner(t *testing.T) {
	db := newTestDB(t)
	var winner *domain.Challenge
	gen := &fakeGenerator{}
	// Another process stores the row while this one waits on the oracle.
	gen.hook = func() {
		w, err := repo.CreateChallenge(context.Background(), db, domain.CategoryDialogue, today, "Create a phrase that wins")
		if err != nil {
			t.Errorf("winner insert: %v", err)
		}
		winner = w
	}
	svc := NewChallengeService(db, gen)

	got, err := svc.GetOrCreate(context.Background(), domain.CategoryDialogue, today)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if winner == nil || got.ID != winner.ID {
		t.Fatalf("expected the winner's row, got %+v", got)
	}
}

func TestChallenge_GetOrCreate_OracleFailureStoresNothing(t *testing.T) {
	db := newTestDB(t)
	cause := errors.New("model overloaded")
	svc := NewChallengeService(db, &fakeGenerator{err: cause})

	_, err := svc.GetOrCreate(context.Background(), domain.CategoryTinyStory, today)
	if !errors.Is(err, ErrChallengeGeneration) || !errors.Is(err, cause) {
		t.Fatalf("expected ErrChallengeGeneration wrapping cause, got %v", err)
	}
	var count int64
	db.Model(&domain.Challenge{}).Count(&count)
	if count != 0 {
		t.Fatalf("no challenge may be stored on failure, found %d", count)
	}
}

func TestChallenge_GetOrCreate_InvalidCategory(t *testing.T) {
	svc := NewChallengeService(newTestDB(t), &fakeGenerator{})
	if _, err := svc.GetOrCreate(context.Background(), domain.Category("haiku"), today); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestChallenge_Get(t *testing.T) {
	db := newTestDB(t)
	c := mustChallenge(t, db, domain.CategoryIdiom, today)
	svc := NewChallengeService(db, &fakeGenerator{})

	got, err := svc.Get(context.Background(), c.ID)
	if err != nil || got.ID != c.ID {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrInvalidChallenge) {
		t.Fatalf("expected ErrInvalidChallenge, got %v", err)
	}
}
