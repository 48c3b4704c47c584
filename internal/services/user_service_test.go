package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

func TestCheckIn_Streaks(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()
	u := mustUser(t, db, "ada")

	steps := []struct {
		day     string
		outcome string
		streak  int
	}{
		{"2025-03-08", "reset", 1},
		{"2025-03-08", "unchanged", 1},
		{"2025-03-09", "continued", 2},
		{"2025-03-10", "continued", 3},
		{"2025-03-12", "reset", 1},
	}
	for _, s := range steps {
		res, err := svc.CheckIn(ctx, u.ID, s.day)
		if err != nil {
			t.Fatalf("CheckIn %s: %v", s.day, err)
		}
		if res.Outcome != s.outcome || res.User.LoginStreak != s.streak {
			t.Fatalf("CheckIn %s = %s/%d, want %s/%d", s.day, res.Outcome, res.User.LoginStreak, s.outcome, s.streak)
		}
		stored, _ := repo.GetUser(ctx, db, u.ID)
		if stored.LoginStreak != s.streak || *stored.LastLoginDate != s.day {
			t.Fatalf("stored after %s: %+v", s.day, stored)
		}
	}

	if _, err := svc.CheckIn(ctx, "ghost", today); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRename(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()
	ada := mustUser(t, db, "ada")
	mustUser(t, db, "bea")
	sub := mustSubmission(t, db, ada, domain.CategoryIdiom, yesterday, 5)

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too short", "ab", ErrInvalidName},
		{"double space", "ada  lovelace", ErrInvalidName},
		{"too long", strings.Repeat("a", 33), ErrInvalidName},
		{"taken", "bea", ErrNameTaken},
		{"same name", "ada", nil},
		{"two words", "Ada Lovelace", nil},
		{"new name", "  countess_1815 ", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Rename(ctx, ada.ID, tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	u, _ := svc.Get(ctx, ada.ID)
	if u.DisplayName() != "countess_1815" {
		t.Fatalf("name = %q", u.DisplayName())
	}
	old, _ := repo.GetSubmission(ctx, db, sub.ID)
	if old.Username != "ada" {
		t.Fatalf("rename must not touch past submissions, got %q", old.Username)
	}

	n, err := svc.BackfillSubmissionNames(ctx, ada.ID)
	if err != nil || n != 1 {
		t.Fatalf("Backfill = %d, %v", n, err)
	}
	old, _ = repo.GetSubmission(ctx, db, sub.ID)
	if old.Username != "countess_1815" {
		t.Fatalf("backfilled name = %q", old.Username)
	}
}

func TestBackfill_RequiresName(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	u := mustUser(t, db, "")
	if _, err := svc.BackfillSubmissionNames(context.Background(), u.ID); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.BackfillSubmissionNames(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	ctx := context.Background()

	u, err := svc.Create(ctx, " Ada@Example.com ", "ada", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "ada@example.com" || u.DisplayName() != "ada" || !u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}

	tests := []struct {
		name, email, display string
		want                 error
	}{
		{"bad email", "not-an-email", "", ErrInvalidEmail},
		{"display form", "Ada <ada@example.com>", "", ErrInvalidEmail},
		{"bad name", "bea@example.com", "b!", ErrInvalidName},
		{"name taken", "bea@example.com", "ada", ErrNameTaken},
		{"email taken", "ada@example.com", "", ErrEmailTaken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.email, tc.display, false); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	anon, err := svc.Create(ctx, "cal@example.com", "", false)
	if err != nil || anon.Name != nil {
		t.Fatalf("nameless create = %+v, %v", anon, err)
	}
}

// seqIntN returns the given indexes in order, then repeats the last one.
func seqIntN(idx ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := idx[min(i, len(idx)-1)]
		i++
		return v % n
	}
}

func TestSuggestNames_RenameToSuggestion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ada := mustUser(t, db, "ada")

	// (0,0) "Adventurous Banana", (0,0) again, then (4,0) "Bold Banana",
	// (1,1) "Amusing Muffin".
	svc := &UserService{DB: db, IntN: seqIntN(0, 0, 0, 0, 4, 0, 1, 1)}
	names, err := svc.SuggestNames(ctx)
	if err != nil {
		t.Fatalf("SuggestNames: %v", err)
	}
	want := []string{"Adventurous Banana", "Bold Banana", "Amusing Muffin"}
	if !slices.Equal(names, want) {
		t.Fatalf("names = %q, want %q", names, want)
	}

	u, err := svc.Rename(ctx, ada.ID, names[0])
	if err != nil {
		t.Fatalf("Rename to suggestion: %v", err)
	}
	if u.DisplayName() != "Adventurous Banana" {
		t.Fatalf("name = %q", u.DisplayName())
	}

	// Taken names are not offered again.
	svc.IntN = seqIntN(0, 0, 4, 0, 1, 1, 2, 2)
	names, err = svc.SuggestNames(ctx)
	if err != nil {
		t.Fatalf("SuggestNames: %v", err)
	}
	if slices.Contains(names, "Adventurous Banana") || len(names) != SuggestionCount {
		t.Fatalf("names = %q", names)
	}
}

func TestSuggestNames_AllValid(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	names, err := svc.SuggestNames(context.Background())
	if err != nil {
		t.Fatalf("SuggestNames: %v", err)
	}
	if len(names) != SuggestionCount {
		t.Fatalf("got %d names", len(names))
	}
	for _, a := range nameAdjectives {
		for _, n := range nameNouns {
			if name := a + " " + n; !validName(name) {
				t.Fatalf("word pair %q is not a valid name", name)
			}
		}
	}
}

func TestCreate_SuggestedStyleName(t *testing.T) {
	db := newTestDB(t)
	svc := &UserService{DB: db}
	u, err := svc.Create(context.Background(), "bo@example.com", "Bold Ice Cream", false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.DisplayName() != "Bold Ice Cream" {
		t.Fatalf("name = %q", u.DisplayName())
	}
}
