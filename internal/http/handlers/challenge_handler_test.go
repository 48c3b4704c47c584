package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

func TestListCategories(t *testing.T) {
	r := newTestRouter(t, Services{}, Options{})

	w := do(r, http.MethodGet, "/categories", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	got := decode[ListCategoriesResponse](t, w)
	if len(got.Categories) != len(domain.Categories) {
		t.Fatalf("categories=%d", len(got.Categories))
	}
	if got.Categories[0].ID != domain.CategoryTinyStory || got.Categories[0].Name != "Tiny Story" {
		t.Fatalf("first=%+v", got.Categories[0])
	}
}

func TestGetChallenge(t *testing.T) {
	var gotCat domain.Category
	var gotDay string
	r := newTestRouter(t, Services{Challenges: stubChallenges{
		getOrCreate: func(_ context.Context, cat domain.Category, today string) (*domain.Challenge, error) {
			gotCat, gotDay = cat, today
			return &domain.Challenge{ID: "ch-1", Category: cat, Date: today, Prompt: "Write about rain."}, nil
		},
	}}, Options{})

	w := do(r, http.MethodGet, "/challenges/Tiny_Story", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if gotCat != domain.CategoryTinyStory || gotDay != testToday {
		t.Fatalf("service called with (%s, %s)", gotCat, gotDay)
	}
	if ch := decode[domain.Challenge](t, w); ch.Prompt != "Write about rain." || ch.ID != "ch-1" {
		t.Fatalf("challenge=%+v", ch)
	}
}

func TestGetChallenge_Errors(t *testing.T) {
	r := newTestRouter(t, Services{Challenges: stubChallenges{
		getOrCreate: func(context.Context, domain.Category, string) (*domain.Challenge, error) {
			return nil, &services.DependencyError{Sentinel: services.ErrChallengeGeneration, Cause: errors.New("quota")}
		},
	}}, Options{})

	t.Run("anonymous", func(t *testing.T) {
		assertError(t, do(r, http.MethodGet, "/challenges/idiom", "", nil), http.StatusUnauthorized, "unauthorized")
	})
	t.Run("unknown category", func(t *testing.T) {
		assertError(t, do(r, http.MethodGet, "/challenges/poetry", "u1", nil), http.StatusBadRequest, "invalid_category")
	})
	t.Run("generation failed", func(t *testing.T) {
		assertError(t, do(r, http.MethodGet, "/challenges/idiom", "u1", nil), http.StatusServiceUnavailable, "challenge_unavailable")
	})
}

func TestGetPreviewStatus(t *testing.T) {
	r := newTestRouter(t, Services{Submissions: stubSubmissions{
		previewStatus: func(_ context.Context, user, ch string) (*services.PreviewStatus, error) {
			if ch == "missing" {
				return nil, services.ErrInvalidChallenge
			}
			return &services.PreviewStatus{ChallengeID: ch, Previewed: user == "u1", Score: 7}, nil
		},
	}}, Options{})

	w := do(r, http.MethodGet, "/previews/ch-1", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if st := decode[services.PreviewStatus](t, w); !st.Previewed || st.Score != 7 || st.ChallengeID != "ch-1" {
		t.Fatalf("status=%+v", st)
	}

	assertError(t, do(r, http.MethodGet, "/previews/missing", "u1", nil), http.StatusBadRequest, "invalid_challenge")
}
