package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/services"
)

func TestGetMe(t *testing.T) {
	r := newTestRouter(t, Services{Users: stubUsers{
		get: func(_ context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				return nil, services.ErrUserNotFound
			}
			return &domain.User{ID: id, LoginStreak: 4}, nil
		},
	}}, Options{})

	w := do(r, http.MethodGet, "/me", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if u := decode[domain.User](t, w); u.ID != "u1" || u.LoginStreak != 4 {
		t.Fatalf("user=%+v", u)
	}
	assertError(t, do(r, http.MethodGet, "/me", "ghost", nil), http.StatusNotFound, "user_not_found")
	assertError(t, do(r, http.MethodGet, "/me", "", nil), http.StatusUnauthorized, "unauthorized")
}

func TestCheckIn(t *testing.T) {
	var gotDay string
	r := newTestRouter(t, Services{Users: stubUsers{
		checkIn: func(_ context.Context, id, today string) (*services.CheckInResult, error) {
			gotDay = today
			return &services.CheckInResult{User: &domain.User{ID: id, LoginStreak: 2}, Outcome: "continued"}, nil
		},
	}}, Options{})

	w := do(r, http.MethodPost, "/me/checkin", "u1", nil)
	if w.Code != http.StatusOK || gotDay != testToday {
		t.Fatalf("status=%d day=%s", w.Code, gotDay)
	}
	if res := decode[services.CheckInResult](t, w); res.Outcome != "continued" || res.User.LoginStreak != 2 {
		t.Fatalf("result=%+v", res)
	}
}

func TestRename(t *testing.T) {
	r := newTestRouter(t, Services{Users: stubUsers{
		rename: func(_ context.Context, id, name string) (*domain.User, error) {
			switch name {
			case "taken":
				return nil, services.ErrNameTaken
			case "x":
				return nil, services.ErrInvalidName
			}
			return &domain.User{ID: id, Name: &name}, nil
		},
	}}, Options{})

	w := do(r, http.MethodPut, "/me/name", "u1", RenameRequest{Name: "ada_l"})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if u := decode[domain.User](t, w); u.DisplayName() != "ada_l" {
		t.Fatalf("user=%+v", u)
	}
	assertError(t, do(r, http.MethodPut, "/me/name", "u1", RenameRequest{Name: "taken"}), http.StatusConflict, "name_taken")
	assertError(t, do(r, http.MethodPut, "/me/name", "u1", RenameRequest{Name: "x"}), http.StatusBadRequest, "invalid_name")
	assertError(t, do(r, http.MethodPut, "/me/name", "u1", `{"name":"  "}`), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestSuggestNames(t *testing.T) {
	r := newTestRouter(t, Services{}, Options{})

	w := do(r, http.MethodGet, "/me/name/suggestions", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := decode[NameSuggestionsResponse](t, w); len(got.Names) != 3 || got.Names[0] != "Adventurous Banana" {
		t.Fatalf("names=%q", got.Names)
	}
	assertError(t, do(r, http.MethodGet, "/me/name/suggestions", "", nil), http.StatusUnauthorized, "unauthorized")

	broken := newTestRouter(t, Services{Users: stubUsers{
		suggest: func(context.Context) ([]string, error) { return nil, errors.New("db down") },
	}}, Options{})
	assertError(t, do(broken, http.MethodGet, "/me/name/suggestions", "u1", nil), http.StatusInternalServerError, ErrCodeInternal)
}

func TestCreateUser(t *testing.T) {
	r := newTestRouter(t, Services{Users: stubUsers{
		create: func(_ context.Context, email, name string, admin bool) (*domain.User, error) {
			if email == "dup@example.com" {
				return nil, services.ErrEmailTaken
			}
			return &domain.User{ID: "new", Email: email, IsAdmin: admin}, nil
		},
	}}, Options{})

	w := do(r, http.MethodPost, "/admin/users", "admin", CreateUserRequest{Email: "ada@example.com", Admin: true})
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d", w.Code)
	}
	if u := decode[domain.User](t, w); !u.IsAdmin || u.ID != "new" {
		t.Fatalf("user=%+v", u)
	}
	assertError(t, do(r, http.MethodPost, "/admin/users", "admin", CreateUserRequest{Email: "dup@example.com"}), http.StatusConflict, "email_taken")
	assertError(t, do(r, http.MethodPost, "/admin/users", "admin", `{}`), http.StatusBadRequest, ErrCodeBadRequest)
}

func TestBackfillNames(t *testing.T) {
	r := newTestRouter(t, Services{Users: stubUsers{
		backfill: func(_ context.Context, id string) (int64, error) {
			if id == "nameless" {
				return 0, services.ErrInvalidName
			}
			return 3, nil
		},
	}}, Options{})

	w := do(r, http.MethodPost, "/admin/users/u7/backfill-names", "admin", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if resp := decode[BackfillResponse](t, w); resp.Updated != 3 {
		t.Fatalf("resp=%+v", resp)
	}
	assertError(t, do(r, http.MethodPost, "/admin/users/nameless/backfill-names", "admin", nil), http.StatusBadRequest, "invalid_name")
}
