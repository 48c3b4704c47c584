// Package services – UserService
//
// UserService covers the player profile: login check-ins, display names and
// the explicit backfill of author names on past submissions. Registration and
// credentials belong to the external auth flow; Create exists for operators
// and tests.
package services

import (
	"context"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/streak"
)

// Display names are words of letters, digits, '_' and '-' separated by
// single spaces, 3 to 32 runes in total.
var nameRE = regexp.MustCompile(`^[\p{L}\p{N}_-]+(?: [\p{L}\p{N}_-]+)*$`)

const (
	nameMinLen = 3
	nameMaxLen = 32

	// SuggestionCount is how many names SuggestNames offers.
	SuggestionCount = 3
)

func validName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= nameMinLen && n <= nameMaxLen && nameRE.MatchString(name)
}

// UserService manages player profiles.
type UserService struct {
	DB *gorm.DB

	// IntN picks suggestion words; defaults to math/rand/v2.IntN.
	IntN func(n int) int
}

// CheckInResult reports the login streak after a check-in.
type CheckInResult struct {
	User    *domain.User `json:"user"`
	Outcome string       `json:"outcome"`
}

// Get returns the profile of id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Create registers a player. name may be empty.
func (s *UserService) Create(ctx context.Context, email, name string, admin bool) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	var namePtr *string
	if name = strings.TrimSpace(name); name != "" {
		if !validName(name) {
			return nil, ErrInvalidName
		}
		taken, err := repo.NameTaken(ctx, s.DB, name, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNameTaken
		}
		namePtr = &name
	}

	u, err := repo.CreateUser(ctx, s.DB, email, namePtr, admin)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// CheckIn records a login on today and advances the login streak.
func (s *UserService) CheckIn(ctx context.Context, userID, today string) (*CheckInResult, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "CheckIn",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	var res CheckInResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		out, err := streak.Update(u, streak.Login, today)
		if err != nil {
			return err
		}
		res = CheckInResult{User: u, Outcome: out.String()}
		if out == streak.Unchanged {
			return nil
		}
		changes, err := streak.Changes(u, streak.Login)
		if err != nil {
			return err
		}
		return repo.UpdateUserFields(ctx, tx, u.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Rename sets the display name of userID. Past submissions keep the name
// they were written under until BackfillSubmissionNames runs.
func (s *UserService) Rename(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if !validName(name) {
		return nil, ErrInvalidName
	}

	var out *domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserForUpdate(ctx, tx, userID)
		if err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}
		if u.DisplayName() == name {
			out = u
			return nil
		}
		taken, err := repo.NameTaken(ctx, tx, name, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		if err := repo.UpdateUserFields(ctx, tx, userID, map[string]any{"name": name}); err != nil {
			if repo.IsDuplicate(err) {
				return ErrNameTaken
			}
			return err
		}
		u.Name = &name
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// BackfillSubmissionNames rewrites the author name on all of userID's
// submissions to their current display name and returns the rows changed.
func (s *UserService) BackfillSubmissionNames(ctx context.Context, userID string) (int64, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	name := u.DisplayName()
	if name == "" {
		return 0, ErrInvalidName
	}
	return repo.BackfillSubmissionNames(ctx, s.DB, userID, name)
}

// SuggestNames offers SuggestionCount distinct "Adjective Noun" display
// names nobody uses yet. It stops after SuggestionCount*10 draws and may
// return fewer.
func (s *UserService) SuggestNames(ctx context.Context) ([]string, error) {
	intn := s.IntN
	if intn == nil {
		intn = defaultIntN
	}
	out := make([]string, 0, SuggestionCount)
	for tries := 0; len(out) < SuggestionCount && tries < SuggestionCount*10; tries++ {
		name := randomName(intn)
		if slices.Contains(out, name) {
			continue
		}
		taken, err := repo.NameTaken(ctx, s.DB, name, "")
		if err != nil {
			return nil, err
		}
		if !taken {
			out = append(out, name)
		}
	}
	return out, nil
}
