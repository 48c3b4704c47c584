// Package preview keeps score-first preview markers.
//
// A marker records that a player already saw an oracle score for a
// challenge before submitting. Markers live in the database by default, or
// in Redis when one is configured; both expire on their own.
package preview

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

// ErrNotFound is returned when no live marker exists.
var ErrNotFound = errors.New("preview not found")

// Store persists preview markers keyed by (user, challenge).
type Store interface {
	Get(ctx context.Context, userID, challengeID string) (*domain.ScorePreview, error)
	Put(ctx context.Context, p *domain.ScorePreview) error
	Delete(ctx context.Context, userID, challengeID string) error
}

// DBStore keeps markers in the score_previews table.
type DBStore struct {
	DB  *gorm.DB
	Now func() time.Time
}

var _ Store = (*DBStore)(nil)

func (s *DBStore) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Get returns the live marker or ErrNotFound.
func (s *DBStore) Get(ctx context.Context, userID, challengeID string) (*domain.ScorePreview, error) {
	p, err := repo.GetPreview(ctx, s.DB, userID, challengeID, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// Put inserts or replaces the marker.
func (s *DBStore) Put(ctx context.Context, p *domain.ScorePreview) error {
	return repo.PutPreview(ctx, s.DB, p)
}

// Delete removes the marker; a missing marker is not an error.
func (s *DBStore) Delete(ctx context.Context, userID, challengeID string) error {
	return repo.DeletePreview(ctx, s.DB, userID, challengeID)
}
