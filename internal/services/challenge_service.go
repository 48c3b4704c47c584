// Package services – ChallengeService
//
// ChallengeService hands out the daily challenge of each category. The first
// request of a day asks the oracle for a prompt and stores it; later requests
// read the stored row. Concurrent first requests in one process share a
// single oracle call, and the (category, date) unique index settles races
// between processes.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
	"github.com/tbourn/phrase-craze-backend/internal/oracle"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

// ChallengeService is the daily challenge cache.
type ChallengeService struct {
	DB     *gorm.DB
	Oracle oracle.ChallengeGenerator

	flight singleflight.Group
}

// NewChallengeService wires a cache over db and gen.
func NewChallengeService(db *gorm.DB, gen oracle.ChallengeGenerator) *ChallengeService {
	return &ChallengeService{DB: db, Oracle: gen}
}

// GetOrCreate returns the challenge for (category, today), generating it on
// the first request of the day. An oracle failure yields
// ErrChallengeGeneration and stores nothing.
func (s *ChallengeService) GetOrCreate(ctx context.Context, category domain.Category, today string) (*domain.Challenge, error) {
	ctx, span := otel.Tracer("services/ChallengeService").Start(ctx, "GetOrCreate",
		trace.WithAttributes(
			attribute.String("category", category.String()),
			attribute.String("day", today),
		),
	)
	defer span.End()

	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	latest, err := repo.LatestChallenge(ctx, s.DB, category)
	switch {
	case err == nil && latest.Date == today:
		observability.ChallengeCache.WithLabelValues("hit").Inc()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return latest, nil
	case err != nil && !isNotFound(err):
		return nil, err
	}

	// The flight outlives any single caller so one cancelled request does
	// not fail the others waiting on it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.flight.Do(category.String()+"|"+today, func() (any, error) {
		return s.create(flightCtx, category, today)
	})
	if err != nil {
		observability.ChallengeCache.WithLabelValues("error").Inc()
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))
	return v.(*domain.Challenge), nil
}

func (s *ChallengeService) create(ctx context.Context, category domain.Category, today string) (*domain.Challenge, error) {
	// A flight that finished just before this one may already have stored it.
	if c, err := repo.GetChallengeForDay(ctx, s.DB, category, today); err == nil {
		observability.ChallengeCache.WithLabelValues("hit").Inc()
		return c, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	prompt, err := s.Oracle.Generate(ctx, category)
	if err != nil {
		return nil, dependency(ErrChallengeGeneration, err)
	}

	c, err := repo.CreateChallenge(ctx, s.DB, category, today, prompt)
	if err != nil {
		if repo.IsDuplicate(err) {
			// Another process won the insert; serve its row.
			return repo.GetChallengeForDay(ctx, s.DB, category, today)
		}
		return nil, err
	}
	observability.ChallengeCache.WithLabelValues("miss").Inc()
	return c, nil
}

// Get returns a challenge by id.
func (s *ChallengeService) Get(ctx context.Context, id string) (*domain.Challenge, error) {
	c, err := repo.GetChallenge(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidChallenge
	}
	return c, err
}
