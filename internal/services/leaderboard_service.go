// Package services – LeaderboardService
//
// LeaderboardService materializes per-day scores and answers windowed
// leaderboard queries. A day's score for a player is the sum of
// initial_score and votes over their final submissions. Aggregating a day is
// idempotent: the stored rows always equal a fresh computation, so the job
// can rerun a day after late votes land.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

// Supported leaderboard timeframes.
const (
	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
	TimeframeAllTime = "all_time"
)

const defaultLeaderboardLimit = 10

// LeaderboardService aggregates and queries leaderboards.
type LeaderboardService struct {
	DB         *gorm.DB
	LaunchDate string // first day of the all-time window
	Limit      int    // rows per query, defaults to 10
}

// Standing is one ranked leaderboard row.
type Standing struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	TotalScore int64  `json:"total_score"`
}

// Leaderboard is the answer to a windowed query.
type Leaderboard struct {
	Category  domain.Category `json:"category"`
	Timeframe string          `json:"timeframe,omitempty"`
	Start     string          `json:"start"`
	End       string          `json:"end"`
	Standings []Standing      `json:"standings"`
}

// UpdateDaily recomputes the entries of (category, date).
func (s *LeaderboardService) UpdateDaily(ctx context.Context, category domain.Category, date string) (err error) {
	ctx, span := otel.Tracer("services/LeaderboardService").Start(ctx, "UpdateDaily",
		trace.WithAttributes(
			attribute.String("category", category.String()),
			attribute.String("day", date),
		),
	)
	defer span.End()
	defer func() { observability.LeaderboardRuns.WithLabelValues(observability.Outcome(err)).Inc() }()

	if !category.Valid() {
		return ErrInvalidCategory
	}
	if _, perr := clock.ParseDay(date); perr != nil {
		return ErrInvalidDate
	}

	var rows int
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scores, err := repo.SumDailyScores(ctx, tx, category, date)
		if err != nil {
			return err
		}
		rows = len(scores)
		return repo.ReplaceDailyEntries(ctx, tx, category, date, scores)
	})
	if err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(attribute.Int("entries", rows))
	log.Ctx(ctx).Debug().
		Str("category", category.String()).
		Str("date", date).
		Int("entries", rows).
		Msg("leaderboard updated")
	return nil
}

// UpdateAll recomputes date for every category. A failing category does not
// stop the others; all failures are returned joined.
func (s *LeaderboardService) UpdateAll(ctx context.Context, date string) error {
	var errs []error
	for _, c := range domain.Categories {
		if err := s.UpdateDaily(ctx, c, date); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// Get ranks players by their summed score over [start, end].
func (s *LeaderboardService) Get(ctx context.Context, category domain.Category, start, end string) ([]Standing, error) {
	ctx, span := otel.Tracer("services/LeaderboardService").Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("category", category.String()),
			attribute.String("start", start),
			attribute.String("end", end),
		),
	)
	defer span.End()

	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	limit := s.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	rows, err := repo.TopScores(ctx, s.DB, category, start, end, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Standing, 0, len(rows))
	for i, r := range rows {
		out = append(out, Standing{
			Rank:       i + 1,
			UserID:     r.UserID,
			Username:   r.Username,
			TotalScore: r.TotalScore,
		})
	}
	return out, nil
}

// Query resolves timeframe against today and returns the ranked window.
func (s *LeaderboardService) Query(ctx context.Context, category domain.Category, timeframe, today string) (*Leaderboard, error) {
	start, end, err := s.Window(timeframe, today)
	if err != nil {
		return nil, err
	}
	standings, err := s.Get(ctx, category, start, end)
	if err != nil {
		return nil, err
	}
	return &Leaderboard{
		Category:  category,
		Timeframe: normalizeTimeframe(timeframe),
		Start:     start,
		End:       end,
		Standings: standings,
	}, nil
}

// Window returns the inclusive date range of timeframe. Every window ends
// yesterday, the last day whose votes are final:
//   - daily: yesterday only
//   - weekly: the seven days ending yesterday
//   - monthly: the first of yesterday's month through yesterday
//   - all_time: the launch date through yesterday
func (s *LeaderboardService) Window(timeframe, today string) (start, end string, err error) {
	if _, perr := clock.ParseDay(today); perr != nil {
		return "", "", ErrInvalidDate
	}
	end = clock.AddDays(today, -1)
	switch normalizeTimeframe(timeframe) {
	case TimeframeDaily:
		return end, end, nil
	case TimeframeWeekly:
		return clock.AddDays(end, -6), end, nil
	case TimeframeMonthly:
		return clock.FirstOfMonth(end), end, nil
	case TimeframeAllTime:
		start = s.LaunchDate
		if start == "" || start > end {
			start = end
		}
		return start, end, nil
	}
	return "", "", ErrInvalidTimeframe
}

func normalizeTimeframe(tf string) string {
	tf = strings.ToLower(strings.TrimSpace(tf))
	switch tf {
	case "", "day":
		return TimeframeDaily
	case "week":
		return TimeframeWeekly
	case "month":
		return TimeframeMonthly
	case "alltime", "all-time", "all":
		return TimeframeAllTime
	}
	return tf
}
