// Package jobs runs the background work of the game server: re-aggregating
// the daily leaderboards and purging expired preview markers.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

// Aggregator recomputes every category's leaderboard for one day.
type Aggregator interface {
	UpdateAll(ctx context.Context, date string) error
}

// LeaderboardJob re-materializes the leaderboards once a day at Hour:Minute
// in the clock's zone. Each run covers yesterday and the day before: votes
// for day D arrive during D+1, so D is recomputed once more after they close.
type LeaderboardJob struct {
	Leaderboards Aggregator
	DB           *gorm.DB // preview purge; nil skips it
	Clock        *clock.Policy
	Hour, Minute int

	requests chan struct{}
	once     sync.Once

	mu      sync.RWMutex
	lastRun time.Time
}

func (j *LeaderboardJob) init() {
	j.once.Do(func() { j.requests = make(chan struct{}) })
}

// Run blocks until ctx is done, running the job at the scheduled time and
// whenever Trigger is called.
func (j *LeaderboardJob) Run(ctx context.Context) {
	j.init()
	timer := time.NewTimer(time.Until(j.Clock.NextAt(j.Hour, j.Minute)))
	defer timer.Stop()

	log.Info().
		Time("next_run", j.Clock.NextAt(j.Hour, j.Minute)).
		Msg("leaderboard scheduler started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-j.requests:
		case <-timer.C:
			timer.Reset(time.Until(j.Clock.NextAt(j.Hour, j.Minute)))
		}
		if err := j.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("leaderboard job failed")
		}
	}
}

// Trigger asks a running Run loop for an immediate run. It reports false
// when the loop is busy or not running.
func (j *LeaderboardJob) Trigger() bool {
	j.init()
	select {
	case j.requests <- struct{}{}:
		return true
	default:
		return false
	}
}

// LastRun is the completion time of the latest run, zero before the first.
func (j *LeaderboardJob) LastRun() time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastRun
}

// RunOnce aggregates yesterday and the day before, then purges expired
// preview markers. Every step runs even if an earlier one fails.
func (j *LeaderboardJob) RunOnce(ctx context.Context) error {
	yesterday := j.Clock.Yesterday()
	days := []string{clock.AddDays(yesterday, -1), yesterday}

	var errs []error
	for _, d := range days {
		if err := j.Leaderboards.UpdateAll(ctx, d); err != nil {
			errs = append(errs, fmt.Errorf("leaderboard %s: %w", d, err))
		}
	}

	if j.DB != nil {
		n, err := repo.PurgeExpired(ctx, j.DB, time.Now().UTC())
		if err != nil {
			errs = append(errs, fmt.Errorf("purge previews: %w", err))
		} else if n > 0 {
			log.Info().Int64("rows", n).Msg("expired previews purged")
		}
	}

	j.mu.Lock()
	j.lastRun = time.Now()
	j.mu.Unlock()

	err := errors.Join(errs...)
	if err == nil {
		log.Info().Strs("days", days).Msg("leaderboards refreshed")
	}
	return err
}
