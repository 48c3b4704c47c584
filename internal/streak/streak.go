// Package streak tracks consecutive-day activity counters.
//
// One state machine serves every streak kind. A kind only selects which
// (counter, last-day) pair on the user row the machine reads and writes.
package streak

import (
	"fmt"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// Kind names one of the tracked activities.
type Kind string

const (
	Login      Kind = "login"
	Submission Kind = "submission"
	Voting     Kind = "voting"
)

// Outcome describes what Advance did.
type Outcome int

const (
	// Unchanged: activity already recorded for the day (or the stored day
	// is ahead of the given one).
	Unchanged Outcome = iota
	// Continued: the previous day was active, the counter grew by one.
	Continued
	// Reset: first activity or a gap of at least one day, counter is 1.
	Reset
)

func (o Outcome) String() string {
	switch o {
	case Continued:
		return "continued"
	case Reset:
		return "reset"
	default:
		return "unchanged"
	}
}

// Advance applies activity on today to a streak. last is nil when the
// activity has never happened. It returns the new counter, the new last day
// and what happened.
func Advance(count int, last *string, today string) (int, *string, Outcome) {
	if last != nil {
		switch {
		case *last == today, *last > today:
			return count, last, Unchanged
		case *last == clock.AddDays(today, -1):
			d := today
			return count + 1, &d, Continued
		}
	}
	d := today
	return 1, &d, Reset
}

// Update applies activity of the given kind on today to u in place.
func Update(u *domain.User, kind Kind, today string) (Outcome, error) {
	count, last, err := fields(u, kind)
	if err != nil {
		return Unchanged, err
	}
	n, d, out := Advance(*count, *last, today)
	*count, *last = n, d
	return out, nil
}

// Columns returns the (counter, last-day) column names for kind, for callers
// that persist with a partial update.
func Columns(kind Kind) (counter, lastDay string, err error) {
	switch kind {
	case Login:
		return "login_streak", "last_login_date", nil
	case Submission:
		return "submission_streak", "last_submission_date", nil
	case Voting:
		return "voting_streak", "last_voting_date", nil
	}
	return "", "", fmt.Errorf("unknown streak kind %q", kind)
}

func fields(u *domain.User, kind Kind) (*int, **string, error) {
	switch kind {
	case Login:
		return &u.LoginStreak, &u.LastLoginDate, nil
	case Submission:
		return &u.SubmissionStreak, &u.LastSubmissionDate, nil
	case Voting:
		return &u.VotingStreak, &u.LastVotingDate, nil
	}
	return nil, nil, fmt.Errorf("unknown streak kind %q", kind)
}

// Changes returns the current (counter, last-day) values of kind on u keyed
// by column name, ready for a partial update.
func Changes(u *domain.User, kind Kind) (map[string]any, error) {
	count, last, err := fields(u, kind)
	if err != nil {
		return nil, err
	}
	counter, lastDay, _ := Columns(kind)
	return map[string]any{counter: *count, lastDay: *last}, nil
}
