// Package services – VoteService
//
// VoteService enforces the voting rules. Players vote on the previous day's
// submissions, at most Quota times per category. The quota is a conditional
// increment on the voter's tally row, so concurrent votes by the same player
// cannot overshoot it.
package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/streak"
)

// DefaultVoteQuota is the number of votes per category per voting day.
const DefaultVoteQuota = 5

// VoteService casts votes and reports quota state.
type VoteService struct {
	DB    *gorm.DB
	Quota int // defaults to DefaultVoteQuota

	Now func() time.Time
}

// Quota state for one voter, category and voting day.
type Quota struct {
	Category  domain.Category `json:"category"`
	VotingDay string          `json:"voting_day"`
	Used      int             `json:"used"`
	Remaining int             `json:"remaining"`
	Limit     int             `json:"limit"`
}

func (s *VoteService) quota() int {
	if s.Quota > 0 {
		return s.Quota
	}
	return DefaultVoteQuota
}

func (s *VoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Cast records voterID's vote for submissionID and returns the votes left in
// category for the voting day (the day before today).
//
// Errors: ErrInvalidCategory, ErrSubmissionNotFound, ErrUserNotFound,
// ErrSelfVote, ErrVoteWindowClosed and ErrQuotaExceeded.
func (s *VoteService) Cast(ctx context.Context, voterID, submissionID string, category domain.Category, today string) (remaining int, err error) {
	ctx, span := otel.Tracer("services/VoteService").Start(ctx, "Cast",
		trace.WithAttributes(
			attribute.String("user.id", voterID),
			attribute.String("submission.id", submissionID),
			attribute.String("category", category.String()),
		),
	)
	defer span.End()
	defer func() { observability.Votes.WithLabelValues(voteResult(err)).Inc() }()

	if !category.Valid() {
		return 0, ErrInvalidCategory
	}
	votingDay := clock.AddDays(today, -1)

	sub, err := repo.GetSubmission(ctx, s.DB, submissionID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrSubmissionNotFound
		}
		return 0, err
	}
	voter, err := repo.GetUser(ctx, s.DB, voterID)
	if err != nil {
		if isNotFound(err) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	if isOwnSubmission(voter, sub) {
		return 0, ErrSelfVote
	}
	if sub.Category != category {
		return 0, ErrInvalidCategory
	}
	if sub.Date != votingDay || !sub.FinalSubmission {
		return 0, ErrVoteWindowClosed
	}

	quota := s.quota()
	var used int
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserForUpdate(ctx, tx, voterID)
		if err != nil {
			return err
		}
		used, err = repo.ConsumeVote(ctx, tx, voterID, category, votingDay, quota)
		if err != nil {
			if errors.Is(err, repo.ErrQuotaExhausted) {
				return ErrQuotaExceeded
			}
			return err
		}
		if err := repo.IncrementVotes(ctx, tx, sub.ID); err != nil {
			return err
		}
		daily, err := repo.VotesUsedOnDay(ctx, tx, voterID, votingDay)
		if err != nil {
			return err
		}
		if _, err := streak.Update(u, streak.Voting, today); err != nil {
			return err
		}
		changes, err := streak.Changes(u, streak.Voting)
		if err != nil {
			return err
		}
		changes["daily_votes"] = daily
		changes["last_vote_at"] = s.now()
		return repo.UpdateUserFields(ctx, tx, voterID, changes)
	})
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("votes.used", used))
	return max(0, quota-used), nil
}

// Remaining reports voterID's quota for category on the voting day.
func (s *VoteService) Remaining(ctx context.Context, voterID string, category domain.Category, today string) (*Quota, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	day := clock.AddDays(today, -1)
	used, err := repo.VotesUsed(ctx, s.DB, voterID, category, day)
	if err != nil {
		return nil, err
	}
	limit := s.quota()
	return &Quota{
		Category:  category,
		VotingDay: day,
		Used:      used,
		Remaining: max(0, limit-used),
		Limit:     limit,
	}, nil
}

// isOwnSubmission matches by author id, and by the stored author name when
// both names are set.
func isOwnSubmission(voter *domain.User, sub *domain.Submission) bool {
	if sub.UserID == voter.ID {
		return true
	}
	name := voter.DisplayName()
	return name != "" && sub.Username == name
}

func voteResult(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrSelfVote):
		return "self_vote"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrVoteWindowClosed):
		return "window_closed"
	case errors.Is(err, ErrSubmissionNotFound):
		return "not_found"
	default:
		return "error"
	}
}
