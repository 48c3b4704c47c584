// Package services – SubmissionService
//
// SubmissionService owns the submission ledger. A player gets one final
// submission per category per day. A submission is either scored and stored
// in one step, or previewed first: the oracle grades the phrase, the score is
// shown, and a marker remembers the preview so a real submit of the same
// phrase is flagged scored_first. The real submit always asks the oracle
// again.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/clock"
	"github.com/tbourn/phrase-craze-backend/internal/domain"
	"github.com/tbourn/phrase-craze-backend/internal/observability"
	"github.com/tbourn/phrase-craze-backend/internal/oracle"
	"github.com/tbourn/phrase-craze-backend/internal/preview"
	"github.com/tbourn/phrase-craze-backend/internal/repo"
	"github.com/tbourn/phrase-craze-backend/internal/streak"
)

const (
	defaultMinPhraseRunes = 3
	defaultPreviewTTL     = 36 * time.Hour
	votingPairSize        = 2
)

// SubmissionService validates, scores and records submissions.
type SubmissionService struct {
	DB       *gorm.DB
	Scorer   oracle.Scorer
	Previews preview.Store

	MinPhraseRunes int           // defaults to 3
	MaxPhraseRunes int           // 0 disables the upper bound
	PreviewTTL     time.Duration // defaults to 36h

	Now func() time.Time
}

// SubmitInput is a request to submit or preview a phrase.
type SubmitInput struct {
	UserID      string
	ChallengeID string
	Phrase      string
	ScoreFirst  bool
}

// SubmissionResult reports the outcome of Submit. Submission is nil for a
// preview.
type SubmissionResult struct {
	Submission       *domain.Submission `json:"submission,omitempty"`
	Preview          bool               `json:"preview"`
	Score            int                `json:"score"`
	Feedback         string             `json:"feedback"`
	SubmissionStreak int                `json:"submission_streak,omitempty"`
}

// PreviewStatus tells a client whether a score preview exists for a challenge.
type PreviewStatus struct {
	ChallengeID string    `json:"challenge_id"`
	Previewed   bool      `json:"previewed"`
	Phrase      string    `json:"phrase,omitempty"`
	Score       int       `json:"score,omitempty"`
	Feedback    string    `json:"feedback,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

func (s *SubmissionService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *SubmissionService) checkPhrase(phrase string) error {
	lo := s.MinPhraseRunes
	if lo <= 0 {
		lo = defaultMinPhraseRunes
	}
	n := utf8.RuneCountInString(phrase)
	if n < lo {
		return ErrPhraseTooShort
	}
	if s.MaxPhraseRunes > 0 && n > s.MaxPhraseRunes {
		return ErrPhraseTooLong
	}
	return nil
}

// Submit records a final submission for today's challenge, or with
// ScoreFirst only grades the phrase and remembers the preview.
//
// Errors: ErrPhraseTooShort, ErrPhraseTooLong, ErrUserNotFound,
// ErrInvalidChallenge, ErrChallengeClosed, ErrAlreadySubmitted,
// ErrPreviewUsed and ErrScoringUnavailable (wrapped with its cause).
func (s *SubmissionService) Submit(ctx context.Context, in SubmitInput, today string) (*SubmissionResult, error) {
	ctx, span := otel.Tracer("services/SubmissionService").Start(ctx, "Submit",
		trace.WithAttributes(
			attribute.String("user.id", in.UserID),
			attribute.String("challenge.id", in.ChallengeID),
			attribute.Bool("score_first", in.ScoreFirst),
		),
	)
	defer span.End()

	phrase := strings.TrimSpace(in.Phrase)
	if err := s.checkPhrase(phrase); err != nil {
		return nil, err
	}

	user, err := repo.GetUser(ctx, s.DB, in.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	ch, err := repo.GetChallenge(ctx, s.DB, in.ChallengeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidChallenge
		}
		return nil, err
	}
	if ch.Date != today {
		return nil, ErrChallengeClosed
	}
	if _, err := repo.FindFinalSubmission(ctx, s.DB, user.ID, ch.Category, today); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !isNotFound(err) {
		return nil, err
	}

	marker, err := s.Previews.Get(ctx, user.ID, ch.ID)
	if err != nil {
		if !errors.Is(err, preview.ErrNotFound) {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("preview lookup failed")
		}
		marker = nil
	}

	if in.ScoreFirst {
		return s.preview(ctx, user, ch, phrase, marker)
	}

	score, err := s.Scorer.Score(ctx, phrase, ch.Category, ch.Prompt)
	if err != nil {
		span.RecordError(err)
		return nil, dependency(ErrScoringUnavailable, err)
	}

	sub := &domain.Submission{
		UserID:          user.ID,
		Username:        user.DisplayName(),
		ChallengeID:     ch.ID,
		Category:        ch.Category,
		Date:            today,
		Prompt:          ch.Prompt,
		Phrase:          phrase,
		InitialScore:    score.Value,
		ScoredFirst:     marker != nil && marker.Phrase == phrase,
		FinalSubmission: true,
	}
	var streakLen int
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := repo.GetUserForUpdate(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if err := repo.CreateSubmission(ctx, tx, sub); err != nil {
			if repo.IsDuplicate(err) {
				return ErrAlreadySubmitted
			}
			return err
		}
		if _, err := streak.Update(u, streak.Submission, today); err != nil {
			return err
		}
		changes, err := streak.Changes(u, streak.Submission)
		if err != nil {
			return err
		}
		streakLen = u.SubmissionStreak
		return repo.UpdateUserFields(ctx, tx, u.ID, changes)
	})
	if err != nil {
		return nil, err
	}

	if marker != nil {
		if err := s.Previews.Delete(ctx, user.ID, ch.ID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID).Msg("preview cleanup failed")
		}
	}
	observability.Submissions.WithLabelValues("direct").Inc()

	return &SubmissionResult{
		Submission:       sub,
		Score:            score.Value,
		Feedback:         score.Feedback,
		SubmissionStreak: streakLen,
	}, nil
}

// preview grades phrase without storing a submission. Repeating the same
// phrase returns the remembered preview without another oracle call.
func (s *SubmissionService) preview(ctx context.Context, user *domain.User, ch *domain.Challenge, phrase string, marker *domain.ScorePreview) (*SubmissionResult, error) {
	if marker != nil {
		if marker.Phrase != phrase {
			return nil, ErrPreviewUsed
		}
		return &SubmissionResult{Preview: true, Score: marker.Score, Feedback: marker.Feedback}, nil
	}

	score, err := s.Scorer.Score(ctx, phrase, ch.Category, ch.Prompt)
	if err != nil {
		return nil, dependency(ErrScoringUnavailable, err)
	}

	ttl := s.PreviewTTL
	if ttl <= 0 {
		ttl = defaultPreviewTTL
	}
	now := s.now()
	p := &domain.ScorePreview{
		UserID:      user.ID,
		ChallengeID: ch.ID,
		Phrase:      phrase,
		Score:       score.Value,
		Feedback:    score.Feedback,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
	if err := s.Previews.Put(ctx, p); err != nil {
		return nil, err
	}
	observability.Submissions.WithLabelValues("preview").Inc()

	return &SubmissionResult{Preview: true, Score: score.Value, Feedback: score.Feedback}, nil
}

// PreviewStatus reports whether userID already previewed a score for
// challengeID.
func (s *SubmissionService) PreviewStatus(ctx context.Context, userID, challengeID string) (*PreviewStatus, error) {
	if _, err := repo.GetChallenge(ctx, s.DB, challengeID); err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidChallenge
		}
		return nil, err
	}
	p, err := s.Previews.Get(ctx, userID, challengeID)
	if errors.Is(err, preview.ErrNotFound) {
		return &PreviewStatus{ChallengeID: challengeID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &PreviewStatus{
		ChallengeID: challengeID,
		Previewed:   true,
		Phrase:      p.Phrase,
		Score:       p.Score,
		Feedback:    p.Feedback,
		ExpiresAt:   p.ExpiresAt,
	}, nil
}

// VotingPair returns two random submissions from the voting day (the day
// before today) in category, none of them written by voterID.
func (s *SubmissionService) VotingPair(ctx context.Context, category domain.Category, voterID, today string) ([]domain.Submission, error) {
	ctx, span := otel.Tracer("services/SubmissionService").Start(ctx, "VotingPair",
		trace.WithAttributes(attribute.String("category", category.String())),
	)
	defer span.End()

	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	subs, err := repo.RandomSubmissions(ctx, s.DB, category, clock.AddDays(today, -1), voterID, votingPairSize)
	if err != nil {
		return nil, err
	}
	if len(subs) < votingPairSize {
		return nil, ErrNotEnoughSubmissions
	}
	return subs, nil
}
