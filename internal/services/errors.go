// Package services implements the game rules: the daily challenge cache, the
// submission ledger, vote quotas, leaderboards and player profiles.
//
// This file centralizes service-level errors. Each sentinel carries a Kind
// that the transport maps to a status class and a stable Code that clients
// can branch on. Failures of an external dependency are wrapped in a
// DependencyError that still matches its sentinel with errors.Is.
package services

import (
	"errors"

	"github.com/tbourn/phrase-craze-backend/internal/repo"
)

// Kind classifies service errors.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindNotFound     Kind = "not_found"
	KindDependency   Kind = "dependency"
	KindPersistence  Kind = "persistence"
	KindUnauthorized Kind = "unauthorized"
)

// Error is a classified service error.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Validation errors.
var (
	ErrInvalidCategory  = newError(KindValidation, "invalid_category", "unknown category")
	ErrInvalidChallenge = newError(KindValidation, "invalid_challenge", "unknown challenge")
	ErrPhraseTooShort   = newError(KindValidation, "phrase_too_short", "phrase is too short")
	ErrPhraseTooLong    = newError(KindValidation, "phrase_too_long", "phrase is too long")
	ErrSelfVote         = newError(KindValidation, "self_vote", "cannot vote for your own submission")
	ErrInvalidName      = newError(KindValidation, "invalid_name", "name must be 3 to 32 characters: letters, digits, '_' or '-', words separated by single spaces")
	ErrInvalidEmail     = newError(KindValidation, "invalid_email", "email is invalid")
	ErrInvalidDate      = newError(KindValidation, "invalid_date", "date must be YYYY-MM-DD")
	ErrInvalidTimeframe = newError(KindValidation, "invalid_timeframe", "timeframe must be daily, weekly, monthly or all_time")
)

// Conflict errors.
var (
	ErrAlreadySubmitted = newError(KindConflict, "already_submitted", "already submitted for this category today")
	ErrChallengeClosed  = newError(KindConflict, "challenge_closed", "challenge is not open for submissions")
	ErrPreviewUsed      = newError(KindConflict, "preview_used", "a score preview was already used for a different phrase")
	ErrQuotaExceeded    = newError(KindConflict, "quota_exceeded", "no votes left in this category")
	ErrVoteWindowClosed = newError(KindConflict, "vote_window_closed", "submission is not open for voting")
	ErrNameTaken        = newError(KindConflict, "name_taken", "name is already taken")
	ErrEmailTaken       = newError(KindConflict, "email_taken", "email is already registered")
)

// Not-found errors.
var (
	ErrUserNotFound         = newError(KindNotFound, "user_not_found", "user not found")
	ErrSubmissionNotFound   = newError(KindNotFound, "submission_not_found", "submission not found")
	ErrNotEnoughSubmissions = newError(KindNotFound, "not_enough_submissions", "not enough submissions to vote on")
)

// ErrUnauthenticated reports a request that carries no player identity.
var ErrUnauthenticated = newError(KindUnauthorized, "unauthorized", "authentication required")

// Dependency errors.
var (
	ErrChallengeGeneration = newError(KindDependency, "challenge_unavailable", "could not generate today's challenge")
	ErrScoringUnavailable  = newError(KindDependency, "scoring_unavailable", "scoring is temporarily unavailable")
)

// DependencyError wraps the cause of a failed external call.
type DependencyError struct {
	Sentinel *Error
	Cause    error
}

func (e *DependencyError) Error() string {
	if e.Cause == nil {
		return e.Sentinel.Message
	}
	return e.Sentinel.Message + ": " + e.Cause.Error()
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *DependencyError) Unwrap() []error { return []error{e.Sentinel, e.Cause} }

func dependency(sentinel *Error, cause error) error {
	return &DependencyError{Sentinel: sentinel, Cause: cause}
}

// KindOf classifies err. Unclassified errors are persistence failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// isNotFound treats the repo sentinel and GORM's as the same condition.
func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}
