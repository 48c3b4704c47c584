// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Submission
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// CreateSubmission inserts s, assigning an id and timestamps when unset.
// A second final submission for the same (user, category, date) fails with a
// unique violation.
func CreateSubmission(ctx context.Context, db *gorm.DB, s *domain.Submission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return db.WithContext(ctx).Create(s).Error
}

// GetSubmission returns a submission by id.
func GetSubmission(ctx context.Context, db *gorm.DB, id string) (*domain.Submission, error) {
	var s domain.Submission
	if err := db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// FindFinalSubmission returns the user's final submission for (category, day).
func FindFinalSubmission(ctx context.Context, db *gorm.DB, userID string, category domain.Category, day string) (*domain.Submission, error) {
	var s domain.Submission
	err := db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND date = ? AND final_submission = ?", userID, category, day, true).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// IncrementVotes adds one vote to a submission with a single UPDATE so
// concurrent voters never lose increments.
func IncrementVotes(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Model(&domain.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"votes":      gorm.Expr("votes + 1"),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RandomSubmissions samples up to n final submissions for (category, day),
// excluding those written by excludeUserID.
func RandomSubmissions(ctx context.Context, db *gorm.DB, category domain.Category, day, excludeUserID string, n int) ([]domain.Submission, error) {
	var out []domain.Submission
	err := db.WithContext(ctx).
		Where("category = ? AND date = ? AND final_submission = ? AND user_id <> ?", category, day, true, excludeUserID).
		Order("RANDOM()").
		Limit(n).
		Find(&out).Error
	return out, err
}
