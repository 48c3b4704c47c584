// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file stores score-first preview markers when no Redis
// cache is configured.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// GetPreview returns a non-expired preview for (user, challenge) or ErrNotFound.
func GetPreview(ctx context.Context, db *gorm.DB, userID, challengeID string, now time.Time) (*domain.ScorePreview, error) {
	var p domain.ScorePreview
	err := db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ? AND expires_at > ?", userID, challengeID, now).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PutPreview inserts or replaces the preview for (user, challenge).
func PutPreview(ctx context.Context, db *gorm.DB, p *domain.ScorePreview) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phrase", "score", "feedback", "created_at", "expires_at"}),
	}).Create(p).Error
}

// DeletePreview removes the preview for (user, challenge), if any.
func DeletePreview(ctx context.Context, db *gorm.DB, userID, challengeID string) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Delete(&domain.ScorePreview{}).Error
}

// PurgeExpired deletes expired previews and idempotency records and returns
// how many rows went away.
func PurgeExpired(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	var total int64
	for _, model := range []any{&domain.ScorePreview{}, &domain.Idempotency{}} {
		res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(model)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
	}
	return total, nil
}
