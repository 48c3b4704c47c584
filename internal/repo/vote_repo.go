// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the vote tally primitives.
//
// A tally row counts the votes one user spent in one category on one voting
// day. ConsumeVote increments it with a conditional UPDATE, so the quota
// holds even when requests from the same user race each other.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// ErrQuotaExhausted is returned by ConsumeVote when the tally already
// reached the quota.
var ErrQuotaExhausted = errors.New("vote quota exhausted")

// ConsumeVote spends one vote of the (user, category, day) quota and returns
// the number of votes used afterwards. Run it inside the transaction that
// also records the vote.
func ConsumeVote(ctx context.Context, db *gorm.DB, userID string, category domain.Category, day string, quota int) (int, error) {
	tx := db.WithContext(ctx)
	now := time.Now().UTC()

	seed := &domain.VoteTally{UserID: userID, Category: category, Date: day, UpdatedAt: now}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return 0, err
	}

	res := tx.Model(&domain.VoteTally{}).
		Where("user_id = ? AND category = ? AND date = ? AND votes_used < ?", userID, category, day, quota).
		Updates(map[string]any{
			"votes_used": gorm.Expr("votes_used + 1"),
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return quota, ErrQuotaExhausted
	}
	return VotesUsed(ctx, tx, userID, category, day)
}

// VotesUsed returns how many votes the user spent in (category, day).
func VotesUsed(ctx context.Context, db *gorm.DB, userID string, category domain.Category, day string) (int, error) {
	var t domain.VoteTally
	err := db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND date = ?", userID, category, day).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return t.VotesUsed, nil
}

// VotesUsedOnDay sums the user's votes over every category for day.
func VotesUsedOnDay(ctx context.Context, db *gorm.DB, userID, day string) (int, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.VoteTally{}).
		Select("COALESCE(SUM(votes_used), 0)").
		Where("user_id = ? AND date = ?", userID, day).
		Scan(&total).Error
	return int(total), err
}
