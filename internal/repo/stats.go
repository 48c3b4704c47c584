// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// LeaderboardStats returns the number of leaderboard entries for category in
// [start, end] and the latest change that affects how they render: the
// greatest UpdatedAt among the entries and among their players, since a
// rename changes the names shown. When there are no rows the count is 0 and
// maxUpdatedAt is nil.
func LeaderboardStats(ctx context.Context, db *gorm.DB, category domain.Category, start, end string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := func() *gorm.DB {
		return db.WithContext(ctx).Model(&domain.LeaderboardEntry{}).
			Where("category = ? AND date BETWEEN ? AND ?", category, start, end)
	}

	if err = q().Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q().Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	latest := row.UpdatedAt

	var player struct {
		UpdatedAt time.Time
	}
	err = db.WithContext(ctx).Model(&domain.User{}).
		Select("users.updated_at").
		Joins("JOIN leaderboard_entries le ON le.user_id = users.id").
		Where("le.category = ? AND le.date BETWEEN ? AND ?", category, start, end).
		Order("users.updated_at DESC").
		Limit(1).
		Scan(&player).Error
	if err != nil {
		return 0, nil, err
	}
	if player.UpdatedAt.After(latest) {
		latest = player.UpdatedAt
	}
	return count, &latest, nil
}
