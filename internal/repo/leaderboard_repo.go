// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the leaderboard aggregation queries.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// DailyScore is one user's aggregated score for a (category, day).
type DailyScore struct {
	UserID string
	Score  int64
}

// ScoreRow is one line of a windowed leaderboard.
type ScoreRow struct {
	UserID     string
	Username   string
	TotalScore int64
}

// SumDailyScores adds initial_score and votes of every final submission for
// (category, day), grouped by author.
func SumDailyScores(ctx context.Context, db *gorm.DB, category domain.Category, day string) ([]DailyScore, error) {
	var out []DailyScore
	err := db.WithContext(ctx).Model(&domain.Submission{}).
		Select("user_id, SUM(initial_score + votes) AS score").
		Where("category = ? AND date = ? AND final_submission = ?", category, day, true).
		Group("user_id").
		Order("user_id").
		Scan(&out).Error
	return out, err
}

// ReplaceDailyEntries makes the stored entries for (category, day) equal to
// scores: rows are upserted on (user_id, category, date) and rows for users
// absent from scores are removed. Running it twice with the same input
// leaves the table unchanged.
func ReplaceDailyEntries(ctx context.Context, db *gorm.DB, category domain.Category, day string, scores []DailyScore) error {
	tx := db.WithContext(ctx)

	keep := make([]string, 0, len(scores))
	if len(scores) > 0 {
		now := time.Now().UTC()
		rows := make([]domain.LeaderboardEntry, 0, len(scores))
		for _, s := range scores {
			rows = append(rows, domain.LeaderboardEntry{
				UserID:    s.UserID,
				Category:  category,
				Date:      day,
				Score:     int(s.Score),
				CreatedAt: now,
				UpdatedAt: now,
			})
			keep = append(keep, s.UserID)
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
		}).Create(&rows).Error
		if err != nil {
			return err
		}
	}

	prune := tx.Where("category = ? AND date = ?", category, day)
	if len(keep) > 0 {
		prune = prune.Where("user_id NOT IN ?", keep)
	}
	return prune.Delete(&domain.LeaderboardEntry{}).Error
}

// TopScores sums entries per user over [start, end] for category and
// returns the best limit rows, ties broken by name then id.
func TopScores(ctx context.Context, db *gorm.DB, category domain.Category, start, end string, limit int) ([]ScoreRow, error) {
	var out []ScoreRow
	err := db.WithContext(ctx).
		Table("leaderboard_entries AS le").
		Select("le.user_id AS user_id, COALESCE(u.name, '') AS username, SUM(le.score) AS total_score").
		Joins("LEFT JOIN users u ON u.id = le.user_id").
		Where("le.category = ? AND le.date BETWEEN ? AND ?", category, start, end).
		Group("le.user_id, u.name").
		Order("total_score DESC, username ASC, user_id ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
