// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Challenge
// model. The (category, date) unique index is the cross-process guard that
// keeps one challenge per category per day.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// LatestChallenge returns the most recent challenge for category, by date.
func LatestChallenge(ctx context.Context, db *gorm.DB, category domain.Category) (*domain.Challenge, error) {
	var c domain.Challenge
	err := db.WithContext(ctx).
		Where("category = ?", category).
		Order("date DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChallengeForDay returns the challenge for (category, day).
func GetChallengeForDay(ctx context.Context, db *gorm.DB, category domain.Category, day string) (*domain.Challenge, error) {
	var c domain.Challenge
	err := db.WithContext(ctx).
		Where("category = ? AND date = ?", category, day).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetChallenge returns a challenge by its public id.
func GetChallenge(ctx context.Context, db *gorm.DB, id string) (*domain.Challenge, error) {
	var c domain.Challenge
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateChallenge inserts a challenge with a fresh UUID. A concurrent insert
// for the same (category, day) fails with a unique violation; see IsDuplicate.
func CreateChallenge(ctx context.Context, db *gorm.DB, category domain.Category, day, prompt string) (*domain.Challenge, error) {
	c := &domain.Challenge{
		ID:        uuid.NewString(),
		Category:  category,
		Date:      day,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}
