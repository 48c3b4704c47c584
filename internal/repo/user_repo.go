// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return ErrNotFound
//     (an alias of gorm.ErrRecordNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/phrase-craze-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a user with a fresh UUID. name may be nil.
func CreateUser(ctx context.Context, db *gorm.DB, email string, name *string, admin bool) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		IsAdmin:   admin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by id.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserForUpdate fetches a user by id and, where the driver supports it,
// locks the row until the surrounding transaction ends.
func GetUserForUpdate(ctx context.Context, tx *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := forUpdate(tx.WithContext(ctx)).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields applies a partial update to one user row. It returns
// ErrNotFound when no row matched.
func UpdateUserFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// NameTaken reports whether another user already uses name.
func NameTaken(ctx context.Context, db *gorm.DB, name, exceptID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&n).Error
	return n > 0, err
}

// BackfillSubmissionNames rewrites the author snapshot of every submission
// by userID to name and returns the number of rows touched.
func BackfillSubmissionNames(ctx context.Context, db *gorm.DB, userID, name string) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.Submission{}).
		Where("user_id = ? AND username <> ?", userID, name).
		Update("username", name)
	return res.RowsAffected, res.Error
}
