// File: internal/user/store.go
package user

import (
	"context"
	"errors"
	"time"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store defines the persistence operations on the users table. Absence is
// reported as common.ErrNotFound rather than a generic failure, so each caller
// decides whether a missing row is acceptable.
type Store interface {
	Upsert(ctx context.Context, u *User) (*User, error)
	UpdateByClerkID(ctx context.Context, clerkUserID string, up Update) (*User, error)
	SoftDeleteByClerkID(ctx context.Context, clerkUserID string) error
	FindByClerkID(ctx context.Context, clerkUserID string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewGORMStore creates a new GORM user store.
func NewGORMStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Upsert inserts a user row, resolving a clerk_user_id conflict among active
// rows to an update. Redelivered creation events therefore never produce a
// second row for the same identity.
func (s *gormStore) Upsert(ctx context.Context, u *User) (*User, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "clerk_user_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "deleted_at IS NULL"}}},
		DoUpdates:   clause.AssignmentColumns([]string{"email", "name", "role", "image_url", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return nil, err
	}

	var saved User
	err = s.db.WithContext(ctx).
		Where("clerk_user_id = ? AND deleted_at IS NULL", u.ClerkUserID).
		First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The conflict clause guarantees a row; its absence is a data-layer invariant violation.
			return nil, common.ErrInternalServer.WithDetails("User row missing after upsert.")
		}
		return nil, err
	}
	return &saved, nil
}

// UpdateByClerkID applies the given fields to the active row for this clerk
// user id.
func (s *gormStore) UpdateByClerkID(ctx context.Context, clerkUserID string, up Update) (*User, error) {
	result := s.db.WithContext(ctx).Model(&User{}).
		Where("clerk_user_id = ? AND deleted_at IS NULL", clerkUserID).
		Updates(map[string]interface{}{
			"email":      up.Email,
			"name":       up.Name,
			"role":       up.Role,
			"image_url":  up.ImageURL,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, common.ErrNotFound.WithDetails("User not found with this clerk user ID.")
	}

	var saved User
	if err := s.db.WithContext(ctx).
		Where("clerk_user_id = ? AND deleted_at IS NULL", clerkUserID).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// SoftDeleteByClerkID marks the row deleted and redacts its personal fields.
// The row persists; only the sentinel values remain.
func (s *gormStore) SoftDeleteByClerkID(ctx context.Context, clerkUserID string) error {
	result := s.db.WithContext(ctx).Model(&User{}).
		Where("clerk_user_id = ? AND deleted_at IS NULL", clerkUserID).
		Updates(map[string]interface{}{
			"deleted_at":    time.Now().UTC(),
			"clerk_user_id": DeletedClerkUserID,
			"email":         DeletedEmail,
			"name":          DeletedName,
			"image_url":     nil,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User not found with this clerk user ID.")
	}
	return nil
}

// FindByClerkID retrieves the active row for a clerk user id.
func (s *gormStore) FindByClerkID(ctx context.Context, clerkUserID string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).
		Where("clerk_user_id = ? AND deleted_at IS NULL", clerkUserID).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this clerk user ID.")
		}
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by local primary key, deleted or not.
func (s *gormStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return nil, err
	}
	return &u, nil
}
