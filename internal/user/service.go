// File: internal/user/service.go
package user

import (
	"context"

	"go.uber.org/zap"
)

// Service defines the interface for user persistence with operational logging.
type Service interface {
	InsertUser(ctx context.Context, u *User) (*User, error)
	UpdateUser(ctx context.Context, clerkUserID string, up Update) (*User, error)
	DeleteUser(ctx context.Context, clerkUserID string) error
}

type service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(store Store, logger *zap.Logger) Service {
	return &service{store: store, logger: logger}
}

func (s *service) InsertUser(ctx context.Context, u *User) (*User, error) {
	saved, err := s.store.Upsert(ctx, u)
	if err != nil {
		s.logger.Error("Failed to insert user", zap.Error(err), zap.String("clerkUserID", u.ClerkUserID))
		return nil, err
	}
	s.logger.Info("User inserted",
		zap.String("id", saved.ID.String()),
		zap.String("clerkUserID", saved.ClerkUserID))
	return saved, nil
}

func (s *service) UpdateUser(ctx context.Context, clerkUserID string, up Update) (*User, error) {
	saved, err := s.store.UpdateByClerkID(ctx, clerkUserID, up)
	if err != nil {
		s.logger.Warn("Failed to update user", zap.Error(err), zap.String("clerkUserID", clerkUserID))
		return nil, err
	}
	s.logger.Info("User updated",
		zap.String("id", saved.ID.String()),
		zap.String("clerkUserID", clerkUserID))
	return saved, nil
}

func (s *service) DeleteUser(ctx context.Context, clerkUserID string) error {
	if err := s.store.SoftDeleteByClerkID(ctx, clerkUserID); err != nil {
		s.logger.Warn("Failed to soft delete user", zap.Error(err), zap.String("clerkUserID", clerkUserID))
		return err
	}
	s.logger.Info("User soft deleted", zap.String("clerkUserID", clerkUserID))
	return nil
}
