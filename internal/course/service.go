// File: internal/course/service.go
package course

import (
	"context"
	"strings"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for course-related business logic.
type Service interface {
	GetAllCourses(ctx context.Context) ([]Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error)
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req UpdateCourseRequest) (*Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new course service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) GetAllCourses(ctx context.Context) ([]Course, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all courses", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve courses.")
	}
	return courses, nil
}

func (s *service) GetCourseByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateCourse(ctx context.Context, req CreateCourseRequest) (*Course, error) {
	course := &Course{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Error("Failed to create course", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Course created", zap.String("id", course.ID.String()), zap.String("name", course.Name))
	return course, nil
}

func (s *service) UpdateCourse(ctx context.Context, id uuid.UUID, req UpdateCourseRequest) (*Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Name = strings.TrimSpace(req.Name)
	course.Description = req.Description

	if err := s.repo.Update(ctx, course); err != nil {
		s.logger.Error("Failed to update course", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	s.logger.Info("Course updated", zap.String("id", course.ID.String()))
	return course, nil
}

func (s *service) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to delete course", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	s.logger.Info("Course deleted", zap.String("id", id.String()))
	return nil
}
