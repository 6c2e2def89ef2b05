// File: internal/course/repository.go
package course

import (
	"context"
	"errors"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for course data operations.
type Repository interface {
	Create(ctx context.Context, course *Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)
	FindAll(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM course repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, course *Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Course, error) {
	var course Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Course not found.")
		}
		return nil, err
	}
	return &course, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Course, error) {
	var courses []Course
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *gormRepository) Update(ctx context.Context, course *Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Course{BaseModel: common.BaseModel{ID: id}})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Course not found or already deleted.")
	}
	return nil
}
