// File: internal/product/repository.go
package product

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines the interface for product data operations.
type Repository interface {
	Create(ctx context.Context, product *Product) error
	FindAll(ctx context.Context) ([]Product, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM product repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, product *Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
