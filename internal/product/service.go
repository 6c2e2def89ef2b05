// File: internal/product/service.go
package product

import (
	"context"
	"strings"

	"learnhub_backend/internal/common"

	"go.uber.org/zap"
)

// Service defines the interface for product-related business logic.
type Service interface {
	GetAllProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new product service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) GetAllProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to get all products", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve products.")
	}
	return products, nil
}

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	status := req.Status
	if status == "" {
		status = StatusPrivate
	}

	product := &Product{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		PriceInDollars: req.PriceInDollars,
		Status:         status,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Product created", zap.String("id", product.ID.String()), zap.String("name", product.Name))
	return product, nil
}
