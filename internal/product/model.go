// File: internal/product/model.go
package product

import (
	"time"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
)

// Visibility status values for products.
const (
	StatusPrivate = "private"
	StatusPublic  = "public"
)

// Product represents the product model in the database.
type Product struct {
	common.BaseModel
	Name           string `gorm:"type:varchar(255);not null"`
	Description    string `gorm:"type:text;not null"`
	ImageURL       string `gorm:"type:text;not null"`
	PriceInDollars int    `gorm:"not null"`
	Status         string `gorm:"type:varchar(20);not null;default:'private'"`
}

// TableName specifies the table name for the Product model.
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest defines the structure for creating a product.
// Status is optional and defaults to private.
type CreateProductRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Description    string `json:"description" binding:"required"`
	ImageURL       string `json:"image_url" binding:"required,url"`
	PriceInDollars int    `json:"price_in_dollars" binding:"required,gt=0"`
	Status         string `json:"status" binding:"omitempty,oneof=private public"`
}

// ProductResponse defines the structure for product data sent in API responses.
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	ImageURL       string    `json:"image_url"`
	PriceInDollars int       `json:"price_in_dollars"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToProductResponse converts a Product model to a ProductResponse DTO.
func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		PriceInDollars: p.PriceInDollars,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
