// File: internal/product/handler.go
package product

import (
	"errors"

	"learnhub_backend/internal/common"
	"learnhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for product handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new product handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for product operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", h.listProducts)
		productGroup.POST("", authMW, h.createProduct)
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.service.GetAllProducts(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	common.RespondOK(c, "Products retrieved successfully.", responses)
}

func (h *Handler) createProduct(c *gin.Context) {
	cur := middleware.GetCurrentUser(c)
	if cur == nil || cur.UserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Sign in required."))
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create product: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Product created successfully.", ToProductResponse(product))
}
