// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"learnhub_backend/internal/clerk"
	"learnhub_backend/internal/common"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/course"
	"learnhub_backend/internal/middleware"
	"learnhub_backend/internal/product"
	"learnhub_backend/internal/user"
	"learnhub_backend/internal/webhook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	webhookHandler *webhook.Handler
	courseHandler  *course.Handler
	productHandler *product.Handler

	// Middleware instances
	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionVerifier *clerk.SessionVerifier,
	webhookHandler *webhook.Handler,
	courseHandler *course.Handler,
	productHandler *product.Handler,
	db *gorm.DB,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.RespondWithError(c, common.ErrNotFound.WithDetails("The requested endpoint does not exist."))
	})
	router.NoMethod(func(c *gin.Context) {
		common.RespondWithError(c, common.NewAPIError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL."))
	})

	// Schema is owned by the models; keep it current on boot.
	if err := db.AutoMigrate(&user.User{}, &course.Course{}, &product.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.SessionAuthMiddleware(sessionVerifier, logger.Named("SessionAuth"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "LearnHub API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	// The webhook endpoint authenticates by signature, not session.
	webhookHandler.RegisterRoutes(v1)

	courseHandler.RegisterRoutes(v1, authMW)
	productHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		webhookHandler: webhookHandler,
		courseHandler:  courseHandler,
		productHandler: productHandler,
		authMW:         authMW,
	}, nil
}

// Router exposes the gin engine, primarily for integration tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	return s.httpServer.Shutdown(ctx)
}
