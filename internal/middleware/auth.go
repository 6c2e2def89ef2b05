// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"learnhub_backend/internal/clerk"
	"learnhub_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header name for the session token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// CurrentUserKey is the context key for the authenticated caller descriptor
	CurrentUserKey = "currentUser"
)

// SessionAuthMiddleware creates a Gin middleware that verifies the caller's
// session token and stores the resulting CurrentUser descriptor in the context.
// Unauthenticated requests are rejected before any handler runs; this is the
// non-interactive realization of redirect-to-sign-in.
func SessionAuthMiddleware(verifier *clerk.SessionVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			logger.Warn("Session token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired session token."))
			return
		}

		cur := claims.CurrentUser()
		c.Set(CurrentUserKey, cur)

		logger.Debug("User authenticated successfully",
			zap.String("clerkUserID", cur.ClerkUserID),
			zap.String("userID", cur.UserID.String()),
			zap.String("role", cur.Role),
		)

		c.Next()
	}
}

// GetCurrentUser retrieves the authenticated caller descriptor from the Gin
// context. Returns nil when no authenticated user is present.
func GetCurrentUser(c *gin.Context) *clerk.CurrentUser {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	cur, ok := val.(*clerk.CurrentUser)
	if !ok {
		return nil
	}
	return cur
}

// RoleAuthMiddleware checks that the authenticated caller has one of the
// required roles. Must run after SessionAuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cur := GetCurrentUser(c)
		if cur == nil || cur.Role == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if cur.Role == role {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
