// File: internal/webhook/handler.go
package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"learnhub_backend/internal/clerk"
	"learnhub_backend/internal/common"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler receives signed identity provider events and keeps the local users
// table in sync.
type Handler struct {
	verifier *Verifier
	users    user.Service
	syncer   clerk.MetadataSyncer
	logger   *zap.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(verifier *Verifier, users user.Service, syncer clerk.MetadataSyncer, logger *zap.Logger) *Handler {
	return &Handler{
		verifier: verifier,
		users:    users,
		syncer:   syncer,
		logger:   logger,
	}
}

// NewVerifierFromConfig builds the signature verifier from application config.
func NewVerifierFromConfig(cfg *config.Config) (*Verifier, error) {
	return NewVerifier(cfg.ClerkWebhookSecret, cfg.WebhookTolerance)
}

// RegisterRoutes sets up the webhook route. The endpoint is authenticated by
// signature, not by session, so it stays outside the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/webhooks/clerk", h.handleClerkEvent)
}

func (h *Handler) handleClerkEvent(c *gin.Context) {
	msgID := c.GetHeader(HeaderID)
	timestamp := c.GetHeader(HeaderTimestamp)
	signature := c.GetHeader(HeaderSignature)

	for _, hv := range []struct{ name, value string }{
		{HeaderID, msgID},
		{HeaderTimestamp, timestamp},
		{HeaderSignature, signature},
	} {
		if hv.value == "" {
			h.logger.Warn("Webhook rejected: missing signature header", zap.String("header", hv.name))
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing "+hv.name+" header."))
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Unable to read request body."))
		return
	}

	if err := h.verifier.Verify(msgID, timestamp, body, signature); err != nil {
		h.logger.Warn("Webhook rejected: signature verification failed",
			zap.Error(err), zap.String("svixID", msgID))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Webhook signature verification failed."))
		return
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		h.logger.Warn("Webhook rejected: malformed event payload", zap.Error(err), zap.String("svixID", msgID))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Malformed event payload."))
		return
	}

	h.logger.Info("Webhook event received",
		zap.String("svixID", msgID),
		zap.String("type", event.Type),
		zap.String("clerkUserID", event.Data.ID))

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		h.handleUserUpsert(c, event)
	case EventUserDeleted:
		h.handleUserDeleted(c, event)
	default:
		h.logger.Debug("Ignoring unhandled webhook event type", zap.String("type", event.Type))
		c.Status(http.StatusOK)
	}
}

func (h *Handler) handleUserUpsert(c *gin.Context, event Event) {
	email, ok := event.Data.PrimaryEmail()
	if !ok {
		h.logger.Warn("Webhook rejected: no primary email in event", zap.String("clerkUserID", event.Data.ID))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("No email."))
		return
	}
	name := event.Data.DisplayName()
	if name == "" {
		h.logger.Warn("Webhook rejected: no name in event", zap.String("clerkUserID", event.Data.ID))
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("No name."))
		return
	}

	var imageURL *string
	if event.Data.ImageURL != "" {
		imageURL = &event.Data.ImageURL
	}

	ctx := c.Request.Context()

	if event.Type == EventUserCreated {
		saved, err := h.users.InsertUser(ctx, &user.User{
			ClerkUserID: event.Data.ID,
			Email:       email,
			Name:        name,
			Role:        common.RoleUser,
			ImageURL:    imageURL,
		})
		if err != nil {
			common.RespondWithError(c, err)
			return
		}

		// Stamp the new local id and role onto the provider's user metadata so
		// future session tokens carry them.
		if err := h.syncer.SyncUserMetadata(ctx, saved.ClerkUserID, saved.ID, saved.Role); err != nil {
			common.RespondWithError(c, err)
			return
		}
	} else {
		role := event.Data.PublicMetadata.Role
		if role == "" {
			role = common.RoleUser
		}
		_, err := h.users.UpdateUser(ctx, event.Data.ID, user.Update{
			Email:    email,
			Name:     name,
			Role:     role,
			ImageURL: imageURL,
		})
		if err != nil {
			// At-least-once delivery can replay an update after the user is
			// gone; absence is not a failure here.
			if errors.Is(err, common.ErrNotFound) {
				h.logger.Warn("Update event for unknown user, ignoring", zap.String("clerkUserID", event.Data.ID))
				c.Status(http.StatusOK)
				return
			}
			common.RespondWithError(c, err)
			return
		}
	}

	c.Status(http.StatusOK)
}

func (h *Handler) handleUserDeleted(c *gin.Context, event Event) {
	if event.Data.ID == "" {
		h.logger.Warn("Deletion event without a user id, ignoring")
		c.Status(http.StatusOK)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), event.Data.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			h.logger.Warn("Deletion event for unknown user, ignoring", zap.String("clerkUserID", event.Data.ID))
			c.Status(http.StatusOK)
			return
		}
		common.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
