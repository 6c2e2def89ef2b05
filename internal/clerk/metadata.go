// File: internal/clerk/metadata.go
package clerk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"learnhub_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MetadataSyncer pushes the locally assigned user id and role back into the
// identity provider's per-user metadata, so future session tokens carry them.
type MetadataSyncer interface {
	SyncUserMetadata(ctx context.Context, clerkUserID string, dbID uuid.UUID, role string) error
}

// Service is the HTTP client for the identity provider's backend API.
type Service struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *zap.Logger
}

// NewService creates a new identity provider client from the application config.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.ClerkAPIBaseURL,
		secretKey:  cfg.ClerkSecretKey,
		logger:     logger,
	}
}

type metadataPayload struct {
	PublicMetadata struct {
		DBID string `json:"db_id"`
		Role string `json:"role"`
	} `json:"public_metadata"`
}

// SyncUserMetadata performs PATCH /users/{id}/metadata against the provider.
// Side effect only; no local state changes.
func (s *Service) SyncUserMetadata(ctx context.Context, clerkUserID string, dbID uuid.UUID, role string) error {
	var payload metadataPayload
	payload.PublicMetadata.DBID = dbID.String()
	payload.PublicMetadata.Role = role

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode metadata payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/users/%s/metadata", s.baseURL, url.PathEscape(clerkUserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("Identity provider metadata update failed",
			zap.Error(err), zap.String("clerkUserID", clerkUserID))
		return fmt.Errorf("metadata update request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		s.logger.Error("Identity provider metadata update rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("clerkUserID", clerkUserID),
			zap.ByteString("response", respBody))
		return fmt.Errorf("metadata update returned status %d", resp.StatusCode)
	}

	s.logger.Info("User metadata synced to identity provider",
		zap.String("clerkUserID", clerkUserID),
		zap.String("dbID", dbID.String()),
		zap.String("role", role))
	return nil
}
