// File: internal/user/model.go
package user

import (
	"time"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
)

// Sentinel values written into a soft-deleted row. Replacing the clerk user id
// frees the original id for reuse while the row itself is retained.
const (
	DeletedClerkUserID = "deleted-user"
	DeletedEmail       = "redacted@deleted.com"
	DeletedName        = "Deleted User"
)

// User mirrors one identity-provider subject in the local users table.
// The clerk_user_id uniqueness is scoped to non-deleted rows: soft-deleted
// rows all share the sentinel id.
type User struct {
	common.BaseModel
	ClerkUserID string     `gorm:"type:varchar(255);not null;index:idx_users_clerk_user_id,unique,where:deleted_at IS NULL"`
	Email       string     `gorm:"type:varchar(255);not null"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(50);not null;default:'user'"`
	ImageURL    *string    `gorm:"type:text"`
	DeletedAt   *time.Time `gorm:"column:deleted_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// IsDeleted reports whether the row has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Update carries the mutable fields applied by a provider "user updated" event.
type Update struct {
	Email    string
	Name     string
	Role     string
	ImageURL *string
}

// Response is the user representation sent in API responses.
type Response struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a User model to its API representation.
func ToResponse(u *User) Response {
	return Response{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
