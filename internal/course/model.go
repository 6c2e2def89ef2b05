// File: internal/course/model.go
package course

import (
	"time"

	"learnhub_backend/internal/common"

	"github.com/google/uuid"
)

// Course represents the course model in the database.
type Course struct {
	common.BaseModel
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text;not null"`
}

// TableName specifies the table name for the Course model.
func (Course) TableName() string {
	return "courses"
}

// --- DTOs for API requests/responses ---

// CreateCourseRequest defines the structure for creating a course.
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// UpdateCourseRequest defines the structure for updating a course.
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// CourseResponse defines the structure for course data sent in API responses.
type CourseResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCourseResponse converts a Course model to a CourseResponse DTO.
func ToCourseResponse(c *Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
