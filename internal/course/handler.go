// File: internal/course/handler.go
package course

import (
	"errors"

	"learnhub_backend/internal/common"
	"learnhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for course handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new course handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for course operations. Reads are public;
// mutations require an authenticated caller.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	courseGroup := router.Group("/courses")
	{
		courseGroup.GET("", h.listCourses)
		courseGroup.GET("/:id", h.getCourse)
		courseGroup.POST("", authMW, h.createCourse)
		courseGroup.PUT("/:id", authMW, h.updateCourse)
		courseGroup.DELETE("/:id", authMW, h.deleteCourse)
	}
}

func (h *Handler) listCourses(c *gin.Context) {
	courses, err := h.service.GetAllCourses(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]CourseResponse, len(courses))
	for i := range courses {
		responses[i] = ToCourseResponse(&courses[i])
	}
	common.RespondOK(c, "Courses retrieved successfully.", responses)
}

func (h *Handler) getCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	course, err := h.service.GetCourseByID(c.Request.Context(), courseID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Course retrieved successfully.", ToCourseResponse(course))
}

func (h *Handler) createCourse(c *gin.Context) {
	if !requireSignedInUser(c) {
		return
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create course: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Course created successfully.", ToCourseResponse(course))
}

func (h *Handler) updateCourse(c *gin.Context) {
	if !requireSignedInUser(c) {
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}

	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update course: invalid request body", zap.Error(err), zap.String("courseID", courseID.String()))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), courseID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Course updated successfully.", ToCourseResponse(course))
}

func (h *Handler) deleteCourse(c *gin.Context) {
	if !requireSignedInUser(c) {
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid course ID format."))
		return
	}
	if err := h.service.DeleteCourse(c.Request.Context(), courseID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Course deleted successfully.", nil)
}

// requireSignedInUser rejects callers whose session carries no local user id,
// which happens before the first metadata sync completes.
func requireSignedInUser(c *gin.Context) bool {
	cur := middleware.GetCurrentUser(c)
	if cur == nil || cur.UserID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Sign in required."))
		return false
	}
	return true
}
