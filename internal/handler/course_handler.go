package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type courseService interface {
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req dto.CourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// CourseHandler exposes course endpoints.
type CourseHandler struct {
	courses courseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 "Course not found"
// @Router /api/course/{course_id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 201 {object} models.Course
// @Failure 400 {object} errors.Error
// @Failure 409 "Course code already exists"
// @Router /api/course [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := bindRequest(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param payload body dto.CourseRequest true "Course payload"
// @Success 200 {object} models.Course
// @Failure 400 {object} errors.Error
// @Failure 404 "Course not found"
// @Router /api/course/{course_id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if err := bindRequest(c, &req); err != nil {
		if _, getErr := h.courses.Get(c.Request.Context(), id); getErr != nil {
			response.Error(c, getErr)
			return
		}
		response.Error(c, err)
		return
	}
	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Delete godoc
// @Summary Delete course
// @Description Deletes the course and every enrollment in it.
// @Tags Courses
// @Param course_id path int true "Course ID"
// @Success 200
// @Failure 404 "Course not found"
// @Router /api/course/{course_id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c, http.StatusOK)
}
