package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	CheckStudent(ctx context.Context, studentID int64) error
	Enroll(ctx context.Context, studentID int64, req dto.EnrollmentRequest) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID int64) error
}

// EnrollmentHandler exposes the student/course enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// List godoc
// @Summary List a student's enrollments
// @Description Responds 404 when the student exists but has no enrollments.
// @Tags Enrollments
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {array} models.Enrollment
// @Failure 400 {object} errors.Error
// @Failure 404 "No enrollments"
// @Router /api/student/{student_id}/course [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	enrollments, err := h.enrollments.List(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments)
}

// Create godoc
// @Summary Enroll a student in a course
// @Tags Enrollments
// @Accept json
// @Param student_id path int true "Student ID"
// @Param payload body dto.EnrollmentRequest true "Enrollment payload"
// @Success 201
// @Failure 400 {object} errors.Error
// @Router /api/student/{student_id}/course [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	var req dto.EnrollmentRequest
	if err := bindRequest(c, &req); err != nil {
		if checkErr := h.enrollments.CheckStudent(c.Request.Context(), studentID); checkErr != nil {
			response.Error(c, checkErr)
			return
		}
		response.Error(c, err)
		return
	}
	if _, err := h.enrollments.Enroll(c.Request.Context(), studentID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c, http.StatusCreated)
}

// Delete godoc
// @Summary Remove a student from a course
// @Tags Enrollments
// @Param student_id path int true "Student ID"
// @Param course_id path int true "Course ID"
// @Success 200
// @Failure 400 {object} errors.Error
// @Failure 404 "Enrollment not found"
// @Router /api/student/{student_id}/course/{course_id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	studentID, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}
	if err := h.enrollments.Unenroll(c.Request.Context(), studentID, courseID); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c, http.StatusOK)
}
