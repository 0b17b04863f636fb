package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/response"
)

type studentService interface {
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error)
	Update(ctx context.Context, id int64, req dto.StudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 "Student not found"
// @Router /api/student/{student_id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 201 {object} models.Student
// @Failure 400 {object} errors.Error
// @Failure 409 "Roll number already exists"
// @Router /api/student [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.StudentRequest
	if err := bindRequest(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Param payload body dto.StudentRequest true "Student payload"
// @Success 200 {object} models.Student
// @Failure 400 {object} errors.Error
// @Failure 404 "Student not found"
// @Router /api/student/{student_id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	var req dto.StudentRequest
	if err := bindRequest(c, &req); err != nil {
		if _, getErr := h.students.Get(c.Request.Context(), id); getErr != nil {
			response.Error(c, getErr)
			return
		}
		response.Error(c, err)
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param student_id path int true "Student ID"
// @Success 200
// @Failure 404 "Student not found"
// @Router /api/student/{student_id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "student_id")
	if !ok {
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Empty(c, http.StatusOK)
}
