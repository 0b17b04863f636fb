package dto

// EnrollmentRequest enrolls the student in the path into a course.
type EnrollmentRequest struct {
	CourseID *int64 `json:"course_id" form:"course_id" validate:"required"`
}
