package dto

// CourseRequest is the payload accepted by course create and update.
// Pointer fields distinguish an absent value from an empty one.
type CourseRequest struct {
	CourseName        *string `json:"course_name" form:"course_name" validate:"required"`
	CourseCode        *string `json:"course_code" form:"course_code" validate:"required"`
	CourseDescription *string `json:"course_description" form:"course_description"`
}
