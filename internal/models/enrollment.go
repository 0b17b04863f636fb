package models

// Enrollment links a student to a course. Rows are immutable once created.
type Enrollment struct {
	EnrollmentID int64 `db:"enrollment_id" json:"enrollment_id"`
	StudentID    int64 `db:"student_id" json:"student_id"`
	CourseID     int64 `db:"course_id" json:"course_id"`
}
