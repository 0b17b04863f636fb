package models

// Course is a catalogue entry students can enroll in.
type Course struct {
	CourseID          int64   `db:"course_id" json:"course_id"`
	CourseName        string  `db:"course_name" json:"course_name"`
	CourseCode        string  `db:"course_code" json:"course_code"`
	CourseDescription *string `db:"course_description" json:"course_description"`
}
