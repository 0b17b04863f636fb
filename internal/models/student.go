package models

// Student represents a learner identified by a unique roll number.
type Student struct {
	StudentID  int64   `db:"student_id" json:"student_id"`
	RollNumber string  `db:"roll_number" json:"roll_number"`
	FirstName  string  `db:"first_name" json:"first_name"`
	LastName   *string `db:"last_name" json:"last_name"`
}
