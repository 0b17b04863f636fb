package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	base
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{base{db: db}}
}

// WithObserver reports query latency to o.
func (r *StudentRepository) WithObserver(o QueryObserver) *StudentRepository {
	r.observer = o
	return r
}

// FindByID fetches a student. sql.ErrNoRows is returned unwrapped when absent.
func (r *StudentRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Student, error) {
	defer r.observe("student.find_by_id", time.Now())
	const query = `SELECT student_id, roll_number, first_name, last_name FROM student WHERE student_id = $1`
	var student models.Student
	if err := sqlx.GetContext(ctx, r.exec(exec), &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRollNumber checks if a student with the given roll number exists optionally excluding an ID.
func (r *StudentRepository) ExistsByRollNumber(ctx context.Context, exec sqlx.ExtContext, rollNumber string, excludeID int64) (bool, error) {
	defer r.observe("student.exists_by_roll_number", time.Now())
	query := "SELECT 1 FROM student WHERE roll_number = $1"
	args := []interface{}{rollNumber}
	if excludeID > 0 {
		query += " AND student_id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check roll number: %w", err)
	}
	return true, nil
}

// Create inserts a new student record and sets its generated ID.
func (r *StudentRepository) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	defer r.observe("student.create", time.Now())
	const query = `INSERT INTO student (roll_number, first_name, last_name) VALUES ($1, $2, $3) RETURNING student_id`
	if err := sqlx.GetContext(ctx, r.exec(exec), &student.StudentID, query, student.RollNumber, student.FirstName, student.LastName); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	defer r.observe("student.update", time.Now())
	const query = `UPDATE student SET roll_number = :roll_number, first_name = :first_name, last_name = :last_name WHERE student_id = :student_id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student and, through the foreign key, their enrollments.
func (r *StudentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	defer r.observe("student.delete", time.Now())
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM student WHERE student_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete student rows affected: %w", err)
	}
	return affected > 0, nil
}
