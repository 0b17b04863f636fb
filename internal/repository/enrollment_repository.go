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

// EnrollmentRepository handles persistence for the student/course join.
type EnrollmentRepository struct {
	base
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{base{db: db}}
}

// WithObserver reports query latency to o.
func (r *EnrollmentRepository) WithObserver(o QueryObserver) *EnrollmentRepository {
	r.observer = o
	return r
}

// ListByStudent returns a student's enrollments ordered by enrollment_id.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, exec sqlx.ExtContext, studentID int64) ([]models.Enrollment, error) {
	defer r.observe("enrollment.list_by_student", time.Now())
	const query = `SELECT enrollment_id, student_id, course_id FROM enrollment WHERE student_id = $1 ORDER BY enrollment_id`
	var enrollments []models.Enrollment
	if err := sqlx.SelectContext(ctx, r.exec(exec), &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// Exists reports whether the student is already enrolled in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error) {
	defer r.observe("enrollment.exists", time.Now())
	const query = `SELECT 1 FROM enrollment WHERE student_id = $1 AND course_id = $2 LIMIT 1`
	var exists int
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query, studentID, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return true, nil
}

// Create inserts the join row and sets its generated ID.
func (r *EnrollmentRepository) Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error {
	defer r.observe("enrollment.create", time.Now())
	const query = `INSERT INTO enrollment (student_id, course_id) VALUES ($1, $2) RETURNING enrollment_id`
	if err := sqlx.GetContext(ctx, r.exec(exec), &enrollment.EnrollmentID, query, enrollment.StudentID, enrollment.CourseID); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// Delete removes the enrollment for the pair. It reports false when no row matched.
func (r *EnrollmentRepository) Delete(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error) {
	defer r.observe("enrollment.delete", time.Now())
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM enrollment WHERE student_id = $1 AND course_id = $2`, studentID, courseID)
	if err != nil {
		return false, fmt.Errorf("delete enrollment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete enrollment rows affected: %w", err)
	}
	return affected > 0, nil
}
