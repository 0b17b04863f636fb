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

// CourseRepository manages persistence for course records.
type CourseRepository struct {
	base
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{base{db: db}}
}

// WithObserver reports query latency to o.
func (r *CourseRepository) WithObserver(o QueryObserver) *CourseRepository {
	r.observer = o
	return r
}

// FindByID fetches a course. sql.ErrNoRows is returned unwrapped when absent.
func (r *CourseRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Course, error) {
	defer r.observe("course.find_by_id", time.Now())
	const query = `SELECT course_id, course_name, course_code, course_description FROM course WHERE course_id = $1`
	var course models.Course
	if err := sqlx.GetContext(ctx, r.exec(exec), &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// ExistsByCode checks if a course with the given code exists optionally excluding an ID.
func (r *CourseRepository) ExistsByCode(ctx context.Context, exec sqlx.ExtContext, code string, excludeID int64) (bool, error) {
	defer r.observe("course.exists_by_code", time.Now())
	query := "SELECT 1 FROM course WHERE course_code = $1"
	args := []interface{}{code}
	if excludeID > 0 {
		query += " AND course_id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := sqlx.GetContext(ctx, r.exec(exec), &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// Create inserts a new course and sets its generated ID.
func (r *CourseRepository) Create(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error {
	defer r.observe("course.create", time.Now())
	const query = `INSERT INTO course (course_name, course_code, course_description) VALUES ($1, $2, $3) RETURNING course_id`
	if err := sqlx.GetContext(ctx, r.exec(exec), &course.CourseID, query, course.CourseName, course.CourseCode, course.CourseDescription); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of an existing course.
func (r *CourseRepository) Update(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error {
	defer r.observe("course.update", time.Now())
	const query = `UPDATE course SET course_name = :course_name, course_code = :course_code, course_description = :course_description WHERE course_id = :course_id`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// Delete removes a course. It reports false when no row matched.
func (r *CourseRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	defer r.observe("course.delete", time.Now())
	res, err := r.exec(exec).ExecContext(ctx, `DELETE FROM course WHERE course_id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete course: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete course rows affected: %w", err)
	}
	return affected > 0, nil
}
