package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/models"
)

func TestEnrollmentRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	rows := sqlmock.NewRows([]string{"enrollment_id", "student_id", "course_id"}).
		AddRow(int64(1), int64(3), int64(10)).
		AddRow(int64(2), int64(3), int64(11))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT enrollment_id, student_id, course_id FROM enrollment WHERE student_id = $1 ORDER BY enrollment_id")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	enrollments, err := repo.ListByStudent(context.Background(), nil, 3)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, int64(11), enrollments[1].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryListByStudentEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery("FROM enrollment WHERE student_id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"enrollment_id", "student_id", "course_id"}))

	enrollments, err := repo.ListByStudent(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestEnrollmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM enrollment WHERE student_id = $1 AND course_id = $2 LIMIT 1")).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), nil, 3, 10)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO enrollment (student_id, course_id) VALUES ($1, $2) RETURNING enrollment_id")).
		WithArgs(int64(3), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"enrollment_id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM enrollment WHERE student_id = $1 AND course_id = $2")).
		WithArgs(int64(3), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	enrollment := &models.Enrollment{StudentID: 3, CourseID: 10}
	require.NoError(t, repo.Create(context.Background(), nil, enrollment))
	assert.Equal(t, int64(42), enrollment.EnrollmentID)

	deleted, err := repo.Delete(context.Background(), nil, 3, 10)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
