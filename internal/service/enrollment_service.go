package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/pkg/database"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

type enrollmentRepository interface {
	ListByStudent(ctx context.Context, exec sqlx.ExtContext, studentID int64) ([]models.Enrollment, error)
	Exists(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error
	Delete(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error)
}

type enrollmentStudentReader interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Student, error)
}

type enrollmentCourseReader interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Course, error)
}

// EnrollmentServiceParams groups constructor dependencies.
type EnrollmentServiceParams struct {
	Repo      enrollmentRepository
	Students  enrollmentStudentReader
	Courses   enrollmentCourseReader
	Tx        transactor
	Validator *validator.Validate
	Logger    *zap.Logger
}

// EnrollmentService manages which courses a student is enrolled in.
type EnrollmentService struct {
	repo      enrollmentRepository
	students  enrollmentStudentReader
	courses   enrollmentCourseReader
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(params EnrollmentServiceParams) *EnrollmentService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      params.Repo,
		students:  params.Students,
		courses:   params.Courses,
		tx:        params.Tx,
		validator: validate,
		logger:    logger,
	}
}

// List returns the student's enrollments. A student without any is reported as not found.
func (s *EnrollmentService) List(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	if err := s.ensureStudent(ctx, nil, studentID, ErrEnrollmentStudentMissing); err != nil {
		return nil, err
	}
	enrollments, err := s.repo.ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrollments")
	}
	if len(enrollments) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student has no enrollments")
	}
	return enrollments, nil
}

// CheckStudent reports ENROLLMENT002 when the student does not exist.
func (s *EnrollmentService) CheckStudent(ctx context.Context, studentID int64) error {
	return s.ensureStudent(ctx, nil, studentID, ErrEnrollStudentMissing)
}

// Enroll adds the course in req to the student's enrollments.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID int64, req dto.EnrollmentRequest) (*models.Enrollment, error) {
	var enrollment *models.Enrollment
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if err := s.ensureStudent(ctx, exec, studentID, ErrEnrollStudentMissing); err != nil {
			return err
		}
		if err := validateRequest(s.validator, req, enrollmentFieldErrors); err != nil {
			return err
		}
		courseID := *req.CourseID
		if _, err := s.courses.FindByID(ctx, exec, courseID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(ErrEnrollCourseMissing, "")
			}
			return appErrors.Internal(err, "failed to load course")
		}
		exists, err := s.repo.Exists(ctx, exec, studentID, courseID)
		if err != nil {
			return appErrors.Internal(err, "failed to check enrollment")
		}
		if exists {
			return appErrors.Clone(ErrEnrollmentExists, "")
		}

		candidate := &models.Enrollment{StudentID: studentID, CourseID: courseID}
		if err := s.repo.Create(ctx, exec, candidate); err != nil {
			switch {
			case database.IsUniqueViolation(err):
				return appErrors.Clone(ErrEnrollmentExists, "")
			case database.IsForeignKeyViolation(err):
				return appErrors.Clone(ErrEnrollCourseMissing, "")
			}
			return appErrors.Internal(err, "failed to create enrollment")
		}
		enrollment = candidate
		return nil
	})
	if err != nil {
		return nil, typedOr(err, "failed to create enrollment")
	}

	s.logger.Info("student enrolled",
		zap.Int64("enrollment_id", enrollment.EnrollmentID),
		zap.Int64("student_id", studentID),
		zap.Int64("course_id", enrollment.CourseID),
	)
	return enrollment, nil
}

// Unenroll deletes the enrollment for the pair. Unknown ids fail with Error23,
// a valid pair without an enrollment is not found.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, courseID int64) error {
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		studentOK, err := s.exists(func() error {
			_, err := s.students.FindByID(ctx, exec, studentID)
			return err
		})
		if err != nil {
			return appErrors.Internal(err, "failed to load student")
		}
		courseOK, err := s.exists(func() error {
			_, err := s.courses.FindByID(ctx, exec, courseID)
			return err
		})
		if err != nil {
			return appErrors.Internal(err, "failed to load course")
		}
		if !studentOK || !courseOK {
			return appErrors.Clone(ErrEnrollmentInvalidPair, "")
		}

		deleted, err := s.repo.Delete(ctx, exec, studentID, courseID)
		if err != nil {
			return appErrors.Internal(err, "failed to delete enrollment")
		}
		if !deleted {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil
	})
	if err != nil {
		return typedOr(err, "failed to delete enrollment")
	}

	s.logger.Info("student unenrolled", zap.Int64("student_id", studentID), zap.Int64("course_id", courseID))
	return nil
}

func (s *EnrollmentService) ensureStudent(ctx context.Context, exec sqlx.ExtContext, studentID int64, missing *appErrors.Error) error {
	ok, err := s.exists(func() error {
		_, err := s.students.FindByID(ctx, exec, studentID)
		return err
	})
	if err != nil {
		return appErrors.Internal(err, "failed to load student")
	}
	if !ok {
		return appErrors.Clone(missing, "")
	}
	return nil
}

// exists turns sql.ErrNoRows from lookup into false.
func (s *EnrollmentService) exists(lookup func() error) (bool, error) {
	if err := lookup(); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
