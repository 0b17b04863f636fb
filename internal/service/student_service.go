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

type studentRepository interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Student, error)
	ExistsByRollNumber(ctx context.Context, exec sqlx.ExtContext, rollNumber string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error
	Update(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error)
}

// StudentServiceParams groups constructor dependencies.
type StudentServiceParams struct {
	Repo      studentRepository
	Tx        transactor
	Cache     *CacheService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	tx        transactor
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(params StudentServiceParams) *StudentService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:      params.Repo,
		tx:        params.Tx,
		cache:     params.Cache,
		validator: validate,
		logger:    logger,
	}
}

// Get returns student information.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	key := studentCacheKey(id)
	var cached models.Student
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	student, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Internal(err, "failed to load student")
	}
	_ = s.cache.Set(ctx, key, student, 0)
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req dto.StudentRequest) (*models.Student, error) {
	if err := validateRequest(s.validator, req, studentFieldErrors); err != nil {
		return nil, err
	}
	student := &models.Student{
		RollNumber: *req.RollNumber,
		FirstName:  *req.FirstName,
		LastName:   req.LastName,
	}

	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByRollNumber(ctx, exec, student.RollNumber, 0)
		if err != nil {
			return appErrors.Internal(err, "failed to validate roll number")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrDuplicate, "roll_number already exists")
		}
		if err := s.repo.Create(ctx, exec, student); err != nil {
			if database.IsUniqueViolation(err) {
				return appErrors.Clone(appErrors.ErrDuplicate, "roll_number already exists")
			}
			return appErrors.Internal(err, "failed to create student")
		}
		return nil
	})
	if err != nil {
		return nil, typedOr(err, "failed to create student")
	}

	s.logger.Info("student created", zap.Int64("student_id", student.StudentID))
	return student, nil
}

// Update modifies an existing student record.
func (s *StudentService) Update(ctx context.Context, id int64, req dto.StudentRequest) (*models.Student, error) {
	var student *models.Student
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		existing, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return appErrors.Internal(err, "failed to load student")
		}
		if err := validateRequest(s.validator, req, studentFieldErrors); err != nil {
			return err
		}
		exists, err := s.repo.ExistsByRollNumber(ctx, exec, *req.RollNumber, id)
		if err != nil {
			return appErrors.Internal(err, "failed to validate roll number")
		}
		if exists {
			return appErrors.Clone(ErrRollNumberTaken, "")
		}

		existing.RollNumber = *req.RollNumber
		existing.FirstName = *req.FirstName
		existing.LastName = req.LastName
		if err := s.repo.Update(ctx, exec, existing); err != nil {
			if database.IsUniqueViolation(err) {
				return appErrors.Clone(ErrRollNumberTaken, "")
			}
			return appErrors.Internal(err, "failed to update student")
		}
		student = existing
		return nil
	})
	if err != nil {
		return nil, typedOr(err, "failed to update student")
	}

	_ = s.cache.Refresh(ctx, studentCacheKey(id), student)
	return student, nil
}

// Delete removes a student and their enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		deleted, err := s.repo.Delete(ctx, exec, id)
		if err != nil {
			return appErrors.Internal(err, "failed to delete student")
		}
		if !deleted {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil
	})
	if err != nil {
		return typedOr(err, "failed to delete student")
	}

	_ = s.cache.Invalidate(ctx, studentCacheKey(id))
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
