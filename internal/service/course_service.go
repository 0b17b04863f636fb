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

type courseRepository interface {
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Course, error)
	ExistsByCode(ctx context.Context, exec sqlx.ExtContext, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error
	Update(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error)
}

// CourseServiceParams groups constructor dependencies.
type CourseServiceParams struct {
	Repo      courseRepository
	Tx        transactor
	Cache     *CacheService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// CourseService handles course use-cases.
type CourseService struct {
	repo      courseRepository
	tx        transactor
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(params CourseServiceParams) *CourseService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:      params.Repo,
		tx:        params.Tx,
		cache:     params.Cache,
		validator: validate,
		logger:    logger,
	}
}

// Get returns a course, serving it from cache when enabled.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	key := courseCacheKey(id)
	var cached models.Course
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	course, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Internal(err, "failed to load course")
	}
	_ = s.cache.Set(ctx, key, course, 0)
	return course, nil
}

// Create registers a new course. A code already in use is a conflict.
func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	if err := validateRequest(s.validator, req, courseFieldErrors); err != nil {
		return nil, err
	}
	course := &models.Course{
		CourseName:        *req.CourseName,
		CourseCode:        *req.CourseCode,
		CourseDescription: req.CourseDescription,
	}

	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByCode(ctx, exec, course.CourseCode, 0)
		if err != nil {
			return appErrors.Internal(err, "failed to validate course code")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrDuplicate, "course_code already exists")
		}
		if err := s.repo.Create(ctx, exec, course); err != nil {
			if database.IsUniqueViolation(err) {
				return appErrors.Clone(appErrors.ErrDuplicate, "course_code already exists")
			}
			return appErrors.Internal(err, "failed to create course")
		}
		return nil
	})
	if err != nil {
		return nil, typedOr(err, "failed to create course")
	}

	s.logger.Info("course created", zap.Int64("course_id", course.CourseID), zap.String("course_code", course.CourseCode))
	return course, nil
}

// Update overwrites all mutable fields of an existing course.
func (s *CourseService) Update(ctx context.Context, id int64, req dto.CourseRequest) (*models.Course, error) {
	var course *models.Course
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		existing, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "course not found")
			}
			return appErrors.Internal(err, "failed to load course")
		}
		if err := validateRequest(s.validator, req, courseFieldErrors); err != nil {
			return err
		}
		exists, err := s.repo.ExistsByCode(ctx, exec, *req.CourseCode, id)
		if err != nil {
			return appErrors.Internal(err, "failed to validate course code")
		}
		if exists {
			return appErrors.Clone(ErrCourseCodeTaken, "")
		}

		existing.CourseName = *req.CourseName
		existing.CourseCode = *req.CourseCode
		existing.CourseDescription = req.CourseDescription
		if err := s.repo.Update(ctx, exec, existing); err != nil {
			if database.IsUniqueViolation(err) {
				return appErrors.Clone(ErrCourseCodeTaken, "")
			}
			return appErrors.Internal(err, "failed to update course")
		}
		course = existing
		return nil
	})
	if err != nil {
		return nil, typedOr(err, "failed to update course")
	}

	_ = s.cache.Refresh(ctx, courseCacheKey(id), course)
	return course, nil
}

// Delete removes a course together with its enrollments.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		deleted, err := s.repo.Delete(ctx, exec, id)
		if err != nil {
			return appErrors.Internal(err, "failed to delete course")
		}
		if !deleted {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil
	})
	if err != nil {
		return typedOr(err, "failed to delete course")
	}

	_ = s.cache.Invalidate(ctx, courseCacheKey(id))
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}
