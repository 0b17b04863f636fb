package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

func newStudentServiceFixture(repo *mockStudentRepo) *StudentService {
	return NewStudentService(StudentServiceParams{Repo: repo, Tx: &passThroughTx{}, Logger: zap.NewNop()})
}

func TestStudentServiceCreateRoundTrip(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newStudentServiceFixture(repo)

	created, err := svc.Create(context.Background(), dto.StudentRequest{RollNumber: strPtr("R-001"), FirstName: strPtr("Ada")})
	require.NoError(t, err)

	fetched, err := svc.Get(context.Background(), created.StudentID)
	require.NoError(t, err)
	assert.Equal(t, "R-001", fetched.RollNumber)
	assert.Equal(t, "Ada", fetched.FirstName)
	assert.Nil(t, fetched.LastName)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := newStudentServiceFixture(newMockStudentRepo())

	_, err := svc.Create(context.Background(), dto.StudentRequest{FirstName: strPtr("Ada")})
	appErr := appErrors.FromError(err)
	assert.Equal(t, "STUDENT001", appErr.Code)
	assert.Equal(t, "Roll Number required", appErr.Message)

	_, err = svc.Create(context.Background(), dto.StudentRequest{RollNumber: strPtr("R-001")})
	assert.ErrorIs(t, err, ErrFirstNameRequired)
}

func TestStudentServiceCreateDuplicate(t *testing.T) {
	repo := newMockStudentRepo(models.Student{StudentID: 1, RollNumber: "R-001", FirstName: "Ada"})
	svc := newStudentServiceFixture(repo)

	_, err := svc.Create(context.Background(), dto.StudentRequest{RollNumber: strPtr("R-001"), FirstName: strPtr("Grace")})
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
}

func TestStudentServiceCreateTranslatesPostgresUniqueViolation(t *testing.T) {
	repo := newMockStudentRepo()
	repo.createErr = &pq.Error{Code: "23505", Constraint: "student_roll_number_key"}
	svc := newStudentServiceFixture(repo)

	_, err := svc.Create(context.Background(), dto.StudentRequest{RollNumber: strPtr("R-001"), FirstName: strPtr("Ada")})
	assert.ErrorIs(t, err, appErrors.ErrDuplicate)
}

func TestStudentServiceUpdate(t *testing.T) {
	last := "Lovelace"
	repo := newMockStudentRepo(
		models.Student{StudentID: 1, RollNumber: "R-001", FirstName: "Ada", LastName: &last},
		models.Student{StudentID: 2, RollNumber: "R-002", FirstName: "Grace"},
	)
	svc := newStudentServiceFixture(repo)

	_, err := svc.Update(context.Background(), 99, dto.StudentRequest{RollNumber: strPtr("R-009"), FirstName: strPtr("X")})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Update(context.Background(), 1, dto.StudentRequest{RollNumber: strPtr("R-002"), FirstName: strPtr("Ada")})
	assert.ErrorIs(t, err, ErrRollNumberTaken)

	updated, err := svc.Update(context.Background(), 1, dto.StudentRequest{RollNumber: strPtr("R-001"), FirstName: strPtr("Augusta")})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Nil(t, updated.LastName)
}

func TestStudentServiceDelete(t *testing.T) {
	repo := newMockStudentRepo(models.Student{StudentID: 1, RollNumber: "R-001", FirstName: "Ada"})
	svc := newStudentServiceFixture(repo)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), appErrors.ErrNotFound)
}

func TestStudentServiceUpdateWritesFreshRowToCache(t *testing.T) {
	repo := newMockStudentRepo(models.Student{StudentID: 1, RollNumber: "R-001", FirstName: "Ada"})
	cacheRepo := newMemoryCacheRepo()
	svc := NewStudentService(StudentServiceParams{
		Repo:   repo,
		Tx:     &passThroughTx{},
		Cache:  NewCacheService(cacheRepo, nil, time.Minute, nil, true),
		Logger: zap.NewNop(),
	})
	require.NoError(t, svc.cache.Set(context.Background(), "student:1", models.Student{StudentID: 1, RollNumber: "R-001", FirstName: "Ada"}, 0))

	_, err := svc.Update(context.Background(), 1, dto.StudentRequest{RollNumber: strPtr("R-001"), FirstName: strPtr("Augusta")})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.NotContains(t, cacheRepo.deleted, "student:1")
}
