package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enrollment-api/internal/dto"
	"github.com/noah-isme/enrollment-api/internal/models"
	"github.com/noah-isme/enrollment-api/internal/service"
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

type courseServiceMock struct {
	getResp    *models.Course
	getErr     error
	createResp *models.Course
	createErr  error
	updateErr  error
	deleteErr  error
	lastReq    dto.CourseRequest
	lastID     int64
	getCalled  bool
	updCalled  bool
}

func (m *courseServiceMock) Get(ctx context.Context, id int64) (*models.Course, error) {
	m.getCalled = true
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *courseServiceMock) Create(ctx context.Context, req dto.CourseRequest) (*models.Course, error) {
	m.lastReq = req
	return m.createResp, m.createErr
}

func (m *courseServiceMock) Update(ctx context.Context, id int64, req dto.CourseRequest) (*models.Course, error) {
	m.updCalled = true
	m.lastID = id
	m.lastReq = req
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return &models.Course{CourseID: id, CourseName: *req.CourseName, CourseCode: *req.CourseCode, CourseDescription: req.CourseDescription}, nil
}

func (m *courseServiceMock) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	return m.deleteErr
}

func newCourseRouter(svc courseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCourseHandler(svc)
	r.GET("/api/course/:course_id", h.Get)
	r.POST("/api/course", h.Create)
	r.PUT("/api/course/:course_id", h.Update)
	r.DELETE("/api/course/:course_id", h.Delete)
	return r
}

func serve(r http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCourseHandlerGet(t *testing.T) {
	svc := &courseServiceMock{getResp: &models.Course{CourseID: 3, CourseName: "Maths", CourseCode: "MA101"}}
	w := serve(newCourseRouter(svc), http.MethodGet, "/api/course/3", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"course_id":3,"course_name":"Maths","course_code":"MA101","course_description":null}`, w.Body.String())
	assert.Equal(t, int64(3), svc.lastID)
}

func TestCourseHandlerGetNonNumericIDIsNotFound(t *testing.T) {
	svc := &courseServiceMock{}
	r := newCourseRouter(svc)

	for _, target := range []string{"/api/course/abc", "/api/course/-1"} {
		w := serve(r, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Empty(t, w.Body.String(), target)
	}
	assert.False(t, svc.getCalled)
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	svc := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "course not found")}
	w := serve(newCourseRouter(svc), http.MethodGet, "/api/course/3", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCourseHandlerCreate(t *testing.T) {
	svc := &courseServiceMock{createResp: &models.Course{CourseID: 1, CourseName: "Maths", CourseCode: "MA101"}}
	w := serve(newCourseRouter(svc), http.MethodPost, "/api/course", "application/json", `{"course_name":"Maths","course_code":"MA101"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"course_id":1`)
	require.NotNil(t, svc.lastReq.CourseName)
	assert.Equal(t, "Maths", *svc.lastReq.CourseName)
	assert.Nil(t, svc.lastReq.CourseDescription)
}

func TestCourseHandlerCreateAcceptsForm(t *testing.T) {
	svc := &courseServiceMock{createResp: &models.Course{CourseID: 1}}
	form := url.Values{"course_name": {"Maths"}, "course_code": {"MA101"}}
	w := serve(newCourseRouter(svc), http.MethodPost, "/api/course", "application/x-www-form-urlencoded", form.Encode())

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.lastReq.CourseCode)
	assert.Equal(t, "MA101", *svc.lastReq.CourseCode)
}

func TestCourseHandlerCreateEmptyBodyReachesValidation(t *testing.T) {
	svc := &courseServiceMock{createErr: service.ErrCourseNameRequired}
	w := serve(newCourseRouter(svc), http.MethodPost, "/api/course", "application/json", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error_code":"COURSE001","error_message":"Course Name is required"}`, w.Body.String())
	assert.Nil(t, svc.lastReq.CourseName)
}

func TestCourseHandlerCreateMalformedBody(t *testing.T) {
	w := serve(newCourseRouter(&courseServiceMock{}), http.MethodPost, "/api/course", "application/json", `{"course_name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"INVALID_PAYLOAD"`)
}

func TestCourseHandlerCreateConflictHasNoBody(t *testing.T) {
	svc := &courseServiceMock{createErr: appErrors.Clone(appErrors.ErrDuplicate, "course_code already exists")}
	w := serve(newCourseRouter(svc), http.MethodPost, "/api/course", "application/json", `{"course_name":"Maths","course_code":"MA101"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCourseHandlerUpdateMalformedBodyOnMissingCourseIsNotFound(t *testing.T) {
	svc := &courseServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "course not found")}
	w := serve(newCourseRouter(svc), http.MethodPut, "/api/course/8", "application/json", `not json`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, svc.updCalled)
}

func TestCourseHandlerUpdateMalformedBodyOnExistingCourse(t *testing.T) {
	svc := &courseServiceMock{getResp: &models.Course{CourseID: 8}}
	w := serve(newCourseRouter(svc), http.MethodPut, "/api/course/8", "application/json", `not json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_PAYLOAD")
}

func TestCourseHandlerUpdate(t *testing.T) {
	svc := &courseServiceMock{}
	w := serve(newCourseRouter(svc), http.MethodPut, "/api/course/8", "application/json", `{"course_name":"Maths","course_code":"MA102","course_description":"Intro"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"course_id":8,"course_name":"Maths","course_code":"MA102","course_description":"Intro"}`, w.Body.String())
}

func TestCourseHandlerDelete(t *testing.T) {
	svc := &courseServiceMock{}
	w := serve(newCourseRouter(svc), http.MethodDelete, "/api/course/8", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, int64(8), svc.lastID)
}

func TestCourseHandlerInternalErrorIsGeneric(t *testing.T) {
	svc := &courseServiceMock{deleteErr: errors.New("pq: relation \"course\" does not exist")}
	w := serve(newCourseRouter(svc), http.MethodDelete, "/api/course/8", "", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "relation"))
	assert.JSONEq(t, `{"error_code":"INTERNAL_ERROR","error_message":"internal server error"}`, w.Body.String())
}
