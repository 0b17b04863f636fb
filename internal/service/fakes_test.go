package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/enrollment-api/internal/models"
)

type passThroughTx struct {
	calls int
}

func (p *passThroughTx) WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error {
	p.calls++
	return fn(nil)
}

type mockCourseRepo struct {
	courses   map[int64]models.Course
	nextID    int64
	findCalls int
	createErr error
	updateErr error
	err       error
}

func newMockCourseRepo(courses ...models.Course) *mockCourseRepo {
	m := &mockCourseRepo{courses: map[int64]models.Course{}, nextID: 100}
	for _, c := range courses {
		m.courses[c.CourseID] = c
	}
	return m
}

func (m *mockCourseRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Course, error) {
	m.findCalls++
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.courses[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) ExistsByCode(ctx context.Context, exec sqlx.ExtContext, code string, excludeID int64) (bool, error) {
	for id, c := range m.courses {
		if c.CourseCode == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	course.CourseID = m.nextID
	m.courses[course.CourseID] = *course
	return nil
}

func (m *mockCourseRepo) Update(ctx context.Context, exec sqlx.ExtContext, course *models.Course) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.courses[course.CourseID] = *course
	return nil
}

func (m *mockCourseRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	if _, ok := m.courses[id]; !ok {
		return false, nil
	}
	delete(m.courses, id)
	return true, nil
}

type mockStudentRepo struct {
	students  map[int64]models.Student
	nextID    int64
	createErr error
	err       error
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: map[int64]models.Student{}, nextID: 200}
	for _, s := range students {
		m.students[s.StudentID] = s
	}
	return m
}

func (m *mockStudentRepo) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByRollNumber(ctx context.Context, exec sqlx.ExtContext, rollNumber string, excludeID int64) (bool, error) {
	for id, s := range m.students {
		if s.RollNumber == rollNumber && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	student.StudentID = m.nextID
	m.students[student.StudentID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	m.students[student.StudentID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	if _, ok := m.students[id]; !ok {
		return false, nil
	}
	delete(m.students, id)
	return true, nil
}

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type mockEnrollmentRepo struct {
	rows      map[enrollmentKey]int64
	nextID    int64
	createErr error
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{rows: map[enrollmentKey]int64{}}
}

func (m *mockEnrollmentRepo) ListByStudent(ctx context.Context, exec sqlx.ExtContext, studentID int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for key, id := range m.rows {
		if key.studentID == studentID {
			out = append(out, models.Enrollment{EnrollmentID: id, StudentID: key.studentID, CourseID: key.courseID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EnrollmentID < out[j].EnrollmentID })
	return out, nil
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error) {
	_, ok := m.rows[enrollmentKey{studentID, courseID}]
	return ok, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, exec sqlx.ExtContext, enrollment *models.Enrollment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	enrollment.EnrollmentID = m.nextID
	m.rows[enrollmentKey{enrollment.StudentID, enrollment.CourseID}] = m.nextID
	return nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, exec sqlx.ExtContext, studentID, courseID int64) (bool, error) {
	key := enrollmentKey{studentID, courseID}
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}
