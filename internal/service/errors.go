package service

import (
	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

// Client facing validation errors. Codes and messages are part of the public API.
var (
	ErrCourseNameRequired = appErrors.Validation("COURSE001", "Course Name is required")
	ErrCourseCodeRequired = appErrors.Validation("COURSE002", "Course Code is required")
	ErrCourseCodeTaken    = appErrors.Validation("", "course_code already exists")

	ErrRollNumberRequired = appErrors.Validation("STUDENT001", "Roll Number required")
	ErrFirstNameRequired  = appErrors.Validation("STUDENT002", "First Name is required")
	ErrRollNumberTaken    = appErrors.Validation("Rollno1", "Roll Number already exists")

	ErrEnrollmentStudentMissing = appErrors.Validation("ENROLLMENT002", "Student does not exist")
	ErrEnrollStudentMissing     = appErrors.Validation("ENROLLMENT002", "Student does not exist.")
	ErrEnrollCourseRequired     = appErrors.Validation("Error1", "course_id is required")
	ErrEnrollCourseMissing      = appErrors.Validation("ENROLLMENT001", "course_id does not exist")
	ErrEnrollmentExists         = appErrors.Validation("Error2", "enrollment already exists")
	ErrEnrollmentInvalidPair    = appErrors.Validation("Error23", "Invalid Student Or Course ID")
)

// typedOr passes typed errors through and wraps anything else as internal.
func typedOr(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*appErrors.Error); ok {
		return err
	}
	return appErrors.Internal(err, message)
}
