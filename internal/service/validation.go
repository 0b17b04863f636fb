package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/enrollment-api/pkg/errors"
)

// fieldErrors maps a struct field name to the error reported when it fails validation.
type fieldErrors map[string]*appErrors.Error

var (
	courseFieldErrors = fieldErrors{
		"CourseName": ErrCourseNameRequired,
		"CourseCode": ErrCourseCodeRequired,
	}
	studentFieldErrors = fieldErrors{
		"RollNumber": ErrRollNumberRequired,
		"FirstName":  ErrFirstNameRequired,
	}
	enrollmentFieldErrors = fieldErrors{
		"CourseID": ErrEnrollCourseRequired,
	}
)

// validateRequest runs the struct validator and reports the first failing field,
// in declaration order, as its coded error.
func validateRequest(v *validator.Validate, req interface{}, codes fieldErrors) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Internal(err, "failed to validate payload")
	}
	for _, fe := range fieldErrs {
		if coded, ok := codes[fe.StructField()]; ok {
			return appErrors.Clone(coded, "")
		}
	}
	return appErrors.Wrap(err, appErrors.ErrInvalidPayload, "")
}
