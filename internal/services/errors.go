package services

import (
	"errors"
	"fmt"
)

// ValidationError marks input the caller can correct. Handlers map it to a
// 400; every other service error surfaces as a generic 500.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
