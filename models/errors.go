package models

import "fmt"

// DataValidationError reports a request payload that could not be
// deserialized into an entity.
type DataValidationError struct {
	Message string
}

func (e *DataValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}
