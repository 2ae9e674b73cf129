package service

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter matches every *InvalidParameterError via errors.Is.
var ErrInvalidParameter = errors.New("invalid deal parameter")

// InvalidParameterError reports a deal parameter outside the range the
// projection can work with.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s (%g): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func invalidParam(field string, value float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}
