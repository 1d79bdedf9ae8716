package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request that failed a domain rule before reaching
	// persistence.
	ErrValidation = errors.New("validation failed")

	// ErrIncorrectParameter marks an out-of-range or malformed operation
	// parameter, including equal-id friend operations.
	ErrIncorrectParameter = errors.New("incorrect parameter")
)

func incorrectParameter(name string) error {
	return fmt.Errorf("%w: %q", ErrIncorrectParameter, name)
}
