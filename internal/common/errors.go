package common

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// WrapError annotates err with message, preserving the chain for
// errors.Is / errors.As.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
