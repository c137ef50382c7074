package calendar

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized     = errors.New("access to the store was not granted")
	ErrNoWritableSource = errors.New("no writable source")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrSourceNotFound   = errors.New("source not found")
)

// SaveError reports a failed write. Op names what was being saved.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s save failed: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}
