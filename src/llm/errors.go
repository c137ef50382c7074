package llm

import (
	"errors"
	"fmt"
)

var (
	ErrModelNotAvailable = errors.New("model not available")
	ErrSessionBusy       = errors.New("session is still responding")
)

// UnavailableError carries the availability probe that failed. It matches
// ErrModelNotAvailable with errors.Is.
type UnavailableError struct {
	Availability Availability
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s: %s", ErrModelNotAvailable, e.Availability)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrModelNotAvailable
}

// UserMessage turns a Generate error into text fit for the transcript.
func UserMessage(err error) string {
	var unavailable *UnavailableError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unavailable):
		return unavailable.Availability.Explain()
	case errors.Is(err, ErrModelNotAvailable):
		return "On-device model is not available."
	case errors.Is(err, ErrSessionBusy):
		return "Session is still responding. Please wait for the current response to finish."
	default:
		return fmt.Sprintf("Something went wrong while generating a response: %v", err)
	}
}
