package main

import (
	"errors"
	"os"

	"github.com/elee1766/pocketllm/src/calendar"
	"github.com/elee1766/pocketllm/src/config"
	"github.com/elee1766/pocketllm/src/llm"
)

// Exit codes following standard conventions
const (
	ExitSuccess       = 0  // Success
	ExitError         = 1  // General error
	ExitConfig        = 3  // Configuration error
	ExitPermission    = 5  // Permission error
	ExitModelNotReady = 10 // Model runtime unavailable
)

// exitCode determines the appropriate exit code for an error
func exitCode(err error) int {
	var validation config.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, llm.ErrModelNotAvailable):
		return ExitModelNotReady
	case errors.Is(err, calendar.ErrUnauthorized), errors.Is(err, os.ErrPermission):
		return ExitPermission
	case errors.As(err, &validation), errors.Is(err, errConfig):
		return ExitConfig
	default:
		return ExitError
	}
}

// errConfig marks failures to load or apply configuration.
var errConfig = errors.New("configuration error")
