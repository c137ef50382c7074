package agent

import "fmt"

// Result is the outcome of a tool handler. Text is what the model reads.
type Result struct {
	Text   string
	Failed bool
}

// Success returns a successful result.
func Success(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...)}
}

// Failure returns a failed result. The text must tell the model what went wrong
// so it can retry or explain the problem to the user.
func Failure(format string, args ...any) Result {
	return Result{Text: fmt.Sprintf(format, args...), Failed: true}
}
