package toolsutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// Package-level logger for tools
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError, // Default to only showing errors
}))

// SetLogger allows setting a custom logger for the tools package
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GetLogger returns the package logger
func GetLogger() *slog.Logger {
	return logger
}

// TimestampLayout is the wire format for every date argument. It carries no
// zone, so values are read in the caller's location.
const TimestampLayout = "2006-01-02T15:04:05"

// TimestampFormatHint is how the format is named to the model.
const TimestampFormatHint = "yyyy-MM-ddTHH:mm:ss"

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp parses s as a local wall-clock time in loc. Fractional
// seconds and zone suffixes are rejected.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(s) != len(TimestampLayout) {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidTimestamp, s, TimestampFormatHint)
	}
	t, err := time.ParseInLocation(TimestampLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidTimestamp, s, TimestampFormatHint)
	}
	return t, nil
}

// Priority values understood by the reminder store.
const (
	PriorityNone   = 0
	PriorityHigh   = 1
	PriorityMedium = 5
	PriorityLow    = 9
)

// PriorityFromString maps free text to the reminder priority scale.
func PriorityFromString(s string) int {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	case "low":
		return PriorityLow
	default:
		return PriorityNone
	}
}

// FileNameFromTitle turns a note title into a file name: spaces become
// underscores and path separators are neutralized.
func FileNameFromTitle(title string) string {
	name := strings.TrimSpace(title)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.NewReplacer("/", "-", "\\", "-", "\x00", "").Replace(name)
	if name == "" || name == "." || name == ".." {
		name = "Untitled"
	}
	return name + ".txt"
}

// SafeSubdir cleans a user supplied folder name so it stays below the notes
// root. An empty result means the root itself.
func SafeSubdir(folder string) string {
	folder = strings.TrimSpace(folder)
	if folder == "" || strings.Contains(folder, "\x00") {
		return ""
	}
	clean := filepath.Clean("/" + filepath.ToSlash(folder))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return ""
	}
	return filepath.FromSlash(clean)
}

// FormatDueDate renders a reminder due date for humans.
func FormatDueDate(t time.Time) string {
	return t.Format("Jan 2, 2006 at 3:04 PM")
}

// FormatCreated renders the creation stamp written into notes.
func FormatCreated(t time.Time) string {
	return t.Format("Monday, January 2, 2006 at 3:04 PM")
}
