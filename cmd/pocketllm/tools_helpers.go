package main

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// unknownToolError suggests the closest registered names.
func unknownToolError(name string, names []string) error {
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return fmt.Errorf("tool not found: %s", name)
	}
	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
	}
	return fmt.Errorf("tool not found: %s (did you mean %s?)", name, strings.Join(suggestions, ", "))
}
