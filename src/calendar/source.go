package calendar

import (
	"fmt"
	"strings"
)

// SourceType is the kind of account a source represents.
type SourceType string

const (
	SourceLocal      SourceType = "local"
	SourceCalDAV     SourceType = "caldav"
	SourceExchange   SourceType = "exchange"
	SourceSubscribed SourceType = "subscribed"
	SourceBirthdays  SourceType = "birthdays"
)

// ParseSourceType validates a source type name.
func ParseSourceType(s string) (SourceType, error) {
	switch t := SourceType(strings.ToLower(strings.TrimSpace(s))); t {
	case SourceLocal, SourceCalDAV, SourceExchange, SourceSubscribed, SourceBirthdays:
		return t, nil
	default:
		return "", fmt.Errorf("unknown source type %q", s)
	}
}

// Source is a storage account that may own calendars and reminder lists.
type Source struct {
	ID    string
	Title string
	Type  SourceType
}

// ReadOnly reports whether new containers can never be created in s.
func (s Source) ReadOnly() bool {
	return s.Type == SourceSubscribed || s.Type == SourceBirthdays
}

// ResolveWritableSource picks the source new containers are created in:
// a CalDAV source whose title contains brand, else the first local source,
// else the first source that is not read-only.
func ResolveWritableSource(sources []Source, brand string) (Source, error) {
	if brand != "" {
		for _, s := range sources {
			if s.Type == SourceCalDAV && strings.Contains(s.Title, brand) {
				return s, nil
			}
		}
	}
	for _, s := range sources {
		if s.Type == SourceLocal {
			return s, nil
		}
	}
	for _, s := range sources {
		if !s.ReadOnly() {
			return s, nil
		}
	}
	return Source{}, ErrNoWritableSource
}
