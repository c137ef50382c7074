package storage

import "time"

type Chat struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Message struct {
	ID         string    `json:"id" db:"id"`
	ChatID     string    `json:"chat_id" db:"chat_id"`
	Seq        int64     `json:"seq" db:"seq"`
	Content    string    `json:"content" db:"content"`
	IsFromUser bool      `json:"is_from_user" db:"is_from_user"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type ToolExecution struct {
	ID         string    `json:"id" db:"id"`
	ChatID     string    `json:"chat_id" db:"chat_id"`
	ToolName   string    `json:"tool_name" db:"tool_name"`
	Input      string    `json:"input" db:"input"`
	Output     string    `json:"output" db:"output"`
	Failed     bool      `json:"failed" db:"failed"`
	DurationMs int64     `json:"duration_ms" db:"duration_ms"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Source is an account that owns calendars and reminder lists.
type Source struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	SourceType string    `json:"source_type" db:"source_type"`
	Position   int64     `json:"position" db:"position"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Calendar is an event calendar or a reminder list, depending on EntityType.
type Calendar struct {
	ID         string    `json:"id" db:"id"`
	SourceID   string    `json:"source_id" db:"source_id"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	Title      string    `json:"title" db:"title"`
	Color      string    `json:"color" db:"color"`
	Writable   bool      `json:"writable" db:"writable"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Event struct {
	ID         string    `json:"id" db:"id"`
	CalendarID string    `json:"calendar_id" db:"calendar_id"`
	Title      string    `json:"title" db:"title"`
	StartsAt   time.Time `json:"starts_at" db:"starts_at"`
	EndsAt     time.Time `json:"ends_at" db:"ends_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Reminder struct {
	ID         string     `json:"id" db:"id"`
	CalendarID string     `json:"calendar_id" db:"calendar_id"`
	Title      string     `json:"title" db:"title"`
	DueAt      *time.Time `json:"due_at,omitempty" db:"due_at"`
	Priority   int        `json:"priority" db:"priority"`
	Notes      *string    `json:"notes,omitempty" db:"notes"`
	Completed  bool       `json:"completed" db:"completed"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

const (
	EntityEvent    = "event"
	EntityReminder = "reminder"
)
