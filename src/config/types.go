package config

// Config represents the complete configuration for pocketllm
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// Model runtime configuration
	Model ModelConfig `json:"model"`

	// Calendar and reminder store configuration
	Calendar CalendarConfig `json:"calendar"`

	// Notes configuration
	Notes NotesConfig `json:"notes"`

	// Chat behavior
	Chat ChatConfig `json:"chat"`

	// Storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Timezone is an IANA zone name used to read tool timestamps. Empty
	// means the system local zone.
	Timezone string `json:"timezone,omitempty" validate:"timezone"`
}

// ModelConfig defines which local model answers and how
type ModelConfig struct {
	Runtime string `json:"runtime" validate:"runtime"`
	BaseURL string `json:"base_url" validate:"omitempty,url"`
	Name    string `json:"name" validate:"required"`

	// MinMemoryMB below which the device is reported not eligible. Zero
	// disables the check.
	MinMemoryMB uint64 `json:"min_memory_mb"`

	// HistoryLimit caps the messages replayed to the model each turn. Zero
	// keeps the whole conversation.
	HistoryLimit  int      `json:"history_limit" validate:"min=0"`
	MaxToolRounds int      `json:"max_tool_rounds" validate:"min=0,max=64"`
	Temperature   *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2"`
}

// CalendarConfig defines where events and reminders are written
type CalendarConfig struct {
	EventCalendar string `json:"event_calendar" validate:"required"`
	ReminderList  string `json:"reminder_list" validate:"required"`
	CloudBrand    string `json:"cloud_brand"`

	// Access is the authorization status the stores report.
	Access string `json:"access" validate:"access_status"`

	// GrantOnRequest answers the access request made while Access is
	// not_determined.
	GrantOnRequest bool `json:"grant_on_request"`
}

// NotesConfig defines where notes are saved
type NotesConfig struct {
	Directory string `json:"directory"`
}

// ChatConfig defines chat behavior
type ChatConfig struct {
	// SurfaceErrors appends generation failures to the transcript.
	SurfaceErrors *bool `json:"surface_errors,omitempty"`
}

// StorageConfig defines persistence
type StorageConfig struct {
	DatabasePath string `json:"database_path"`
}

// LoggingConfig defines log output
type LoggingConfig struct {
	Level  string `json:"level" validate:"log_level"`
	Format string `json:"format" validate:"log_format"`
}

// ShouldSurfaceErrors reports the effective chat.surface_errors value.
func (c ChatConfig) ShouldSurfaceErrors() bool {
	return c.SurfaceErrors == nil || *c.SurfaceErrors
}

// ConfigPrecedence defines the order of configuration loading
type ConfigPrecedence struct {
	// UserConfig path
	UserConfig string

	// ProjectConfig path
	ProjectConfig string

	// EnvironmentPrefix for env var overrides
	EnvironmentPrefix string
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ConfigSource indicates where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"
	SourceProject     ConfigSource = "project"
	SourceEnvironment ConfigSource = "environment"
	SourceCLI         ConfigSource = "cli"
)
