package config

// Supported model runtimes
const (
	RuntimeOllama = "ollama"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	paths := GetDefaultStoragePaths()
	return &Config{
		Version: "1.0",
		Model: ModelConfig{
			Runtime:       RuntimeOllama,
			BaseURL:       "http://localhost:11434",
			Name:          "llama3.2:latest",
			HistoryLimit:  0,
			MaxToolRounds: 8,
		},
		Calendar: CalendarConfig{
			EventCalendar: "LLM_TEST_CALENDAR",
			ReminderList:  "LLM Reminders",
			CloudBrand:    "iCloud",
			Access:        "authorized",
		},
		Notes: NotesConfig{
			Directory: GetDefaultNotesPath(),
		},
		Storage: StorageConfig{
			DatabasePath: paths.DatabasePath,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}
