package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Loader handles loading and merging configurations from multiple sources
type Loader struct {
	precedence ConfigPrecedence
	validator  *Validator
	getenv     func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader(precedence ConfigPrecedence) *Loader {
	return &Loader{
		precedence: precedence,
		validator:  NewValidator(),
		getenv:     os.Getenv,
	}
}

// Load loads configuration from all sources and merges them
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	sources := []struct {
		path   string
		source ConfigSource
	}{
		{l.precedence.UserConfig, SourceUser},
		{l.precedence.ProjectConfig, SourceProject},
	}

	for _, src := range sources {
		if src.path == "" {
			continue
		}

		if cfg, err := l.loadFile(src.path); err == nil {
			config = mergeConfigs(config, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s config from %s: %w", src.source, src.path, err)
		}
	}

	if l.precedence.EnvironmentPrefix != "" {
		if err := l.applyEnvironmentOverrides(config); err != nil {
			return nil, err
		}
	}

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates a configuration after CLI overrides were applied
func (l *Loader) Validate(config *Config) error {
	return l.validator.Validate(config)
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// SaveFile saves configuration to a file
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// mergeConfigs merges two configurations with the second taking precedence
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	result.Model = mergeModelConfig(result.Model, override.Model)
	result.Calendar = mergeCalendarConfig(result.Calendar, override.Calendar)

	if override.Notes.Directory != "" {
		result.Notes.Directory = override.Notes.Directory
	}
	if override.Chat.SurfaceErrors != nil {
		result.Chat.SurfaceErrors = override.Chat.SurfaceErrors
	}
	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}
	if override.Timezone != "" {
		result.Timezone = override.Timezone
	}

	return &result
}

func mergeModelConfig(base, override ModelConfig) ModelConfig {
	result := base

	if override.Runtime != "" {
		result.Runtime = override.Runtime
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.Name != "" {
		result.Name = override.Name
	}
	if override.MinMemoryMB != 0 {
		result.MinMemoryMB = override.MinMemoryMB
	}
	if override.HistoryLimit != 0 {
		result.HistoryLimit = override.HistoryLimit
	}
	if override.MaxToolRounds != 0 {
		result.MaxToolRounds = override.MaxToolRounds
	}
	if override.Temperature != nil {
		result.Temperature = override.Temperature
	}

	return result
}

func mergeCalendarConfig(base, override CalendarConfig) CalendarConfig {
	result := base

	if override.EventCalendar != "" {
		result.EventCalendar = override.EventCalendar
	}
	if override.ReminderList != "" {
		result.ReminderList = override.ReminderList
	}
	if override.CloudBrand != "" {
		result.CloudBrand = override.CloudBrand
	}
	if override.Access != "" {
		result.Access = override.Access
	}
	if override.GrantOnRequest {
		result.GrantOnRequest = true
	}

	return result
}

// applyEnvironmentOverrides applies environment variable overrides to config
func (l *Loader) applyEnvironmentOverrides(config *Config) error {
	prefix := l.precedence.EnvironmentPrefix

	if model := l.getenv(prefix + "_MODEL"); model != "" {
		config.Model.Name = model
	}
	if baseURL := l.getenv(prefix + "_OLLAMA_URL"); baseURL != "" {
		config.Model.BaseURL = baseURL
	}
	if level := l.getenv(prefix + "_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dbPath := l.getenv(prefix + "_DB_PATH"); dbPath != "" {
		config.Storage.DatabasePath = dbPath
	}
	if dir := l.getenv(prefix + "_NOTES_DIR"); dir != "" {
		config.Notes.Directory = dir
	}
	if limit := l.getenv(prefix + "_HISTORY_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return ValidationError{Field: "model.history_limit", Message: fmt.Sprintf("invalid %s_HISTORY_LIMIT %q", prefix, limit), Value: limit}
		}
		config.Model.HistoryLimit = n
	}

	return nil
}

// Location returns the configured timezone, or the system local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// GetConfigPaths returns the configuration file paths to check
func GetConfigPaths() ConfigPrecedence {
	return ConfigPrecedence{
		UserConfig:        GetUserConfigPath(),
		ProjectConfig:     ".pocketllm.json",
		EnvironmentPrefix: "POCKETLLM",
	}
}

// FindConfigFile returns the highest precedence config file that exists
func FindConfigFile() (string, error) {
	paths := GetConfigPaths()

	for _, path := range []string{paths.ProjectConfig, paths.UserConfig} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found")
}
