package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "storage.backend")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Limits for display.title_width.
const (
	MinTitleWidth = 10
	MaxTitleWidth = 200
)

// ValidBackends returns the accepted storage.backend values
func ValidBackends() []string {
	return []string{"file", "sqlite", "memory"}
}

// ValidFilters returns the accepted display.default_filter values
func ValidFilters() []string {
	return []string{"all", "pending", "completed"}
}

// ValidPriorities returns the accepted display.default_priority values
func ValidPriorities() []string {
	return []string{"low", "medium", "high"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateDisplay()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func oneOf(field, value string, valid []string) []ValidationError {
	if slices.Contains(valid, strings.ToLower(value)) {
		return nil
	}
	return []ValidationError{{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(valid, ", ")),
	}}
}

func (c *Config) validateStorage() []ValidationError {
	errs := oneOf("storage.backend", c.Storage.Backend, ValidBackends())

	if c.Storage.QuotaBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "storage.quota_bytes",
			Value:   c.Storage.QuotaBytes,
			Message: "must be non-negative (0 disables the quota)",
		})
	}
	return errs
}

func (c *Config) validateDisplay() []ValidationError {
	var errs []ValidationError
	errs = append(errs, oneOf("display.default_filter", c.Display.DefaultFilter, ValidFilters())...)
	errs = append(errs, oneOf("display.default_priority", c.Display.DefaultPriority, ValidPriorities())...)

	if c.Display.TitleWidth < MinTitleWidth || c.Display.TitleWidth > MaxTitleWidth {
		errs = append(errs, ValidationError{
			Field:   "display.title_width",
			Value:   c.Display.TitleWidth,
			Message: fmt.Sprintf("must be between %d and %d", MinTitleWidth, MaxTitleWidth),
		})
	}

	if !isDateLayout(c.Display.DateFormat) {
		errs = append(errs, ValidationError{
			Field:   "display.date_format",
			Value:   c.Display.DateFormat,
			Message: "must be a Go time layout that includes the day, e.g. \"Jan 2, 2006\"",
		})
	}
	return errs
}

// isDateLayout reports whether layout prints a reference date in a way that
// distinguishes days.
func isDateLayout(layout string) bool {
	if strings.TrimSpace(layout) == "" {
		return false
	}
	a := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC).Format(layout)
	b := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC).Format(layout)
	return a != b
}

func (c *Config) validateLogging() []ValidationError {
	errs := oneOf("logging.level", c.Logging.Level, ValidLogLevels())

	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}
	return errs
}
