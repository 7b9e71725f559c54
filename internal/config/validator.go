package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "debate.max_rounds")
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
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.Retry.MaxAttempts < 1 {
		errors = append(errors, ValidationError{
			Field:   "retry.max_attempts",
			Value:   c.Retry.MaxAttempts,
			Message: "must be at least 1",
		})
	}
	if c.Retry.BaseDelayMs < 0 {
		errors = append(errors, ValidationError{
			Field:   "retry.base_delay_ms",
			Value:   c.Retry.BaseDelayMs,
			Message: "must not be negative",
		})
	}

	if c.Trial.MaxArgumentRounds < 1 {
		errors = append(errors, ValidationError{
			Field:   "trial.max_argument_rounds",
			Value:   c.Trial.MaxArgumentRounds,
			Message: "must be at least 1",
		})
	}
	if c.Trial.ContextChars < 1 {
		errors = append(errors, ValidationError{
			Field:   "trial.context_chars",
			Value:   c.Trial.ContextChars,
			Message: "must be at least 1",
		})
	}

	if c.Debate.MinRounds < 1 {
		errors = append(errors, ValidationError{
			Field:   "debate.min_rounds",
			Value:   c.Debate.MinRounds,
			Message: "must be at least 1",
		})
	}
	if c.Debate.MaxRounds < c.Debate.MinRounds {
		errors = append(errors, ValidationError{
			Field:   "debate.max_rounds",
			Value:   c.Debate.MaxRounds,
			Message: "must be at least debate.min_rounds",
		})
	}
	if c.Debate.ConcludeTemperature < 0 || c.Debate.ConcludeTemperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "debate.conclude_temperature",
			Value:   c.Debate.ConcludeTemperature,
			Message: "must be between 0 and 2",
		})
	}
	if c.Debate.SummaryChars < 1 {
		errors = append(errors, ValidationError{
			Field:   "debate.summary_chars",
			Value:   c.Debate.SummaryChars,
			Message: "must be at least 1",
		})
	}

	if c.Jury.ProfilesFile == "" {
		errors = append(errors, ValidationError{
			Field:   "jury.profiles_file",
			Value:   c.Jury.ProfilesFile,
			Message: "must not be empty",
		})
	}
	if c.Jury.ParallelWorkers < 0 {
		errors = append(errors, ValidationError{
			Field:   "jury.parallel_workers",
			Value:   c.Jury.ParallelWorkers,
			Message: "must not be negative (0 means one worker per juror)",
		})
	}

	if c.Rulebook.CacheSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "rulebook.cache_size",
			Value:   c.Rulebook.CacheSize,
			Message: "must be at least 1",
		})
	}

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
