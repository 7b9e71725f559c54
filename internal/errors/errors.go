// Package errors provides centralized error definitions and error handling
// utilities for the Lex Umbra codebase. It defines domain-specific errors,
// error constructors with context wrapping, and classification helpers.
//
// # Error Types
//
// The package provides three categories of errors:
//
//   - ConfigError: invalid or missing configuration detected at construction
//     time (missing API key, empty persona instruction). Never retried.
//   - GenerationError: a text-completion call failed after exhausting the
//     retry budget, or failed with a non-retryable cause.
//   - NotFoundError: a required resource (juror profile store, case document,
//     rulebook) could not be located.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewConfigError("judge", errors.ErrMissingAPIKey)
//	err := errors.NewGenerationError("Juror_3", 3, cause)
//	err := errors.NewNotFoundError("juror profiles", "./data/jurors.json")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMissingAPIKey) { ... }
//
//	var genErr *errors.GenerationError
//	if errors.As(err, &genErr) { ... }
//
//	if errors.IsRetryable(err) { ... }
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Configuration sentinel errors
var (
	// ErrMissingAPIKey indicates no Gemini API key was configured.
	ErrMissingAPIKey = New("GEMINI_API_KEY not found: set it in the environment or .env file")
	// ErrEmptyInstruction indicates a persona was constructed without a system instruction.
	ErrEmptyInstruction = New("persona system instruction is empty")
)

// Trial sentinel errors
var (
	// ErrNoCaseFiled indicates an operation requires case facts that were never set.
	ErrNoCaseFiled = New("no case has been filed")
	// ErrCourtNotAssembled indicates agents have not been initialized.
	ErrCourtNotAssembled = New("court has not been assembled")
	// ErrPanelEmpty indicates the juror panel seated no jurors.
	ErrPanelEmpty = New("juror panel is empty")
	// ErrInvalidPhase indicates an operation was attempted in the wrong trial phase.
	ErrInvalidPhase = New("operation not valid in current trial phase")
)

// Reference sentinel errors
var (
	// ErrRulebookUnavailable indicates the legal reference index cannot be queried.
	ErrRulebookUnavailable = New("legal rulebook unavailable")
)

// -----------------------------------------------------------------------------
// ConfigError
// -----------------------------------------------------------------------------

// ConfigError represents a construction-time configuration failure.
// Configuration errors are fatal to the component being constructed
// and are never retried.
type ConfigError struct {
	// Component identifies what was being constructed (e.g., "judge", "juror panel").
	Component string
	// Err is the underlying error.
	Err error
}

// NewConfigError creates a ConfigError for the named component.
func NewConfigError(component string, err error) *ConfigError {
	return &ConfigError{Component: component, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("config: %s: invalid configuration", e.Component)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// -----------------------------------------------------------------------------
// GenerationError
// -----------------------------------------------------------------------------

// GenerationError represents a failed text-completion call. It carries the
// persona that issued the call and the number of attempts made, so the
// operator can see which agent failed and whether retries were exhausted.
type GenerationError struct {
	// Persona is the identifier of the agent whose call failed.
	Persona string
	// Attempts is the number of attempts made before giving up.
	Attempts int
	// Err is the last underlying error.
	Err error
}

// NewGenerationError creates a GenerationError for the given persona.
func NewGenerationError(persona string, attempts int, err error) *GenerationError {
	return &GenerationError{Persona: persona, Attempts: attempts, Err: err}
}

func (e *GenerationError) Error() string {
	if e.Attempts > 1 {
		return fmt.Sprintf("[%s] generation failed after %d attempts: %v", e.Persona, e.Attempts, e.Err)
	}
	return fmt.Sprintf("[%s] generation failed: %v", e.Persona, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// -----------------------------------------------------------------------------
// NotFoundError
// -----------------------------------------------------------------------------

// NotFoundError represents a missing required resource, such as the juror
// profile store or a case document. Distinct from GenerationError: resource
// lookup failures are raised at the specific loading operation and are
// never retried automatically.
type NotFoundError struct {
	// Resource describes what was being looked up.
	Resource string
	// Path is where the resource was expected.
	Path string
}

// NewNotFoundError creates a NotFoundError for the given resource and path.
func NewNotFoundError(resource, path string) *NotFoundError {
	return &NotFoundError{Resource: resource, Path: path}
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.Path)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// retryableMarkers are substrings that identify transient completion-service
// failures. Matching mirrors the upstream service's error surface: rate
// limiting, quota exhaustion, and transient overload all warrant a retry.
var retryableMarkers = []string{
	"rate limit",
	"quota",
	"429",
	"503",
	"overloaded",
	"timeout",
	"unavailable",
}

// IsRetryable reports whether an error represents a transient failure that
// may succeed on retry. Configuration and not-found errors are never
// retryable regardless of message content.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var cfgErr *ConfigError
	if As(err, &cfgErr) {
		return false
	}
	var nfErr *NotFoundError
	if As(err, &nfErr) {
		return false
	}

	if Is(err, context.DeadlineExceeded) {
		return true
	}
	if Is(err, context.Canceled) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range retryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsConfig reports whether an error is a construction-time configuration failure.
func IsConfig(err error) bool {
	var cfgErr *ConfigError
	return As(err, &cfgErr)
}

// IsNotFound reports whether an error is a missing-resource failure.
func IsNotFound(err error) bool {
	var nfErr *NotFoundError
	return As(err, &nfErr)
}
