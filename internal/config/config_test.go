package config

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Gemini.Model = %q, want gemini-2.5-flash", cfg.Gemini.Model)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want 3", cfg.Retry.MaxAttempts)
	}
	if cfg.Debate.MinRounds != 2 || cfg.Debate.MaxRounds != 5 {
		t.Errorf("Debate rounds = %d/%d, want 2/5", cfg.Debate.MinRounds, cfg.Debate.MaxRounds)
	}
	if cfg.Trial.ContextChars != 400 {
		t.Errorf("Trial.ContextChars = %d, want 400", cfg.Trial.ContextChars)
	}
	if cfg.Debate.SummaryChars != 800 {
		t.Errorf("Debate.SummaryChars = %d, want 800", cfg.Debate.SummaryChars)
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should validate cleanly, got: %v", ValidationErrors(errs))
	}
}

func TestRetryConfig_BaseDelay(t *testing.T) {
	cfg := RetryConfig{BaseDelayMs: 1500}
	if got := cfg.BaseDelay().Milliseconds(); got != 1500 {
		t.Errorf("BaseDelay() = %dms, want 1500ms", got)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Retry.MaxAttempts = 0
	cfg.Debate.MinRounds = 3
	cfg.Debate.MaxRounds = 1
	cfg.Jury.ProfilesFile = ""
	cfg.Logging.Level = "verbose"

	errs := cfg.Validate()
	if len(errs) != 4 {
		t.Fatalf("Validate() returned %d errors, want 4: %v", len(errs), ValidationErrors(errs))
	}

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"retry.max_attempts", "debate.max_rounds", "jury.profiles_file", "logging.level"} {
		if !fields[want] {
			t.Errorf("expected validation error for %s", want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "debate.max_rounds", Value: 1, Message: "must be at least debate.min_rounds"},
		{Field: "logging.level", Value: "verbose", Message: "must be one of: debug, info, warn, error"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Error() = %q, want count prefix", msg)
	}
	if !strings.Contains(msg, "debate.max_rounds") {
		t.Errorf("Error() missing field name: %q", msg)
	}
}

func TestValidationErrors_Single(t *testing.T) {
	errs := ValidationErrors{
		{Field: "retry.max_attempts", Value: 0, Message: "must be at least 1"},
	}
	if strings.Contains(errs.Error(), "validation errors") {
		t.Errorf("single error should not use the multi-error format: %q", errs.Error())
	}
}
