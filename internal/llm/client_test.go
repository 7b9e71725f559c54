package llm

import (
	"context"
	"testing"
	"time"

	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/logging"
)

func newTestRetryer(maxAttempts int) retryer {
	return retryer{
		maxAttempts: maxAttempts,
		baseDelay:   time.Millisecond,
		logger:      logging.NopLogger(),
	}
}

func TestRetryer_SuccessFirstAttempt(t *testing.T) {
	r := newTestRetryer(3)

	calls := 0
	text, err := r.do(context.Background(), "Judge_Marshall", func() (string, error) {
		calls++
		return "Court is now in session.", nil
	})
	if err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if text != "Court is now in session." {
		t.Errorf("text = %q", text)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryer_RetriesTransientThenSucceeds(t *testing.T) {
	r := newTestRetryer(3)

	calls := 0
	text, err := r.do(context.Background(), "Attorney_Chen", func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("googleapi: Error 429: rate limit")
		}
		return "Your Honor, members of the jury...", nil
	})
	if err != nil {
		t.Fatalf("do() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if text == "" {
		t.Error("expected non-empty text after retries")
	}
}

func TestRetryer_NonRetryableFailsImmediately(t *testing.T) {
	r := newTestRetryer(3)

	calls := 0
	_, err := r.do(context.Background(), "Attorney_Webb", func() (string, error) {
		calls++
		return "", errors.New("invalid argument: malformed prompt")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (non-retryable must not retry)", calls)
	}

	var genErr *errors.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *errors.GenerationError, got %T", err)
	}
	if genErr.Persona != "Attorney_Webb" {
		t.Errorf("Persona = %q, want Attorney_Webb", genErr.Persona)
	}
	if genErr.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", genErr.Attempts)
	}
}

func TestRetryer_ExhaustsBudget(t *testing.T) {
	r := newTestRetryer(3)

	calls := 0
	cause := errors.New("the model is overloaded")
	_, err := r.do(context.Background(), "Juror_3", func() (string, error) {
		calls++
		return "", cause
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	var genErr *errors.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *errors.GenerationError, got %T", err)
	}
	if genErr.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", genErr.Attempts)
	}
	if !errors.Is(err, cause) {
		t.Error("expected last underlying error to be wrapped")
	}
}

func TestRetryer_ContextCancellation(t *testing.T) {
	r := retryer{
		maxAttempts: 5,
		baseDelay:   time.Hour, // force the cancellation branch
		logger:      logging.NopLogger(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.do(ctx, "Juror_1", func() (string, error) {
		return "", errors.New("503 service unavailable")
	})
	if err == nil {
		t.Fatal("expected error on cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled in chain, got %v", err)
	}
}

func TestBackoffDelay_Bounds(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < 4; attempt++ {
		lo := base << uint(attempt)
		hi := lo + lo/2

		for i := 0; i < 50; i++ {
			d := backoffDelay(base, attempt)
			if d < lo || d > hi {
				t.Fatalf("backoffDelay(base, %d) = %v, want within [%v, %v]", attempt, d, lo, hi)
			}
		}
	}
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(),
		config.GeminiConfig{Model: "gemini-2.5-flash"},
		config.RetryConfig{MaxAttempts: 3, BaseDelayMs: 1000},
		logging.NopLogger())
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !errors.Is(err, errors.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if !errors.IsConfig(err) {
		t.Error("missing key must be a configuration error")
	}
}
