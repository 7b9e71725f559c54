// Package llm wraps the Gemini API behind a small text-completion contract.
// It provides persona system-instruction injection, exponential backoff with
// jitter on transient failures, and streaming generation.
package llm

import (
	"context"
	"iter"
	"math/rand/v2"
	"time"

	"google.golang.org/genai"

	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/logging"
)

// Request describes a single completion call.
type Request struct {
	// Persona identifies the calling agent; used for logging and error attribution.
	Persona string
	// SystemInstruction is the persona system prompt. Must not be empty.
	SystemInstruction string
	// Prompt is the user prompt for this turn.
	Prompt string
	// Temperature optionally overrides the model's sampling temperature.
	Temperature *float32
}

// Completer is the text-completion service contract that all personas
// depend on. Implementations must be safe for concurrent use: juror
// deliberation fans out completion calls in parallel.
type Completer interface {
	// Complete generates a response, retrying transient failures. After the
	// retry budget is exhausted it fails with a *errors.GenerationError
	// wrapping the last underlying error.
	Complete(ctx context.Context, req Request) (string, error)

	// CompleteStream generates a response as a finite sequence of text
	// fragments. The sequence is not restartable: ranging over it twice
	// re-issues the request.
	CompleteStream(ctx context.Context, req Request) iter.Seq2[string, error]
}

// GeminiClient implements Completer against the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	retry  retryer
	logger *logging.Logger
}

var _ Completer = (*GeminiClient)(nil)

// NewGeminiClient constructs a Gemini-backed completer. It fails fast with a
// *errors.ConfigError when no API key is configured, so that court assembly
// can detect misconfiguration before any phase begins.
func NewGeminiClient(ctx context.Context, gemini config.GeminiConfig, retry config.RetryConfig, logger *logging.Logger) (*GeminiClient, error) {
	if gemini.APIKey == "" {
		return nil, errors.NewConfigError("gemini client", errors.ErrMissingAPIKey)
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.NewConfigError("gemini client", err)
	}

	return &GeminiClient{
		client: client,
		model:  gemini.Model,
		retry: retryer{
			maxAttempts: retry.MaxAttempts,
			baseDelay:   retry.BaseDelay(),
			logger:      logger,
		},
		logger: logger,
	}, nil
}

// Complete implements Completer.
func (g *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	cfg := g.generateConfig(req)

	return g.retry.do(ctx, req.Persona, func() (string, error) {
		resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	})
}

// CompleteStream implements Completer. Streaming calls are not retried:
// a mid-stream failure surfaces as the final element of the sequence,
// wrapped in a *errors.GenerationError.
func (g *GeminiClient) CompleteStream(ctx context.Context, req Request) iter.Seq2[string, error] {
	cfg := g.generateConfig(req)

	return func(yield func(string, error) bool) {
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(req.Prompt), cfg) {
			if err != nil {
				yield("", errors.NewGenerationError(req.Persona, 1, err))
				return
			}
			if text := resp.Text(); text != "" {
				if !yield(text, nil) {
					return
				}
			}
		}
	}
}

func (g *GeminiClient) generateConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(*req.Temperature)
	}
	return cfg
}

// retryer runs a completion call under the bounded retry policy.
type retryer struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *logging.Logger
}

// do invokes call, retrying on retryable errors with exponential backoff
// plus jitter. Non-retryable errors fail immediately. Either way the caller
// receives a *errors.GenerationError carrying the persona and attempt count.
func (r retryer) do(ctx context.Context, persona string, call func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		text, err := call()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !errors.IsRetryable(err) {
			return "", errors.NewGenerationError(persona, attempt+1, err)
		}
		if attempt == r.maxAttempts-1 {
			break
		}

		delay := backoffDelay(r.baseDelay, attempt)
		r.logger.Warn("transient completion failure, retrying",
			"persona", persona,
			"attempt", attempt+1,
			"delay", delay.String(),
			"error", err.Error(),
		)

		select {
		case <-ctx.Done():
			return "", errors.NewGenerationError(persona, attempt+1, ctx.Err())
		case <-time.After(delay):
		}
	}

	return "", errors.NewGenerationError(persona, r.maxAttempts, lastErr)
}

// backoffDelay computes base * 2^attempt plus up to 50% uniform jitter.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	delay := base << uint(attempt)
	jitter := time.Duration(rand.Int64N(int64(delay)/2 + 1))
	return delay + jitter
}
