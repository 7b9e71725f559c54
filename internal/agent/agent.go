// Package agent implements the courtroom personas: the presiding judge,
// plaintiff and defense counsel, and the seated jurors. Every persona wraps
// a shared base that couples a system instruction to a text completer.
package agent

import (
	"context"
	"iter"
	"strings"

	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
)

// Role identifies which seat in the courtroom a persona occupies.
type Role string

const (
	// RoleSystem marks procedural transcript entries made by the court
	// itself (clerk announcements, seating the jury) rather than a persona.
	RoleSystem    Role = "system"
	RoleJudge     Role = "judge"
	RolePlaintiff Role = "plaintiff"
	RoleDefense   Role = "defense"
	RoleJuror     Role = "juror"
)

// Persona is the base of every courtroom agent. It binds a display name and
// system instruction to a completer and produces in-character text.
type Persona struct {
	name        string
	role        Role
	instruction string
	completer   llm.Completer
	logger      *logging.Logger
}

// NewPersona constructs a persona. The system instruction and completer are
// required; construction fails rather than deferring the problem to the
// first generation call.
func NewPersona(name string, role Role, instruction string, completer llm.Completer, logger *logging.Logger) (*Persona, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, errors.NewConfigError(name, errors.ErrEmptyInstruction)
	}
	if completer == nil {
		return nil, errors.NewConfigError(name, errors.New("text completer is nil"))
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Persona{
		name:        name,
		role:        role,
		instruction: instruction,
		completer:   completer,
		logger:      logger.WithAgent(name),
	}, nil
}

// Name returns the persona's courtroom display name.
func (p *Persona) Name() string { return p.name }

// Role returns the persona's courtroom role.
func (p *Persona) Role() Role { return p.role }

// Generate produces an in-character response using the model's default
// sampling temperature.
func (p *Persona) Generate(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, prompt, nil)
}

// GenerateWithTemperature produces an in-character response at a fixed
// sampling temperature.
func (p *Persona) GenerateWithTemperature(ctx context.Context, prompt string, temperature float32) (string, error) {
	return p.generate(ctx, prompt, &temperature)
}

// GenerateStream produces an in-character response as a finite sequence of
// text fragments at the model's default sampling temperature.
func (p *Persona) GenerateStream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	p.logger.Debug("streaming response", "role", p.role, "prompt_len", len(prompt))
	return p.completer.CompleteStream(ctx, llm.Request{
		Persona:           p.name,
		SystemInstruction: p.instruction,
		Prompt:            prompt,
	})
}

func (p *Persona) generate(ctx context.Context, prompt string, temperature *float32) (string, error) {
	p.logger.Debug("generating response", "role", p.role, "prompt_len", len(prompt))
	text, err := p.completer.Complete(ctx, llm.Request{
		Persona:           p.name,
		SystemInstruction: p.instruction,
		Prompt:            prompt,
		Temperature:       temperature,
	})
	if err != nil {
		p.logger.Error("generation failed", "role", p.role, "error", err)
		return "", err
	}
	return strings.TrimSpace(text), nil
}
