package agent

import (
	"context"
	"iter"

	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
	"github.com/lexumbra/lexumbra/internal/prompts"
)

// Lawyer is counsel for one side of the case. The same type argues both
// sides; the role selects which prompt family it draws from.
type Lawyer struct {
	*Persona
}

// NewPlaintiffCounsel constructs plaintiff's counsel.
func NewPlaintiffCounsel(completer llm.Completer, logger *logging.Logger) (*Lawyer, error) {
	base, err := NewPersona("Attorney Chen", RolePlaintiff, prompts.PlaintiffSystem, completer, logger)
	if err != nil {
		return nil, err
	}
	return &Lawyer{Persona: base}, nil
}

// NewDefenseCounsel constructs defense counsel.
func NewDefenseCounsel(completer llm.Completer, logger *logging.Logger) (*Lawyer, error) {
	base, err := NewPersona("Attorney Webb", RoleDefense, prompts.DefenseSystem, completer, logger)
	if err != nil {
		return nil, err
	}
	return &Lawyer{Persona: base}, nil
}

// Opening delivers the side's opening statement.
func (l *Lawyer) Opening(ctx context.Context, caseFacts string) (string, error) {
	if l.Role() == RolePlaintiff {
		return l.Generate(ctx, prompts.PlaintiffOpening(caseFacts))
	}
	return l.Generate(ctx, prompts.DefenseOpening(caseFacts))
}

// OpeningStream delivers the opening statement as a stream of fragments.
func (l *Lawyer) OpeningStream(ctx context.Context, caseFacts string) iter.Seq2[string, error] {
	if l.Role() == RolePlaintiff {
		return l.GenerateStream(ctx, prompts.PlaintiffOpening(caseFacts))
	}
	return l.GenerateStream(ctx, prompts.DefenseOpening(caseFacts))
}

// MainArgument presents the side's first substantive argument of the
// argument phase, with no prior round to respond to.
func (l *Lawyer) MainArgument(ctx context.Context, caseFacts string) (string, error) {
	if l.Role() == RolePlaintiff {
		return l.Generate(ctx, prompts.PlaintiffMainArgument(caseFacts))
	}
	// Defense has no cold-open argument template; the first defense turn
	// is always a response to what the plaintiff just said.
	return l.Generate(ctx, prompts.DefenseRebuttal(caseFacts))
}

// ContinueArgument advances the side's case given its own previous
// statement and the opponent's latest one.
func (l *Lawyer) ContinueArgument(ctx context.Context, ownPrevious, opponentLatest string) (string, error) {
	if l.Role() == RolePlaintiff {
		return l.Generate(ctx, prompts.PlaintiffArgumentWithContext(ownPrevious, opponentLatest))
	}
	return l.Generate(ctx, prompts.DefenseArgumentWithContext(opponentLatest, ownPrevious))
}

// Rebuttal answers the opponent's last argument directly.
func (l *Lawyer) Rebuttal(ctx context.Context, opponentArgument string) (string, error) {
	if l.Role() == RolePlaintiff {
		return l.Generate(ctx, prompts.PlaintiffRebuttal(opponentArgument))
	}
	return l.Generate(ctx, prompts.DefenseRebuttal(opponentArgument))
}

// AutonomousArgument presents the side's argument for a free-running debate
// round, given the full labeled history of the exchange so far.
func (l *Lawyer) AutonomousArgument(ctx context.Context, round int, caseFacts, argumentHistory string) (string, error) {
	if l.Role() == RolePlaintiff {
		return l.Generate(ctx, prompts.PlaintiffAutonomousArgument(round, caseFacts, argumentHistory))
	}
	return l.Generate(ctx, prompts.DefenseAutonomousArgument(round, caseFacts, argumentHistory))
}

// AutonomousArgumentStream is AutonomousArgument delivered as a stream of
// fragments.
func (l *Lawyer) AutonomousArgumentStream(ctx context.Context, round int, caseFacts, argumentHistory string) iter.Seq2[string, error] {
	if l.Role() == RolePlaintiff {
		return l.GenerateStream(ctx, prompts.PlaintiffAutonomousArgument(round, caseFacts, argumentHistory))
	}
	return l.GenerateStream(ctx, prompts.DefenseAutonomousArgument(round, caseFacts, argumentHistory))
}
