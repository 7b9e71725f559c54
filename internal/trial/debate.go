package trial

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/prompts"
	"github.com/lexumbra/lexumbra/internal/util"
)

// StepKind identifies what just happened in an autonomous debate.
type StepKind string

const (
	StepJudgeOpen         StepKind = "judge_open"
	StepRoundStart        StepKind = "round_start"
	StepPlaintiffSpeaking StepKind = "plaintiff_speaking"
	StepPlaintiffDone     StepKind = "plaintiff_done"
	StepDefenseSpeaking   StepKind = "defense_speaking"
	StepDefenseDone       StepKind = "defense_done"
	StepRoundComplete     StepKind = "round_complete"
	StepDebateComplete    StepKind = "debate_complete"
)

// Step is one observable increment of an autonomous debate.
type Step struct {
	Kind           StepKind
	Round          int
	Speaker        string
	Content        string
	ShouldContinue bool
	Reason         string
}

type debateState int

const (
	stateJudgeOpen debateState = iota
	stateRoundStart
	statePlaintiffSpeaking
	statePlaintiffArguing
	stateDefenseSpeaking
	stateDefenseArguing
	stateRoundComplete
	stateDebateComplete
	stateDone
)

// Debate is an explicit stepper over the autonomous debate. Each Next call
// performs exactly one step and returns it, so a caller can interleave
// rendering between generations. The debate decides its own length: the
// judge arbitrates continue/conclude between a round floor and ceiling.
type Debate struct {
	o       *Orchestrator
	state   debateState
	round   int
	onChunk func(speaker, chunk string)

	// history accumulates labeled arguments for the autonomous prompts.
	history []string
}

// NewDebate prepares an autonomous debate. The court must be assembled.
// Opening statements are optional; the debate runs its own openings in
// round 1.
func (o *Orchestrator) NewDebate() (*Debate, error) {
	if err := o.requireCourt(); err != nil {
		return nil, err
	}
	if o.phase != PhaseCourtAssembled && o.phase != PhaseOpeningStatements {
		return nil, errors.ErrInvalidPhase
	}
	return &Debate{o: o, state: stateJudgeOpen, round: 1}, nil
}

// OnChunk registers a sink that receives argument text as counsel produce
// it. When set, arguments stream from the completer fragment by fragment;
// the step returned by Next still carries the full statement.
func (d *Debate) OnChunk(fn func(speaker, chunk string)) {
	d.onChunk = fn
}

// Done reports whether the debate has finished.
func (d *Debate) Done() bool { return d.state == stateDone }

// Round returns the current round number.
func (d *Debate) Round() int { return d.round }

// Next performs the next debate step. Calling Next after the debate is
// done returns ErrInvalidPhase.
func (d *Debate) Next(ctx context.Context) (Step, error) {
	o := d.o
	switch d.state {
	case stateJudgeOpen:
		o.setPhase(PhaseArguments)
		o.round = 1
		content := o.judge.OpenCourt(o.matter.Title)
		o.say(o.judge.Name(), agent.RoleJudge, content)
		o.bus.Publish(event.NewDebateStartedEvent(o.matter.DocketID, o.matter.Title, o.cfg.Debate.MaxRounds))
		d.state = stateRoundStart
		return Step{Kind: StepJudgeOpen, Round: d.round, Speaker: o.judge.Name(), Content: content}, nil

	case stateRoundStart:
		d.state = statePlaintiffSpeaking
		return Step{Kind: StepRoundStart, Round: d.round}, nil

	case statePlaintiffSpeaking:
		d.state = statePlaintiffArguing
		return Step{Kind: StepPlaintiffSpeaking, Round: d.round, Speaker: o.plaintiff.Name()}, nil

	case statePlaintiffArguing:
		content, err := d.argue(ctx, o.plaintiff)
		if err != nil {
			return Step{}, err
		}
		d.state = stateDefenseSpeaking
		return Step{Kind: StepPlaintiffDone, Round: d.round, Speaker: o.plaintiff.Name(), Content: content}, nil

	case stateDefenseSpeaking:
		d.state = stateDefenseArguing
		return Step{Kind: StepDefenseSpeaking, Round: d.round, Speaker: o.defense.Name()}, nil

	case stateDefenseArguing:
		content, err := d.argue(ctx, o.defense)
		if err != nil {
			return Step{}, err
		}
		d.state = stateRoundComplete
		return Step{Kind: StepDefenseDone, Round: d.round, Speaker: o.defense.Name(), Content: content}, nil

	case stateRoundComplete:
		shouldContinue, reason, err := d.shouldContinue(ctx)
		if err != nil {
			return Step{}, err
		}
		o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeDebateTransition(d.round, reason))
		o.bus.Publish(event.NewRoundCompleteEvent(o.matter.DocketID, d.round, shouldContinue, reason))
		step := Step{Kind: StepRoundComplete, Round: d.round, ShouldContinue: shouldContinue, Reason: reason}
		o.AdvanceRound()
		if shouldContinue {
			d.round++
			d.state = stateRoundStart
		} else {
			d.state = stateDebateComplete
		}
		return step, nil

	case stateDebateComplete:
		o.setPhase(PhaseJuryDeliberation)
		o.bus.Publish(event.NewDebateConcludedEvent(o.matter.DocketID, d.round))
		d.state = stateDone
		return Step{Kind: StepDebateComplete, Round: d.round}, nil

	default:
		return Step{}, errors.ErrInvalidPhase
	}
}

// argue generates one side's statement for the current round and records
// it. The first round argues cold from the openings templates; later rounds
// carry the full labeled history.
func (d *Debate) argue(ctx context.Context, counsel *agent.Lawyer) (string, error) {
	o := d.o
	var content string
	var err error
	switch {
	case d.onChunk != nil:
		content, err = d.argueStreaming(ctx, counsel)
	case d.round == 1:
		content, err = counsel.Opening(ctx, o.matter.Facts)
	default:
		content, err = counsel.AutonomousArgument(ctx, d.round, o.matter.Facts, strings.Join(d.history, "\n\n"))
	}
	if err != nil {
		return "", err
	}
	o.say(counsel.Name(), counsel.Role(), content)
	o.bus.Publish(event.NewStatementEvent(o.matter.DocketID, d.round, string(counsel.Role()), content))

	label := "Plaintiff"
	if counsel.Role() == agent.RoleDefense {
		label = "Defense"
	}
	d.history = append(d.history, fmt.Sprintf("[Round %d - %s]: %s", d.round, label, content))
	return content, nil
}

// argueStreaming is argue's generation step when a chunk sink is set: the
// statement streams through the sink as it is produced and is accumulated
// for the record.
func (d *Debate) argueStreaming(ctx context.Context, counsel *agent.Lawyer) (string, error) {
	o := d.o
	var seq iter.Seq2[string, error]
	if d.round == 1 {
		seq = counsel.OpeningStream(ctx, o.matter.Facts)
	} else {
		seq = counsel.AutonomousArgumentStream(ctx, d.round, o.matter.Facts, strings.Join(d.history, "\n\n"))
	}

	var full strings.Builder
	for chunk, err := range seq {
		if err != nil {
			return "", err
		}
		full.WriteString(chunk)
		d.onChunk(counsel.Name(), chunk)
	}
	return strings.TrimSpace(full.String()), nil
}

// shouldContinue applies the three-tier stopping rule: rounds below the
// floor always continue, rounds at the ceiling always conclude, and in
// between the judge decides.
func (d *Debate) shouldContinue(ctx context.Context) (bool, string, error) {
	cfg := d.o.cfg.Debate
	switch {
	case d.round < cfg.MinRounds:
		return true, "Both parties must develop their arguments further.", nil
	case d.round >= cfg.MaxRounds:
		return false, "The court has heard the maximum argument.", nil
	}

	conclude, err := d.o.judge.ShouldConclude(ctx,
		d.sideSummary(agent.RolePlaintiff),
		d.sideSummary(agent.RoleDefense),
		d.round, cfg.MaxRounds,
		float32(cfg.ConcludeTemperature))
	if err != nil {
		return false, "", err
	}
	if conclude {
		return false, "Both parties have been adequately heard.", nil
	}
	return true, "The court will hear further argument.", nil
}

// sideSummary joins one side's statements into a bounded summary for the
// judge's arbitration prompt.
func (d *Debate) sideSummary(role agent.Role) string {
	var parts []string
	for _, m := range d.o.record.ByRole(role) {
		parts = append(parts, m.Content)
	}
	return util.TruncateString(strings.Join(parts, "\n\n"), d.o.cfg.Debate.SummaryChars)
}

// RunDebate drives an autonomous debate to completion, then deliberates the
// jury and renders the verdict.
func (o *Orchestrator) RunDebate(ctx context.Context) error {
	debate, err := o.NewDebate()
	if err != nil {
		return err
	}
	for !debate.Done() {
		if _, err := debate.Next(ctx); err != nil {
			return err
		}
	}
	if err := o.RunJuryDeliberation(ctx); err != nil {
		return err
	}
	if err := o.RunVerdict(ctx); err != nil {
		return err
	}
	o.Adjourn()
	return nil
}
