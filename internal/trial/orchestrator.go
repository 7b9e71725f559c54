// Package trial drives a civil trial from case filing through verdict. The
// orchestrator owns the trial state machine; the personas it conducts live
// in the agent package and every statement lands in the transcript.
package trial

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/docket"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
	"github.com/lexumbra/lexumbra/internal/prompts"
	"github.com/lexumbra/lexumbra/internal/transcript"
	"github.com/lexumbra/lexumbra/internal/util"
)

// juryContextStatements is how many recent lawyer statements the jury hears
// before deliberating.
const juryContextStatements = 4

// juryContextChars bounds each statement snippet shown to the jury.
const juryContextChars = 200

// System transcript speakers for procedural announcements.
const (
	speakerClerk = "COURT CLERK"
	speakerCourt = "COURT"
)

// Orchestrator runs one trial. It is not safe for concurrent use; a trial
// is a single sequential proceeding. The event bus is the concurrency
// boundary for observers.
type Orchestrator struct {
	cfg       *config.Config
	completer llm.Completer
	rulebook  agent.RuleSource
	bus       *event.Bus
	logger    *logging.Logger

	phase  Phase
	matter docket.Case
	filed  bool

	judge     *agent.Judge
	plaintiff *agent.Lawyer
	defense   *agent.Lawyer
	panel     *jury.Panel

	record  *transcript.Store
	round   int // current argument round; 0 until arguments start
	verdict *jury.Verdict
}

// NewOrchestrator creates a trial awaiting its complaint. The rulebook may
// be nil; the judge then rules without retrieval support.
func NewOrchestrator(cfg *config.Config, completer llm.Completer, rulebook agent.RuleSource, bus *event.Bus, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if bus == nil {
		bus = event.NewBus()
	}
	return &Orchestrator{
		cfg:       cfg,
		completer: completer,
		rulebook:  rulebook,
		bus:       bus,
		logger:    logger,
		phase:     PhaseAwaitingComplaint,
		record:    transcript.NewStore(),
	}
}

// SetCase files the case this trial will hear. It does not change phase.
// Facts cannot be replaced once filed; a new case needs a new orchestrator.
func (o *Orchestrator) SetCase(title, facts string) error {
	if o.filed {
		return errors.ErrInvalidPhase
	}
	matter, err := docket.FileCase(title, facts)
	if err != nil {
		return err
	}
	o.matter = matter
	o.filed = true
	o.logger = o.logger.WithTrial(matter.DocketID)
	o.logger.Info("case filed", "title", matter.Title, "fact_chars", len(matter.Facts))
	o.say(speakerClerk, agent.RoleSystem,
		fmt.Sprintf("Case filed: %s (%d characters)", matter.Title, len(matter.Facts)))
	o.bus.Publish(event.NewCaseFiledEvent(matter.DocketID, matter.Title, len(matter.Facts)))
	return nil
}

// InitializeCourt constructs every persona for the filed case and moves the
// trial to the court-assembled phase. Assembly is all or nothing: if any
// seat cannot be filled the court remains unassembled, the phase stays at
// awaiting-complaint, and the error is returned.
func (o *Orchestrator) InitializeCourt() error {
	if !o.filed {
		return errors.ErrNoCaseFiled
	}
	if o.judge != nil {
		return nil // already assembled
	}

	judge, err := agent.NewJudge(o.completer, o.rulebook, o.logger)
	if err != nil {
		return fmt.Errorf("assembling court: %w", err)
	}
	plaintiff, err := agent.NewPlaintiffCounsel(o.completer, o.logger)
	if err != nil {
		return fmt.Errorf("assembling court: %w", err)
	}
	defense, err := agent.NewDefenseCounsel(o.completer, o.logger)
	if err != nil {
		return fmt.Errorf("assembling court: %w", err)
	}
	profiles, err := jury.LoadProfiles(o.cfg.Jury.ProfilesFile)
	if err != nil {
		return fmt.Errorf("assembling court: %w", err)
	}
	panel, err := jury.NewPanel(profiles, o.completer, o.cfg.Jury.ParallelWorkers, o.logger)
	if err != nil {
		return fmt.Errorf("assembling court: %w", err)
	}

	o.judge = judge
	o.plaintiff = plaintiff
	o.defense = defense
	o.panel = panel
	o.say(speakerCourt, agent.RoleSystem, fmt.Sprintf("The Honorable %s presiding.", judge.Name()))
	o.say(speakerCourt, agent.RoleSystem, "Counsel for both parties have entered the courtroom.")
	o.say(speakerCourt, agent.RoleSystem,
		fmt.Sprintf("The jury has been seated: %s", strings.Join(panel.Names(), ", ")))
	o.setPhase(PhaseCourtAssembled)
	o.logger.Info("court assembled", "jurors", panel.Size())
	o.bus.Publish(event.NewCourtAssembledEvent(o.matter.DocketID, panel.Names()))
	return nil
}

func (o *Orchestrator) assembled() bool {
	return o.judge != nil && o.plaintiff != nil && o.defense != nil && o.panel != nil
}

func (o *Orchestrator) requireCourt() error {
	if !o.filed {
		return errors.ErrNoCaseFiled
	}
	if !o.assembled() {
		return errors.ErrCourtNotAssembled
	}
	return nil
}

func (o *Orchestrator) setPhase(p Phase) {
	if p == o.phase {
		return
	}
	from := o.phase
	o.phase = p
	o.logger.WithPhase(p.String()).Info("phase changed", "from", from.String())
	o.bus.Publish(event.NewPhaseChangedEvent(o.matter.DocketID, from.String(), p.String()))
}

func (o *Orchestrator) say(name string, role agent.Role, content string) transcript.Message {
	return o.record.Append(name, role, content)
}

// StartOpeningStatements opens court and hears both openings.
func (o *Orchestrator) StartOpeningStatements(ctx context.Context) error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if o.phase != PhaseCourtAssembled {
		return errors.ErrInvalidPhase
	}
	o.setPhase(PhaseOpeningStatements)

	o.say(o.judge.Name(), agent.RoleJudge, o.judge.OpenCourt(o.matter.Title))

	opening, err := o.plaintiff.Opening(ctx, o.matter.Facts)
	if err != nil {
		return err
	}
	o.say(o.plaintiff.Name(), agent.RolePlaintiff, opening)

	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeTransitionToDefense)

	response, err := o.defense.Opening(ctx, o.matter.Facts)
	if err != nil {
		return err
	}
	o.say(o.defense.Name(), agent.RoleDefense, response)

	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeOpeningsComplete)
	return nil
}

// StartArguments moves the trial into the argument phase and resets the
// round counter to 1. Openings may be skipped: arguments can start directly
// from an assembled court.
func (o *Orchestrator) StartArguments() error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if o.phase != PhaseCourtAssembled && o.phase != PhaseOpeningStatements {
		return errors.ErrInvalidPhase
	}
	o.setPhase(PhaseArguments)
	o.round = 1
	return nil
}

// AdvanceRound moves to the next argument round. It does not change phase.
func (o *Orchestrator) AdvanceRound() {
	o.round++
}

// RunArgumentRound runs one guided argument round: the judge announces the
// round, the plaintiff argues, the defense responds, and the round counter
// advances. The first round argues from the case facts; later rounds carry
// a bounded window of each side's last statement. A generation failure
// propagates without advancing the round, so the round can be retried.
func (o *Orchestrator) RunArgumentRound(ctx context.Context) error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if !o.phase.AllowsNextRound() {
		return errors.ErrInvalidPhase
	}
	if o.round > o.cfg.Trial.MaxArgumentRounds {
		return errors.ErrInvalidPhase
	}

	round := o.round
	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeArgumentRound(round))

	window := o.cfg.Trial.ContextChars
	var plaintiffArg string
	var err error
	if round == 1 {
		plaintiffArg, err = o.plaintiff.MainArgument(ctx, o.matter.Facts)
	} else {
		ownPrev, _ := o.record.LastByRole(agent.RolePlaintiff)
		oppLast, _ := o.record.LastByRole(agent.RoleDefense)
		plaintiffArg, err = o.plaintiff.ContinueArgument(ctx,
			util.TruncateString(ownPrev.Content, window),
			util.TruncateString(oppLast.Content, window))
	}
	if err != nil {
		return err
	}
	o.say(o.plaintiff.Name(), agent.RolePlaintiff, plaintiffArg)
	o.bus.Publish(event.NewStatementEvent(o.matter.DocketID, round, string(agent.RolePlaintiff), plaintiffArg))

	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeDefenseRespond)

	var defenseArg string
	if round == 1 {
		defenseArg, err = o.defense.Rebuttal(ctx, util.TruncateString(plaintiffArg, window))
	} else {
		ownPrev, _ := o.record.LastByRole(agent.RoleDefense)
		defenseArg, err = o.defense.ContinueArgument(ctx,
			util.TruncateString(ownPrev.Content, window),
			util.TruncateString(plaintiffArg, window))
	}
	if err != nil {
		return err
	}
	o.say(o.defense.Name(), agent.RoleDefense, defenseArg)
	o.bus.Publish(event.NewStatementEvent(o.matter.DocketID, round, string(agent.RoleDefense), defenseArg))

	o.AdvanceRound()
	return nil
}

// StartJuryDeliberation transitions from arguments to jury deliberation.
func (o *Orchestrator) StartJuryDeliberation() error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if o.phase != PhaseArguments {
		return errors.ErrInvalidPhase
	}
	o.setPhase(PhaseJuryDeliberation)
	return nil
}

// RunJuryDeliberation sends the jury out with a bounded window of the most
// recent lawyer statements. The autonomous debate transitions the phase
// itself on completion, so deliberation may begin from either the argument
// or deliberation phase. Individual juror failures are tolerated; those
// jurors keep their prior scores.
func (o *Orchestrator) RunJuryDeliberation(ctx context.Context) error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if o.phase == PhaseArguments {
		if err := o.StartJuryDeliberation(); err != nil {
			return err
		}
	} else if o.phase != PhaseJuryDeliberation {
		return errors.ErrInvalidPhase
	}

	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgeJuryDeliberate)
	o.bus.Publish(event.NewDeliberationStartedEvent(o.matter.DocketID, o.panel.Size()))

	juryContext := o.buildJuryContext()
	votes, err := o.panel.DeliberateParallel(ctx, juryContext, func(v jury.Vote) {
		o.bus.Publish(event.NewJurorVotedEvent(o.matter.DocketID, v.JurorName, v.Score))
	})
	if err != nil {
		return err
	}
	for _, v := range votes {
		if v.Err != nil {
			continue
		}
		o.record.AppendScored(v.JurorName, agent.RoleJuror, v.Monologue, v.Score)
	}
	return nil
}

// buildJuryContext assembles what the jury hears: the last few lawyer
// statements, each bounded, labeled by speaker.
func (o *Orchestrator) buildJuryContext() string {
	recent := o.record.RecentByRoles(juryContextStatements, agent.RolePlaintiff, agent.RoleDefense)
	out := ""
	for _, m := range recent {
		out += fmt.Sprintf("[%s]: %s\n", m.AgentName, util.TruncateString(m.Content, juryContextChars))
	}
	return out
}

// RenderVerdict transitions from jury deliberation to the verdict phase.
func (o *Orchestrator) RenderVerdict() error {
	if err := o.requireCourt(); err != nil {
		return err
	}
	if o.phase != PhaseJuryDeliberation {
		return errors.ErrInvalidPhase
	}
	o.setPhase(PhaseVerdict)
	return nil
}

// RunVerdict has the judge summarize for the record, computes the panel's
// verdict, and announces it.
func (o *Orchestrator) RunVerdict(ctx context.Context) error {
	if err := o.RenderVerdict(); err != nil {
		return err
	}

	o.say(o.judge.Name(), agent.RoleJudge, prompts.JudgePreVerdict)

	summary, err := o.judge.SummarizeForJury(ctx, o.buildJuryContext())
	if err != nil {
		return err
	}
	o.say(o.judge.Name(), agent.RoleJudge, summary)

	verdict := o.panel.Verdict()
	o.verdict = &verdict

	var announcement string
	if verdict.Winner == jury.WinnerPlaintiff {
		announcement = prompts.VerdictPlaintiff(verdict.Damages, verdict.AverageScore)
	} else {
		announcement = prompts.VerdictDefense(verdict.AverageScore)
	}
	o.say(o.judge.Name(), agent.RoleJudge, announcement)
	o.logger.Info("verdict reached",
		"winner", string(verdict.Winner),
		"average_score", verdict.AverageScore,
		"damages", verdict.Damages)
	o.bus.Publish(event.NewVerdictReachedEvent(o.matter.DocketID, string(verdict.Winner), verdict.AverageScore, verdict.Damages))
	return nil
}

// Adjourn closes the trial.
func (o *Orchestrator) Adjourn() {
	if o.phase == PhaseAdjourned {
		return
	}
	o.setPhase(PhaseAdjourned)
}

// RunGuidedTrial runs the full guided proceeding: openings, the configured
// number of argument rounds, deliberation, and verdict.
func (o *Orchestrator) RunGuidedTrial(ctx context.Context, rounds int) error {
	if rounds <= 0 || rounds > o.cfg.Trial.MaxArgumentRounds {
		rounds = o.cfg.Trial.MaxArgumentRounds
	}
	if err := o.StartOpeningStatements(ctx); err != nil {
		return err
	}
	if err := o.StartArguments(); err != nil {
		return err
	}
	for i := 0; i < rounds; i++ {
		if err := o.RunArgumentRound(ctx); err != nil {
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

// GetRecentArguments returns the last n lawyer statements in courtroom
// order.
func (o *Orchestrator) GetRecentArguments(n int) []transcript.Message {
	return o.record.RecentByRoles(n, agent.RolePlaintiff, agent.RoleDefense)
}

// Phase returns the current trial phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Case returns the filed matter.
func (o *Orchestrator) Case() docket.Case { return o.matter }

// CurrentRound returns the argument round in progress, or 0 before
// arguments start.
func (o *Orchestrator) CurrentRound() int { return o.round }

// RoundsCompleted returns how many argument rounds have finished.
func (o *Orchestrator) RoundsCompleted() int {
	if o.round == 0 {
		return 0
	}
	return o.round - 1
}

// Transcript returns the trial's courtroom record.
func (o *Orchestrator) Transcript() *transcript.Store { return o.record }

// Panel returns the seated jury, or nil before assembly.
func (o *Orchestrator) Panel() *jury.Panel { return o.panel }

// Verdict returns the rendered verdict, or nil before one is reached.
func (o *Orchestrator) Verdict() *jury.Verdict { return o.verdict }
