package trial

import (
	"context"
	"strings"
	"testing"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/testutil"
)

// debateScript lets a test choose the judge's arbitration answer.
func debateScript(concludeAnswer string) func(llm.Request) (string, error) {
	return func(req llm.Request) (string, error) {
		switch req.Persona {
		case "Judge Marshall":
			if strings.Contains(req.Prompt, "CONTINUE or CONCLUDE") {
				return concludeAnswer, nil
			}
			return "A balanced summary.", nil
		case "Attorney Chen":
			return "Plaintiff argument.", nil
		case "Attorney Webb":
			return "Defense argument.", nil
		default:
			return "THOUGHTS: fine\nSCORE: 55", nil
		}
	}
}

func assembledTrial(t *testing.T, script func(llm.Request) (string, error)) (*Orchestrator, *testutil.FakeCompleter) {
	t.Helper()
	o, fake, _ := newTestTrial(t, script)
	if err := o.SetCase("Doe v. Acme", "a disputed easement"); err != nil {
		t.Fatal(err)
	}
	if err := o.InitializeCourt(); err != nil {
		t.Fatal(err)
	}
	return o, fake
}

func runDebateSteps(t *testing.T, d *Debate) []Step {
	t.Helper()
	var steps []Step
	for !d.Done() {
		step, err := d.Next(context.Background())
		if err != nil {
			t.Fatalf("Next at step %d: %v", len(steps), err)
		}
		steps = append(steps, step)
	}
	return steps
}

func kinds(steps []Step) []StepKind {
	out := make([]StepKind, len(steps))
	for i, s := range steps {
		out[i] = s.Kind
	}
	return out
}

func TestDebateStepSequenceSingleRound(t *testing.T) {
	o, _ := assembledTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 1
	o.cfg.Debate.MaxRounds = 5

	d, err := o.NewDebate()
	if err != nil {
		t.Fatalf("NewDebate: %v", err)
	}
	steps := runDebateSteps(t, d)

	want := []StepKind{
		StepJudgeOpen, StepRoundStart,
		StepPlaintiffSpeaking, StepPlaintiffDone,
		StepDefenseSpeaking, StepDefenseDone,
		StepRoundComplete, StepDebateComplete,
	}
	got := kinds(steps)
	if len(got) != len(want) {
		t.Fatalf("steps = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, got[i], want[i])
		}
	}

	final := steps[len(steps)-1]
	if final.Round != 1 {
		t.Errorf("total rounds = %d, want 1", final.Round)
	}
	if o.RoundsCompleted() != 1 {
		t.Errorf("orchestrator rounds = %d, want 1", o.RoundsCompleted())
	}
	// Completing the debate hands the trial to the jury.
	if o.Phase() != PhaseJuryDeliberation {
		t.Errorf("phase after debate = %s, want jury_deliberation", o.Phase())
	}
}

func TestDebateStreamsArgumentsThroughSink(t *testing.T) {
	o, _ := assembledTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 1
	o.cfg.Debate.MaxRounds = 5

	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	chunks := map[string][]string{}
	d.OnChunk(func(speaker, chunk string) {
		chunks[speaker] = append(chunks[speaker], chunk)
	})
	steps := runDebateSteps(t, d)

	var plaintiffStep, defenseStep Step
	for _, s := range steps {
		switch s.Kind {
		case StepPlaintiffDone:
			plaintiffStep = s
		case StepDefenseDone:
			defenseStep = s
		}
	}
	if len(chunks["Attorney Chen"]) < 2 {
		t.Fatalf("plaintiff argument arrived in %d chunks, want streamed fragments", len(chunks["Attorney Chen"]))
	}
	if got := strings.Join(chunks["Attorney Chen"], ""); got != plaintiffStep.Content {
		t.Errorf("streamed plaintiff argument = %q, step content = %q", got, plaintiffStep.Content)
	}
	if got := strings.Join(chunks["Attorney Webb"], ""); got != defenseStep.Content {
		t.Errorf("streamed defense argument = %q, step content = %q", got, defenseStep.Content)
	}

	// Streamed arguments still land on the record.
	last, ok := o.Transcript().LastByRole(agent.RoleDefense)
	if !ok || last.Content != defenseStep.Content {
		t.Errorf("streamed argument missing from transcript: %+v", last)
	}
}

func TestDebateFloorsNeverConsultJudge(t *testing.T) {
	// The judge would conclude immediately, but the floor forces round 2.
	o, fake := assembledTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 2
	o.cfg.Debate.MaxRounds = 5

	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	steps := runDebateSteps(t, d)

	var rounds int
	for _, s := range steps {
		if s.Kind == StepDebateComplete {
			rounds = s.Round
		}
	}
	if rounds != 2 {
		t.Errorf("debate ran %d rounds, want floor of 2", rounds)
	}

	arbitrations := 0
	for _, call := range fake.Calls() {
		if strings.Contains(call.Prompt, "CONTINUE or CONCLUDE") {
			arbitrations++
		}
	}
	// Round 1 is below the floor; only round 2 reaches the judge.
	if arbitrations != 1 {
		t.Errorf("judge consulted %d times, want 1", arbitrations)
	}
}

func TestDebateCeilingOverridesJudge(t *testing.T) {
	// The judge always wants more argument; the ceiling stops it anyway.
	o, fake := assembledTrial(t, debateScript("CONTINUE"))
	o.cfg.Debate.MinRounds = 1
	o.cfg.Debate.MaxRounds = 3

	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	steps := runDebateSteps(t, d)

	var completes []Step
	for _, s := range steps {
		if s.Kind == StepRoundComplete {
			completes = append(completes, s)
		}
	}
	if len(completes) != 3 {
		t.Fatalf("round_complete steps = %d, want 3", len(completes))
	}
	last := completes[len(completes)-1]
	if last.ShouldContinue {
		t.Error("round at ceiling must not continue")
	}
	if d.Round() != 3 {
		t.Errorf("final round = %d, want 3", d.Round())
	}

	// The ceiling round never consults the judge.
	arbitrations := 0
	for _, call := range fake.Calls() {
		if strings.Contains(call.Prompt, "CONTINUE or CONCLUDE") {
			arbitrations++
		}
	}
	if arbitrations != 2 {
		t.Errorf("judge consulted %d times, want 2 (rounds 1 and 2)", arbitrations)
	}
}

func TestDebateFirstRoundUsesOpenings(t *testing.T) {
	o, fake := assembledTrial(t, debateScript("CONTINUE"))
	o.cfg.Debate.MinRounds = 2
	o.cfg.Debate.MaxRounds = 2

	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	runDebateSteps(t, d)

	var round1, round2 string
	for _, call := range fake.Calls() {
		if call.Persona != "Attorney Chen" {
			continue
		}
		if strings.Contains(call.Prompt, "opening statement") {
			round1 = call.Prompt
		}
		if strings.Contains(call.Prompt, "FULL ARGUMENT HISTORY") {
			round2 = call.Prompt
		}
	}
	if round1 == "" {
		t.Error("round 1 did not use the opening template")
	}
	if round2 == "" {
		t.Fatal("round 2 did not carry argument history")
	}
	if !strings.Contains(round2, "[Round 1 - Plaintiff]: Plaintiff argument.") ||
		!strings.Contains(round2, "[Round 1 - Defense]: Defense argument.") {
		t.Errorf("round 2 history incomplete: %q", round2)
	}
}

func TestDebatePublishesLifecycleEvents(t *testing.T) {
	o, _, rec := newTestTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 1
	if err := o.SetCase("Doe v. Acme", "facts"); err != nil {
		t.Fatal(err)
	}
	if err := o.InitializeCourt(); err != nil {
		t.Fatal(err)
	}
	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	runDebateSteps(t, d)

	for eventType, want := range map[string]int{
		"debate.started":        1,
		"debate.statement":      2,
		"debate.round_complete": 1,
		"debate.concluded":      1,
	} {
		if got := rec.count(eventType); got != want {
			t.Errorf("%s events = %d, want %d", eventType, got, want)
		}
	}
}

func TestDebateNextAfterDoneFails(t *testing.T) {
	o, _ := assembledTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 1
	d, err := o.NewDebate()
	if err != nil {
		t.Fatal(err)
	}
	runDebateSteps(t, d)
	if _, err := d.Next(context.Background()); !errors.Is(err, errors.ErrInvalidPhase) {
		t.Errorf("Next after done: %v", err)
	}
}

func TestNewDebateRequiresAssembledCourt(t *testing.T) {
	o, _, _ := newTestTrial(t, debateScript("CONCLUDE"))
	if _, err := o.NewDebate(); !errors.Is(err, errors.ErrNoCaseFiled) {
		t.Errorf("expected ErrNoCaseFiled, got %v", err)
	}
	if err := o.SetCase("Doe v. Acme", "facts"); err != nil {
		t.Fatal(err)
	}
	if _, err := o.NewDebate(); !errors.Is(err, errors.ErrCourtNotAssembled) {
		t.Errorf("expected ErrCourtNotAssembled, got %v", err)
	}
}

func TestRunDebateFullProceeding(t *testing.T) {
	o, _, rec := newTestTrial(t, debateScript("CONCLUDE"))
	o.cfg.Debate.MinRounds = 1
	if err := o.SetCase("Doe v. Acme", "facts"); err != nil {
		t.Fatal(err)
	}
	if err := o.InitializeCourt(); err != nil {
		t.Fatal(err)
	}
	if err := o.RunDebate(context.Background()); err != nil {
		t.Fatalf("RunDebate: %v", err)
	}
	if o.Phase() != PhaseAdjourned {
		t.Errorf("final phase = %s", o.Phase())
	}
	v := o.Verdict()
	if v == nil {
		t.Fatal("no verdict after RunDebate")
	}
	// All jurors land on 55: plaintiff by a 5-point margin.
	if v.Winner != jury.WinnerPlaintiff || v.Damages != 100000 {
		t.Errorf("verdict = %+v", v)
	}
	if rec.count("jury.verdict_reached") != 1 {
		t.Error("verdict event missing")
	}
}
