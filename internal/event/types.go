// Package event defines the trial event vocabulary and a synchronous pub-sub
// bus. Events decouple the orchestrator from the presentation layer: the
// courtroom publishes, observers (CLI renderer, TUI) subscribe.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "trial.case_filed", "jury.juror_voted")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Trial Lifecycle Events
// -----------------------------------------------------------------------------

// CaseFiledEvent is emitted when case facts are attached to a trial.
type CaseFiledEvent struct {
	baseEvent
	DocketID  string // Docket identifier for this trial
	CaseTitle string // Title of the matter
	FactChars int    // Length of the filed complaint, in characters
}

// NewCaseFiledEvent creates a CaseFiledEvent.
func NewCaseFiledEvent(docketID, caseTitle string, factChars int) CaseFiledEvent {
	return CaseFiledEvent{
		baseEvent: newBaseEvent("trial.case_filed"),
		DocketID:  docketID,
		CaseTitle: caseTitle,
		FactChars: factChars,
	}
}

// CourtAssembledEvent is emitted when all agents have been constructed.
type CourtAssembledEvent struct {
	baseEvent
	DocketID   string   // Docket identifier for this trial
	JurorNames []string // Names of the seated jurors
}

// NewCourtAssembledEvent creates a CourtAssembledEvent.
func NewCourtAssembledEvent(docketID string, jurorNames []string) CourtAssembledEvent {
	return CourtAssembledEvent{
		baseEvent:  newBaseEvent("trial.court_assembled"),
		DocketID:   docketID,
		JurorNames: jurorNames,
	}
}

// PhaseChangedEvent is emitted on every trial phase transition.
type PhaseChangedEvent struct {
	baseEvent
	DocketID string // Docket identifier for this trial
	From     string // Phase before the transition
	To       string // Phase after the transition
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(docketID, from, to string) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent: newBaseEvent("trial.phase_changed"),
		DocketID:  docketID,
		From:      from,
		To:        to,
	}
}

// -----------------------------------------------------------------------------
// Debate Events
// -----------------------------------------------------------------------------

// DebateStartedEvent is emitted when the autonomous debate opens.
type DebateStartedEvent struct {
	baseEvent
	DocketID  string // Docket identifier for this trial
	CaseTitle string // Title of the matter
	MaxRounds int    // Ceiling on debate rounds
}

// NewDebateStartedEvent creates a DebateStartedEvent.
func NewDebateStartedEvent(docketID, caseTitle string, maxRounds int) DebateStartedEvent {
	return DebateStartedEvent{
		baseEvent: newBaseEvent("debate.started"),
		DocketID:  docketID,
		CaseTitle: caseTitle,
		MaxRounds: maxRounds,
	}
}

// StatementEvent is emitted when counsel finishes a statement.
type StatementEvent struct {
	baseEvent
	DocketID string // Docket identifier for this trial
	Round    int    // Debate round number
	Side     string // "plaintiff" or "defense"
	Content  string // The full statement text
}

// NewStatementEvent creates a StatementEvent.
func NewStatementEvent(docketID string, round int, side, content string) StatementEvent {
	return StatementEvent{
		baseEvent: newBaseEvent("debate.statement"),
		DocketID:  docketID,
		Round:     round,
		Side:      side,
		Content:   content,
	}
}

// RoundCompleteEvent is emitted after both sides have argued and the
// continue/conclude decision has been made.
type RoundCompleteEvent struct {
	baseEvent
	DocketID       string // Docket identifier for this trial
	Round          int    // Debate round number
	ShouldContinue bool   // Whether another round follows
	Reason         string // The judge's stated reason
}

// NewRoundCompleteEvent creates a RoundCompleteEvent.
func NewRoundCompleteEvent(docketID string, round int, shouldContinue bool, reason string) RoundCompleteEvent {
	return RoundCompleteEvent{
		baseEvent:      newBaseEvent("debate.round_complete"),
		DocketID:       docketID,
		Round:          round,
		ShouldContinue: shouldContinue,
		Reason:         reason,
	}
}

// DebateConcludedEvent is emitted when the autonomous debate finishes.
type DebateConcludedEvent struct {
	baseEvent
	DocketID    string // Docket identifier for this trial
	TotalRounds int    // Rounds actually executed
}

// NewDebateConcludedEvent creates a DebateConcludedEvent.
func NewDebateConcludedEvent(docketID string, totalRounds int) DebateConcludedEvent {
	return DebateConcludedEvent{
		baseEvent:   newBaseEvent("debate.concluded"),
		DocketID:    docketID,
		TotalRounds: totalRounds,
	}
}

// -----------------------------------------------------------------------------
// Jury Events
// -----------------------------------------------------------------------------

// DeliberationStartedEvent is emitted when the jury retires to deliberate.
type DeliberationStartedEvent struct {
	baseEvent
	DocketID string // Docket identifier for this trial
	Jurors   int    // Number of jurors deliberating
}

// NewDeliberationStartedEvent creates a DeliberationStartedEvent.
func NewDeliberationStartedEvent(docketID string, jurors int) DeliberationStartedEvent {
	return DeliberationStartedEvent{
		baseEvent: newBaseEvent("jury.deliberation_started"),
		DocketID:  docketID,
		Jurors:    jurors,
	}
}

// JurorVotedEvent is emitted as each juror's deliberation completes.
// Jurors finish in arbitrary order; the event carries no ordering guarantee.
type JurorVotedEvent struct {
	baseEvent
	DocketID  string // Docket identifier for this trial
	JurorName string // Display name of the juror
	Score     int    // The juror's bias score after deliberating, 0-100
}

// NewJurorVotedEvent creates a JurorVotedEvent.
func NewJurorVotedEvent(docketID, jurorName string, score int) JurorVotedEvent {
	return JurorVotedEvent{
		baseEvent: newBaseEvent("jury.juror_voted"),
		DocketID:  docketID,
		JurorName: jurorName,
		Score:     score,
	}
}

// VerdictReachedEvent is emitted when the verdict is computed.
type VerdictReachedEvent struct {
	baseEvent
	DocketID        string  // Docket identifier for this trial
	PrevailingParty string  // "PLAINTIFF" or "DEFENSE"
	AverageScore    float64 // Panel average at verdict time
	Damages         int     // Awarded damages in dollars (0 on dismissal)
}

// NewVerdictReachedEvent creates a VerdictReachedEvent.
func NewVerdictReachedEvent(docketID, prevailingParty string, averageScore float64, damages int) VerdictReachedEvent {
	return VerdictReachedEvent{
		baseEvent:       newBaseEvent("jury.verdict_reached"),
		DocketID:        docketID,
		PrevailingParty: prevailingParty,
		AverageScore:    averageScore,
		Damages:         damages,
	}
}
