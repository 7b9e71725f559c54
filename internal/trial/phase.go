package trial

// Phase is the trial's position in its fixed procedural sequence. Phases
// only ever advance; a trial never returns to an earlier phase.
type Phase int

const (
	// PhaseAwaitingComplaint is the initial phase, before any case is filed.
	PhaseAwaitingComplaint Phase = iota
	// PhaseCourtAssembled begins once every persona has been constructed.
	PhaseCourtAssembled
	// PhaseOpeningStatements covers both counsels' openings.
	PhaseOpeningStatements
	// PhaseArguments covers the argument rounds, guided or autonomous.
	PhaseArguments
	// PhaseJuryDeliberation covers the jury's parallel deliberation.
	PhaseJuryDeliberation
	// PhaseVerdict covers the judge's summary and the verdict announcement.
	PhaseVerdict
	// PhaseAdjourned is terminal.
	PhaseAdjourned
)

// String returns the phase's wire identifier.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingComplaint:
		return "awaiting_complaint"
	case PhaseCourtAssembled:
		return "court_assembled"
	case PhaseOpeningStatements:
		return "opening_statements"
	case PhaseArguments:
		return "arguments"
	case PhaseJuryDeliberation:
		return "jury_deliberation"
	case PhaseVerdict:
		return "verdict"
	case PhaseAdjourned:
		return "adjourned"
	default:
		return "unknown"
	}
}

// DisplayName returns the phase's courtroom caption.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseAwaitingComplaint:
		return "Awaiting Complaint"
	case PhaseCourtAssembled:
		return "Court Assembled"
	case PhaseOpeningStatements:
		return "Opening Statements"
	case PhaseArguments:
		return "Arguments"
	case PhaseJuryDeliberation:
		return "Jury Deliberation"
	case PhaseVerdict:
		return "Verdict"
	case PhaseAdjourned:
		return "Court Adjourned"
	default:
		return "Unknown"
	}
}

// IsActive reports whether court is in session in this phase.
func (p Phase) IsActive() bool {
	return p > PhaseAwaitingComplaint && p < PhaseAdjourned
}

// AllowsNextRound reports whether another argument round may begin.
func (p Phase) AllowsNextRound() bool {
	return p == PhaseArguments
}
