package jury

import "math"

// Winner identifies the prevailing party.
type Winner string

const (
	WinnerPlaintiff Winner = "Plaintiff"
	WinnerDefense   Winner = "Defense"
)

// DamagesPerPoint is the dollar award per point of panel average above the
// neutral midpoint.
const DamagesPerPoint = 20000

// Verdict is the panel's aggregated decision.
type Verdict struct {
	Winner       Winner         `json:"winner"`
	AverageScore float64        `json:"average_score"`
	Damages      int            `json:"damages"`
	JurorScores  map[string]int `json:"juror_scores"`
}

// Verdict computes the panel's verdict from current scores. The rule is
// strictly binary: a panel average above the midpoint finds for the
// plaintiff with damages proportional to the margin; anything else,
// including a dead-even average, is a defense verdict with no award.
func (p *Panel) Verdict() Verdict {
	avg := p.AverageScore()
	v := Verdict{
		Winner:       WinnerDefense,
		AverageScore: avg,
		JurorScores:  p.Scores(),
	}
	if avg > NeutralScore {
		v.Winner = WinnerPlaintiff
		v.Damages = int(math.Round((avg - NeutralScore) * DamagesPerPoint))
	}
	return v
}
