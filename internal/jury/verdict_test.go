package jury

import (
	"context"
	"testing"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/testutil"
)

// panelWithScores seats one juror per score via initial bias, so the panel
// average is exactly the mean of the given scores.
func panelWithScores(t *testing.T, scores ...int) *Panel {
	t.Helper()
	profiles := make([]agent.Profile, len(scores))
	for i, s := range scores {
		s := s
		profiles[i] = agent.Profile{Name: jurorName(i), Age: 40, Occupation: "juror", InitialBiasScore: &s}
	}
	fake := &testutil.FakeCompleter{Script: func(req llm.Request) (string, error) {
		return "THOUGHTS: set\nSCORE: 50", nil
	}}
	panel, err := NewPanel(profiles, fake, 0, nil)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	return panel
}

func jurorName(i int) string {
	return string(rune('A'+i)) + "_Juror"
}

func TestVerdictPlaintiffAboveMidpoint(t *testing.T) {
	panel := panelWithScores(t, 60, 64)
	v := panel.Verdict()
	if v.Winner != WinnerPlaintiff {
		t.Fatalf("winner = %s, want Plaintiff", v.Winner)
	}
	if v.AverageScore != 62.0 {
		t.Errorf("average = %v, want 62.0", v.AverageScore)
	}
	// (62 - 50) * 20000
	if v.Damages != 240000 {
		t.Errorf("damages = %d, want 240000", v.Damages)
	}
}

func TestVerdictDefenseAtExactMidpoint(t *testing.T) {
	panel := panelWithScores(t, 40, 60)
	v := panel.Verdict()
	if v.Winner != WinnerDefense {
		t.Errorf("winner at exactly 50 = %s, want Defense", v.Winner)
	}
	if v.Damages != 0 {
		t.Errorf("defense damages = %d, want 0", v.Damages)
	}
}

func TestVerdictDefenseBelowMidpoint(t *testing.T) {
	panel := panelWithScores(t, 30, 45, 20)
	v := panel.Verdict()
	if v.Winner != WinnerDefense {
		t.Errorf("winner = %s, want Defense", v.Winner)
	}
	if v.Damages != 0 {
		t.Errorf("damages = %d, want 0", v.Damages)
	}
}

func TestVerdictDamagesRoundFractionalAverages(t *testing.T) {
	// Average 50.333...: margin * 20000 = 6666.67, rounds to 6667.
	panel := panelWithScores(t, 51, 50, 50)
	v := panel.Verdict()
	if v.Winner != WinnerPlaintiff {
		t.Fatalf("winner = %s, want Plaintiff", v.Winner)
	}
	if v.Damages != 6667 {
		t.Errorf("damages = %d, want 6667", v.Damages)
	}

	// Average 50.5: exactly 10000.
	panel = panelWithScores(t, 50, 51)
	if got := panel.Verdict().Damages; got != 10000 {
		t.Errorf("damages = %d, want 10000", got)
	}
}

func TestVerdictEmptyPanelIsNeutralDefense(t *testing.T) {
	p := &Panel{}
	v := p.Verdict()
	if v.Winner != WinnerDefense || v.AverageScore != NeutralScore || v.Damages != 0 {
		t.Errorf("empty panel verdict = %+v", v)
	}
}

func TestVerdictCarriesJurorScores(t *testing.T) {
	panel := panelWithScores(t, 70, 30)
	v := panel.Verdict()
	if len(v.JurorScores) != 2 {
		t.Fatalf("juror scores = %v", v.JurorScores)
	}
	if v.JurorScores[jurorName(0)] != 70 || v.JurorScores[jurorName(1)] != 30 {
		t.Errorf("juror scores = %v", v.JurorScores)
	}
}

func TestVerdictReflectsDeliberation(t *testing.T) {
	profiles := []agent.Profile{
		{Name: "Elena", Age: 39, Occupation: "teacher"},
		{Name: "Chen", Age: 29, Occupation: "engineer"},
	}
	fake := &testutil.FakeCompleter{Script: func(req llm.Request) (string, error) {
		if req.Persona == "Elena" {
			return "THOUGHTS: compelling\nSCORE: 90", nil
		}
		return "THOUGHTS: plausible\nSCORE: 60", nil
	}}
	panel, err := NewPanel(profiles, fake, 0, nil)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	if _, err := panel.DeliberateParallel(context.Background(), "closing", nil); err != nil {
		t.Fatalf("DeliberateParallel: %v", err)
	}
	v := panel.Verdict()
	if v.Winner != WinnerPlaintiff || v.AverageScore != 75.0 || v.Damages != 500000 {
		t.Errorf("verdict = %+v", v)
	}
}
