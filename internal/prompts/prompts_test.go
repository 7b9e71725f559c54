package prompts

import (
	"strings"
	"testing"
)

func TestJudgeOpenCourtIncludesCaseTitle(t *testing.T) {
	got := JudgeOpenCourt("Smith v. TechCorp")
	if !strings.Contains(got, "Smith v. TechCorp") {
		t.Errorf("open-court announcement missing case title: %q", got)
	}
	if !strings.Contains(got, "Plaintiff, you may proceed") {
		t.Errorf("open-court announcement missing plaintiff cue: %q", got)
	}
}

func TestJudgeShouldConcludeCarriesRoundNumbers(t *testing.T) {
	got := JudgeShouldConclude("p-summary", "d-summary", 3, 5)
	for _, want := range []string{"p-summary", "d-summary", "ROUND: 3 of maximum 5", "CONTINUE or CONCLUDE"} {
		if !strings.Contains(got, want) {
			t.Errorf("should-conclude prompt missing %q", want)
		}
	}
}

func TestJurorSystemWeavesProfileFields(t *testing.T) {
	p := JurorPersona{
		Name:          "Marcus Thompson",
		Age:           45,
		Occupation:    "construction foreman",
		Background:    "Worked his way up from laborer.",
		Education:     "High school diploma",
		Traits:        []string{"practical", "skeptical"},
		DecisionStyle: "Relies on gut instinct and life experience.",
		BiasesPro:     []string{"working people"},
		BiasesAnti:    []string{"large corporations"},
	}
	got := JurorSystem(p)
	for _, want := range []string{
		"Marcus Thompson, a 45-year-old construction foreman",
		"practical, skeptical",
		"sympathetic to: working people",
		"skeptical of: large corporations",
		"0 = Completely in favor of the Defense",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("juror system prompt missing %q", want)
		}
	}
}

func TestJurorDeliberationFormatContract(t *testing.T) {
	got := JurorDeliberation("some arguments", "Elena")
	if !strings.Contains(got, "THOUGHTS:") || !strings.Contains(got, "SCORE:") {
		t.Errorf("deliberation prompt missing response format markers: %q", got)
	}
	if !strings.Contains(got, "As Elena,") {
		t.Errorf("deliberation prompt missing juror name: %q", got)
	}
}

func TestVerdictFormatting(t *testing.T) {
	p := VerdictPlaintiff(240000, 62.0)
	if !strings.Contains(p, "$240000") || !strings.Contains(p, "62.0/100") {
		t.Errorf("plaintiff verdict malformed: %q", p)
	}
	d := VerdictDefense(41.5)
	if !strings.Contains(d, "Case dismissed") || !strings.Contains(d, "41.5/100") {
		t.Errorf("defense verdict malformed: %q", d)
	}
}

func TestArgumentPromptsForbidReintroduction(t *testing.T) {
	for name, got := range map[string]string{
		"plaintiff-context":    PlaintiffArgumentWithContext("a", "b"),
		"plaintiff-rebuttal":   PlaintiffRebuttal("x"),
		"plaintiff-autonomous": PlaintiffAutonomousArgument(2, "facts", "history"),
		"defense-context":      DefenseArgumentWithContext("a", "b"),
		"defense-rebuttal":     DefenseRebuttal("x"),
		"defense-autonomous":   DefenseAutonomousArgument(2, "facts", "history"),
	} {
		if !strings.Contains(got, "re-introduce yourself") {
			t.Errorf("%s prompt allows re-introduction: %q", name, got)
		}
	}
}
