package agent

import (
	"context"
	"strings"

	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
	"github.com/lexumbra/lexumbra/internal/prompts"
)

// RuleSource answers keyword queries against a legal reference text. A nil
// source is valid: the judge then rules from the persona instruction alone.
type RuleSource interface {
	Search(query string, limit int) []string
}

// Judge presides over the trial: it opens court, summarizes arguments for
// the jury, decides whether an autonomous debate should continue, and rules
// on procedural matters with optional rulebook support.
type Judge struct {
	*Persona
	rulebook RuleSource
}

// NewJudge constructs the presiding judge persona.
func NewJudge(completer llm.Completer, rulebook RuleSource, logger *logging.Logger) (*Judge, error) {
	base, err := NewPersona("Judge Marshall", RoleJudge, prompts.JudgeSystem, completer, logger)
	if err != nil {
		return nil, err
	}
	return &Judge{Persona: base, rulebook: rulebook}, nil
}

// OpenCourt returns the call-to-order announcement for a case. Procedural
// announcements are scripted, not generated.
func (j *Judge) OpenCourt(caseTitle string) string {
	return prompts.JudgeOpenCourt(caseTitle)
}

// SummarizeForJury produces a neutral summary of the supplied argument
// context for the jury's benefit.
func (j *Judge) SummarizeForJury(ctx context.Context, argumentContext string) (string, error) {
	return j.Generate(ctx, prompts.JudgeSummary(argumentContext))
}

// ShouldConclude asks the judge whether the debate has run its course. The
// decision is sampled at the given temperature; any response containing the
// word CONCLUDE ends the debate, everything else continues it.
func (j *Judge) ShouldConclude(ctx context.Context, plaintiffSummary, defenseSummary string, round, maxRounds int, temperature float32) (bool, error) {
	prompt := prompts.JudgeShouldConclude(plaintiffSummary, defenseSummary, round, maxRounds)
	ruling, err := j.GenerateWithTemperature(ctx, prompt, temperature)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(ruling), "CONCLUDE"), nil
}

// RuleOnMatter issues a procedural ruling, consulting the rulebook for
// relevant authority when one is wired in.
func (j *Judge) RuleOnMatter(ctx context.Context, matter, background string) (string, error) {
	rules := j.ConsultRulebook(matter)
	if rules == "" {
		rules = "No rulebook entries were found for this matter."
	} else {
		rules = "RELEVANT RULES:\n" + rules
	}
	return j.Generate(ctx, prompts.JudgeRuleOnMatter(matter, background, rules))
}

// ConsultRulebook returns the rulebook entries matching the query, one per
// line. Returns the empty string when no rulebook is attached or nothing
// matches.
func (j *Judge) ConsultRulebook(query string) string {
	if j.rulebook == nil {
		return ""
	}
	return strings.Join(j.rulebook.Search(query, 3), "\n")
}
