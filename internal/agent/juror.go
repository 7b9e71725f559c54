package agent

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
	"github.com/lexumbra/lexumbra/internal/prompts"
	"github.com/lexumbra/lexumbra/internal/util"
)

// DefaultScore is the neutral starting position for a juror whose profile
// does not declare an initial bias.
const DefaultScore = 50

// Biases is the hidden sympathetic/skeptical leanings of a juror profile.
type Biases struct {
	Pro  []string `json:"pro"`
	Anti []string `json:"anti"`
}

// Profile describes one juror as stored in the profile document.
type Profile struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Occupation       string   `json:"occupation"`
	Age              int      `json:"age"`
	Background       string   `json:"background"`
	Education        string   `json:"education"`
	Traits           []string `json:"personality_traits"`
	DecisionStyle    string   `json:"decision_style"`
	HiddenBiases     Biases   `json:"hidden_biases"`
	InitialBiasScore *int     `json:"initial_bias_score"`
}

// Reflection is one recorded deliberation: what the juror heard, what they
// privately thought, and where their score landed.
type Reflection struct {
	Heard     string `json:"heard"`
	Monologue string `json:"monologue"`
	Score     int    `json:"score"`
}

// Juror is a seated jury member. A juror carries a running verdict score on
// a 0-100 scale (0 = defense, 100 = plaintiff) that each deliberation may
// move. Jurors are safe for concurrent use; the panel deliberates them in
// parallel.
type Juror struct {
	*Persona

	mu      sync.Mutex
	profile Profile
	score   int
	history []Reflection
}

// NewJuror seats a juror from a profile. The starting score is the
// profile's initial bias clamped to [0, 100], or the neutral midpoint when
// the profile omits it.
func NewJuror(profile Profile, completer llm.Completer, logger *logging.Logger) (*Juror, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, errors.NewConfigError("juror", errors.New("profile has no name"))
	}
	base, err := NewPersona(profile.Name, RoleJuror, prompts.JurorSystem(jurorPersona(profile)), completer, logger)
	if err != nil {
		return nil, err
	}
	score := DefaultScore
	if profile.InitialBiasScore != nil {
		score = util.Clamp(*profile.InitialBiasScore, 0, 100)
	}
	return &Juror{Persona: base, profile: profile, score: score}, nil
}

func jurorPersona(p Profile) prompts.JurorPersona {
	return prompts.JurorPersona{
		Name:          p.Name,
		Age:           p.Age,
		Occupation:    p.Occupation,
		Background:    p.Background,
		Education:     p.Education,
		Traits:        p.Traits,
		DecisionStyle: p.DecisionStyle,
		BiasesPro:     p.HiddenBiases.Pro,
		BiasesAnti:    p.HiddenBiases.Anti,
	}
}

// Profile returns the juror's profile.
func (j *Juror) Profile() Profile { return j.profile }

// CurrentScore returns the juror's present verdict score.
func (j *Juror) CurrentScore() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.score
}

// History returns a copy of the juror's recorded deliberations in order.
func (j *Juror) History() []Reflection {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Reflection, len(j.history))
	copy(out, j.history)
	return out
}

// Deliberate has the juror weigh the latest arguments and update their
// score. Returns the private monologue and the (possibly unchanged) score.
func (j *Juror) Deliberate(ctx context.Context, trialContext string) (string, int, error) {
	return j.reflect(ctx, prompts.JurorDeliberation(trialContext, j.Name()), "")
}

// Think has the juror react to a single trial development outside a full
// deliberation round. Unlike Deliberate, Think also records the reflection
// in the juror's history, with the heard context truncated to 200
// characters.
func (j *Juror) Think(ctx context.Context, trialContext string) (string, int, error) {
	return j.reflect(ctx, prompts.JurorThink(trialContext, j.Name()), util.TruncateString(trialContext, 200))
}

// reflect generates and parses one reflection. A non-empty heard snippet
// additionally records the reflection in the history log.
func (j *Juror) reflect(ctx context.Context, prompt, heard string) (string, int, error) {
	response, err := j.Generate(ctx, prompt)
	if err != nil {
		return "", j.CurrentScore(), err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	monologue, score := parseReflection(response, j.score)
	j.score = score
	if heard != "" {
		j.history = append(j.history, Reflection{
			Heard:     heard,
			Monologue: monologue,
			Score:     score,
		})
	}
	return monologue, score, nil
}

// parseReflection extracts the monologue and score from a juror response.
// The parser is deliberately lenient: models drift from the requested
// format, and a malformed score must never lose the juror's prior position.
//
//   - A line starting with THOUGHTS: (any case) sets the monologue to the
//     text after the first colon; with several such lines the last one
//     stands. Without one, the whole response is the monologue.
//   - A line starting with SCORE: yields a score from the text after the
//     last colon: first three characters, digits only, clamped to [0, 100].
//     If no digits survive, the previous score stands.
func parseReflection(response string, previousScore int) (string, int) {
	monologue := strings.TrimSpace(response)
	score := previousScore

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		switch {
		case strings.HasPrefix(upper, "THOUGHTS:"):
			if idx := strings.Index(trimmed, ":"); idx >= 0 {
				monologue = strings.TrimSpace(trimmed[idx+1:])
			}
		case strings.HasPrefix(upper, "SCORE:"):
			raw := strings.TrimSpace(trimmed[strings.LastIndex(trimmed, ":")+1:])
			if len(raw) > 3 {
				raw = raw[:3]
			}
			var digits strings.Builder
			for _, r := range raw {
				if r >= '0' && r <= '9' {
					digits.WriteRune(r)
				}
			}
			if n, err := strconv.Atoi(digits.String()); err == nil {
				score = util.Clamp(n, 0, 100)
			}
		}
	}
	return monologue, score
}
