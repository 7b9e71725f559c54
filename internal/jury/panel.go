// Package jury seats the juror panel, fans deliberation out across the
// seated jurors, and aggregates their scores into a verdict.
package jury

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
)

// NeutralScore is the panel average reported when no jurors are seated.
const NeutralScore = 50.0

// profileStore is the on-disk shape of the juror profile document.
type profileStore struct {
	Jurors []agent.Profile `json:"jurors"`
}

// LoadProfiles reads a juror profile document. A missing file is a
// NotFoundError; a document that parses but seats nobody is reported by
// NewPanel, not here.
func LoadProfiles(path string) ([]agent.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("juror profiles", path)
		}
		return nil, fmt.Errorf("reading juror profiles: %w", err)
	}
	var store profileStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parsing juror profiles: %w", err)
	}
	return store.Jurors, nil
}

// Panel is the seated jury. Deliberation fans out across jurors through a
// bounded worker pool; everything else is read-only queries.
type Panel struct {
	jurors  []*agent.Juror
	workers int
	logger  *logging.Logger

	mu          sync.Mutex
	voteHistory [][]Vote
}

// NewPanel seats jurors from profiles. A profile that fails to seat (blank
// name, for instance) is skipped with a warning rather than aborting the
// panel; an empty panel is an error.
func NewPanel(profiles []agent.Profile, completer llm.Completer, workers int, logger *logging.Logger) (*Panel, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	var jurors []*agent.Juror
	for _, profile := range profiles {
		juror, err := agent.NewJuror(profile, completer, logger)
		if err != nil {
			logger.Warn("skipping juror that failed to seat", "juror", profile.Name, "error", err)
			continue
		}
		jurors = append(jurors, juror)
	}
	if len(jurors) == 0 {
		return nil, errors.NewConfigError("juror panel", errors.ErrPanelEmpty)
	}
	if workers <= 0 || workers > len(jurors) {
		workers = len(jurors)
	}
	logger.Info("jury seated", "jurors", len(jurors), "workers", workers)
	return &Panel{jurors: jurors, workers: workers, logger: logger}, nil
}

// Size returns the number of seated jurors.
func (p *Panel) Size() int { return len(p.jurors) }

// Names returns the seated jurors' names in seating order.
func (p *Panel) Names() []string {
	names := make([]string, len(p.jurors))
	for i, j := range p.jurors {
		names[i] = j.Name()
	}
	return names
}

// Jurors returns the seated jurors in seating order.
func (p *Panel) Jurors() []*agent.Juror { return p.jurors }

// Scores returns each juror's current verdict score by name.
func (p *Panel) Scores() map[string]int {
	scores := make(map[string]int, len(p.jurors))
	for _, j := range p.jurors {
		scores[j.Name()] = j.CurrentScore()
	}
	return scores
}

// AverageScore returns the panel's mean verdict score, or the neutral
// midpoint when the panel is empty.
func (p *Panel) AverageScore() float64 {
	if len(p.jurors) == 0 {
		return NeutralScore
	}
	sum := 0
	for _, j := range p.jurors {
		sum += j.CurrentScore()
	}
	return float64(sum) / float64(len(p.jurors))
}

// Vote is one juror's deliberation outcome. When Err is set the juror's
// generation failed and Score is their unchanged prior position.
type Vote struct {
	JurorName string `json:"juror_name"`
	Monologue string `json:"monologue"`
	Score     int    `json:"score"`
	Err       error  `json:"-"`
}

// DeliberateParallel has every juror weigh the given trial context
// concurrently, bounded by the panel's worker count. Votes are delivered to
// onVote (if non-nil) as each juror finishes, then returned in completion
// order. A juror whose generation fails keeps their prior score and is
// still counted; the deliberation as a whole only fails when the context is
// cancelled.
func (p *Panel) DeliberateParallel(ctx context.Context, trialContext string, onVote func(Vote)) ([]Vote, error) {
	jobs := make(chan *agent.Juror)
	results := make(chan Vote)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for juror := range jobs {
				monologue, score, err := juror.Deliberate(ctx, trialContext)
				if err != nil {
					p.logger.Warn("juror deliberation failed", "juror", juror.Name(), "error", err)
				}
				results <- Vote{JurorName: juror.Name(), Monologue: monologue, Score: score, Err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, juror := range p.jurors {
			select {
			case jobs <- juror:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	votes := make([]Vote, 0, len(p.jurors))
	for vote := range results {
		if onVote != nil {
			onVote(vote)
		}
		votes = append(votes, vote)
	}
	if err := ctx.Err(); err != nil {
		return votes, err
	}

	p.mu.Lock()
	p.voteHistory = append(p.voteHistory, votes)
	p.mu.Unlock()
	return votes, nil
}

// VoteHistory returns each completed deliberation round's votes, oldest
// first.
func (p *Panel) VoteHistory() [][]Vote {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]Vote, len(p.voteHistory))
	copy(out, p.voteHistory)
	return out
}
