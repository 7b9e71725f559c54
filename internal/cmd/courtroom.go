package cmd

import (
	"context"
	"fmt"

	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/docket"
	"github.com/lexumbra/lexumbra/internal/errors"
	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/logging"
	"github.com/lexumbra/lexumbra/internal/rag"
	"github.com/lexumbra/lexumbra/internal/trial"
)

// courtroom bundles everything a trial command needs.
type courtroom struct {
	cfg    *config.Config
	logger *logging.Logger
	bus    *event.Bus
	orch   *trial.Orchestrator
}

func (c *courtroom) close() {
	if c.logger != nil {
		_ = c.logger.Close()
	}
}

// assembleCourtroom loads config, builds the Gemini client, the rulebook
// (optional), and an orchestrator with the case filed and court assembled.
func assembleCourtroom(ctx context.Context, title, caseFile, facts string) (*courtroom, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logger, err = logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
	}

	completer, err := llm.NewGeminiClient(ctx, cfg.Gemini, cfg.Retry, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	// The judge works without a rulebook; a missing one only degrades
	// procedural rulings.
	var ruleSource *rag.Rulebook
	rulebook, err := rag.Load(cfg.Rulebook.Path, cfg.Rulebook.CacheSize, logger)
	switch {
	case err == nil:
		ruleSource = rulebook
	case errors.IsNotFound(err):
		logger.Warn("rulebook unavailable, judge will rule without it", "path", cfg.Rulebook.Path)
	default:
		_ = logger.Close()
		return nil, err
	}

	if caseFile != "" {
		facts, err = docket.LoadCaseFile(caseFile)
		if err != nil {
			_ = logger.Close()
			return nil, err
		}
	}

	bus := event.NewBus()
	var orch *trial.Orchestrator
	if ruleSource != nil {
		orch = trial.NewOrchestrator(cfg, completer, ruleSource, bus, logger)
	} else {
		orch = trial.NewOrchestrator(cfg, completer, nil, bus, logger)
	}
	if err := orch.SetCase(title, facts); err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := orch.InitializeCourt(); err != nil {
		_ = logger.Close()
		return nil, err
	}
	return &courtroom{cfg: cfg, logger: logger, bus: bus, orch: orch}, nil
}

func printVerdict(v *jury.Verdict) {
	fmt.Println()
	if v.Winner == jury.WinnerPlaintiff {
		fmt.Printf("VERDICT: IN FAVOR OF PLAINTIFF — damages $%d (panel average %.1f/100)\n", v.Damages, v.AverageScore)
	} else {
		fmt.Printf("VERDICT: IN FAVOR OF DEFENSE — case dismissed (panel average %.1f/100)\n", v.AverageScore)
	}
	for name, score := range v.JurorScores {
		fmt.Printf("  %-12s %3d/100\n", name, score)
	}
}
