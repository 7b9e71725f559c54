package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/trial"
	"github.com/lexumbra/lexumbra/internal/tui"
)

var (
	debateTitle    string
	debateCaseFile string
	debateFacts    string
	debateExport   string
	debateWatch    bool
)

var debateCmd = &cobra.Command{
	Use:   "debate [casefile]",
	Short: "Run an autonomous debate to verdict",
	Long: `Run an autonomous debate: counsel argue round after round and the judge
decides when the arguments have been heard, bounded by the configured round
floor and ceiling. The jury then deliberates and the verdict is rendered.

With --watch the debate plays out in a live terminal view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDebate,
}

func init() {
	debateCmd.Flags().StringVar(&debateTitle, "title", "", "case caption")
	debateCmd.Flags().StringVar(&debateCaseFile, "case-file", "", "path to a plain-text case document")
	debateCmd.Flags().StringVar(&debateFacts, "facts", "", "case facts given inline")
	debateCmd.Flags().StringVar(&debateExport, "export", "", "transcript export path (default from config)")
	debateCmd.Flags().BoolVar(&debateWatch, "watch", false, "watch the debate in a live terminal view")
	rootCmd.AddCommand(debateCmd)
}

func runDebate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	caseFile := debateCaseFile
	if len(args) > 0 {
		caseFile = args[0]
	}
	room, err := assembleCourtroom(ctx, debateTitle, caseFile, debateFacts)
	if err != nil {
		return err
	}
	defer room.close()

	if debateWatch {
		if err := tui.Run(ctx, room.orch, room.bus); err != nil {
			return err
		}
	} else {
		if err := streamDebate(cmd, room); err != nil {
			return err
		}
	}

	if verdict := room.orch.Verdict(); verdict != nil {
		printVerdict(verdict)
	}

	exportPath := debateExport
	if exportPath == "" {
		exportPath = room.cfg.Export.TranscriptFile
	}
	if err := room.orch.Export(exportPath); err != nil {
		return err
	}
	fmt.Printf("\ntranscript written to %s\n", exportPath)
	return nil
}

// streamDebate runs the debate stepper on stdout, printing each argument
// fragment as counsel produce it, then deliberates and renders the verdict.
func streamDebate(cmd *cobra.Command, room *courtroom) error {
	ctx := cmd.Context()
	debate, err := room.orch.NewDebate()
	if err != nil {
		return err
	}
	debate.OnChunk(func(_, chunk string) {
		fmt.Print(chunk)
	})
	for !debate.Done() {
		step, err := debate.Next(ctx)
		if err != nil {
			return err
		}
		switch step.Kind {
		case trial.StepJudgeOpen:
			fmt.Printf("[Judge] %s\n", step.Content)
		case trial.StepRoundStart:
			fmt.Printf("\n=== Round %d ===\n", step.Round)
		case trial.StepPlaintiffSpeaking, trial.StepDefenseSpeaking:
			fmt.Printf("\n[%s]\n", step.Speaker)
		case trial.StepPlaintiffDone, trial.StepDefenseDone:
			fmt.Println()
		case trial.StepRoundComplete:
			fmt.Printf("\n[Judge] Round %d complete. %s\n", step.Round, step.Reason)
		case trial.StepDebateComplete:
			fmt.Printf("\n[Judge] Arguments concluded after %d rounds.\n", step.Round)
		}
	}

	room.bus.Subscribe("jury.juror_voted", func(e event.Event) {
		if v, ok := e.(event.JurorVotedEvent); ok {
			fmt.Printf("  juror %s votes %d/100\n", v.JurorName, v.Score)
		}
	})
	fmt.Println("\nThe jury retires to deliberate.")
	if err := room.orch.RunJuryDeliberation(ctx); err != nil {
		return err
	}
	if err := room.orch.RunVerdict(ctx); err != nil {
		return err
	}
	room.orch.Adjourn()
	return nil
}
