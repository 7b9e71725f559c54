package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexumbra/lexumbra/internal/event"
)

var (
	trialTitle    string
	trialCaseFile string
	trialFacts    string
	trialRounds   int
	trialExport   string
)

var trialCmd = &cobra.Command{
	Use:   "trial [casefile]",
	Short: "Run a guided trial to verdict",
	Long: `Run the full guided proceeding: opening statements, a fixed number of
argument rounds, jury deliberation, and the verdict. The transcript is
exported when the court adjourns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrial,
}

func init() {
	trialCmd.Flags().StringVar(&trialTitle, "title", "", "case caption (e.g. \"Smith v. TechCorp\")")
	trialCmd.Flags().StringVar(&trialCaseFile, "case-file", "", "path to a plain-text case document")
	trialCmd.Flags().StringVar(&trialFacts, "facts", "", "case facts given inline")
	trialCmd.Flags().IntVar(&trialRounds, "rounds", 0, "argument rounds (0 uses the configured maximum)")
	trialCmd.Flags().StringVar(&trialExport, "export", "", "transcript export path (default from config)")
	rootCmd.AddCommand(trialCmd)
}

func runTrial(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	caseFile := trialCaseFile
	if len(args) > 0 {
		caseFile = args[0]
	}
	room, err := assembleCourtroom(ctx, trialTitle, caseFile, trialFacts)
	if err != nil {
		return err
	}
	defer room.close()

	// Echo the proceeding as it happens.
	room.bus.Subscribe("debate.statement", func(e event.Event) {
		if s, ok := e.(event.StatementEvent); ok {
			fmt.Printf("\n[%s, round %d]\n%s\n", s.Side, s.Round, s.Content)
		}
	})
	room.bus.Subscribe("jury.juror_voted", func(e event.Event) {
		if v, ok := e.(event.JurorVotedEvent); ok {
			fmt.Printf("  juror %s votes %d/100\n", v.JurorName, v.Score)
		}
	})

	fmt.Printf("Case %s: %s\n", room.orch.Case().DocketID, room.orch.Case().Title)
	if err := room.orch.RunGuidedTrial(ctx, trialRounds); err != nil {
		return err
	}
	printVerdict(room.orch.Verdict())

	exportPath := trialExport
	if exportPath == "" {
		exportPath = room.cfg.Export.TranscriptFile
	}
	if err := room.orch.Export(exportPath); err != nil {
		return err
	}
	fmt.Printf("\ntranscript written to %s\n", exportPath)
	return nil
}
