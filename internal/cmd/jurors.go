package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexumbra/lexumbra/internal/agent"
	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/jury"
)

var jurorsCmd = &cobra.Command{
	Use:   "jurors",
	Short: "List the juror pool",
	Long:  `Show the juror profiles that would be seated for a trial.`,
	RunE:  runJurors,
}

func init() {
	rootCmd.AddCommand(jurorsCmd)
}

func runJurors(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	profiles, err := jury.LoadProfiles(cfg.Jury.ProfilesFile)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		fmt.Println("no jurors in the pool")
		return nil
	}
	for _, p := range profiles {
		fmt.Printf("%-12s %3d  %-24s %s\n", p.Name, p.Age, p.Occupation, startingLean(p))
	}
	return nil
}

func startingLean(p agent.Profile) string {
	if p.InitialBiasScore == nil {
		return "starts neutral"
	}
	score := *p.InitialBiasScore
	switch {
	case score > 50:
		return fmt.Sprintf("starts at %d (leans plaintiff; pro %s)", score, strings.Join(p.HiddenBiases.Pro, ", "))
	case score < 50:
		return fmt.Sprintf("starts at %d (leans defense; anti %s)", score, strings.Join(p.HiddenBiases.Anti, ", "))
	default:
		return "starts at 50 (neutral)"
	}
}
