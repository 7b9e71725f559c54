package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/rag"
)

var rulesLimit int

var rulesCmd = &cobra.Command{
	Use:   "rules <query>",
	Short: "Search the legal rulebook",
	Long:  `Search the rulebook the judge consults when ruling on procedural matters.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().IntVar(&rulesLimit, "limit", 3, "maximum results")
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rulebook, err := rag.Load(cfg.Rulebook.Path, cfg.Rulebook.CacheSize, nil)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	results := rulebook.Search(query, rulesLimit)
	if len(results) == 0 {
		fmt.Printf("no rules match %q\n", query)
		return nil
	}
	for _, r := range results {
		fmt.Println(r)
	}
	return nil
}
