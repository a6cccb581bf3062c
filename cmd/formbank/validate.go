package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
)

var (
	validateBank   string
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Dry-run the question bank and report validation stats",
	Long: `Validate loads the question bank, runs the full normalization and
validation pass, and prints the stats report without creating anything.
With --strict (the default), skipped questions make the command exit
non-zero so CI can gate on a clean bank.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateBank, "bank", "", "path to the question bank YAML")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", true, "exit non-zero when any question is skipped")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	src, err := bankSource(validateBank)
	if err != nil {
		return err
	}

	stats, err := newPipeline().Validate(cmd.Context(), orchestrator.Request{Source: src})
	if err != nil {
		return err
	}

	printStats(cmd, stats)

	if validateStrict && stats.SkippedCount > 0 {
		return fmt.Errorf("%d question(s) skipped", stats.SkippedCount)
	}
	return nil
}

func printStats(cmd *cobra.Command, stats form.ValidationStats) {
	cmd.Printf("Sections:  %d\n", stats.SectionsCount)
	cmd.Printf("Questions: %d\n", stats.QuestionsCount)
	cmd.Printf("Skipped:   %d\n", stats.SkippedCount)
	if len(stats.Errors) > 0 {
		cmd.Println("Errors:")
		for _, msg := range stats.Errors {
			cmd.Printf("  - %s\n", msg)
		}
	}
}
