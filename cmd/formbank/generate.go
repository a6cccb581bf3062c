package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbmp/go-formbank/internal/store"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
)

var (
	generateBank     string
	generateRenderer string
	generateOutput   string
	generateRecord   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the question bank and render the form",
	Long: `Generate runs the full pipeline: load, validate, sort, compile, and
render with the selected renderer. The rendered output goes to --output or
stdout. With --record, build results are written to the results store.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateBank, "bank", "", "path to the question bank YAML")
	generateCmd.Flags().StringVar(&generateRenderer, "renderer", "", "renderer name (default from config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write rendered output to this file instead of stdout")
	generateCmd.Flags().BoolVar(&generateRecord, "record", false, "record the build result in the results store")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	src, err := bankSource(generateBank)
	if err != nil {
		return err
	}

	var options []orchestrator.Option
	if generateRecord {
		db, err := store.Open(appConfig.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		options = append(options, orchestrator.WithResultStore(db))
	}

	renderer := generateRenderer
	if renderer == "" {
		renderer = appConfig.Renderer
	}

	result, err := newPipeline(options...).Generate(cmd.Context(), orchestrator.Request{
		Source:   src,
		Renderer: renderer,
	})
	if err != nil {
		return err
	}

	logger.Info("bank compiled",
		zap.Int("sections", result.Stats.SectionsCount),
		zap.Int("questions", result.Stats.QuestionsCount),
		zap.Int("skipped", result.Stats.SkippedCount),
	)
	for _, msg := range result.Stats.Errors {
		logger.Warn("question skipped", zap.String("reason", msg))
	}

	if generateOutput != "" {
		return os.WriteFile(generateOutput, result.Output, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
