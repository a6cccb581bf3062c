package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/hbmp/go-formbank/pkg/orchestrator"
	"github.com/hbmp/go-formbank/pkg/render"
	"github.com/hbmp/go-formbank/pkg/renderers/tui"
)

var previewBank string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Run the compiled form interactively in the terminal",
	Long: `Preview compiles the question bank and walks through the resulting
form as a sequence of terminal prompts. Collected answers are printed as
JSON when the run completes. Ctrl-C aborts without output.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewBank, "bank", "", "path to the question bank YAML")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	src, err := bankSource(previewBank)
	if err != nil {
		return err
	}

	terminal, err := tui.New()
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(terminal)

	result, err := newPipeline(orchestrator.WithRegistry(registry)).Generate(cmd.Context(), orchestrator.Request{
		Source:   src,
		Renderer: terminal.Name(),
	})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			cmd.PrintErrln("preview aborted")
			return nil
		}
		return err
	}

	_, err = cmd.OutOrStdout().Write(result.Output)
	return err
}
