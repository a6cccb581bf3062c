package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hbmp/go-formbank/internal/bank/loader"
	"github.com/hbmp/go-formbank/internal/openapi"
	"github.com/hbmp/go-formbank/pkg/bank"
)

var (
	importSource    string
	importOperation string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Derive question-bank rows from external schemas",
}

var importOpenAPICmd = &cobra.Command{
	Use:   "openapi",
	Short: "Derive respondent-field rows from an OpenAPI operation",
	Long: `Import openapi reads an OpenAPI document, locates the named operation,
and maps its request-body properties onto respondent-field rows. The rows
are printed as a YAML fragment ready to paste into a question bank.`,
	RunE: runImportOpenAPI,
}

func init() {
	importOpenAPICmd.Flags().StringVar(&importSource, "source", "", "path or URL of the OpenAPI document")
	importOpenAPICmd.Flags().StringVar(&importOperation, "operation", "", "operationId to import")
	_ = importOpenAPICmd.MarkFlagRequired("source")
	_ = importOpenAPICmd.MarkFlagRequired("operation")

	importCmd.AddCommand(importOpenAPICmd)
	rootCmd.AddCommand(importCmd)
}

func runImportOpenAPI(cmd *cobra.Command, args []string) error {
	src := bank.SourceFromFile(importSource)
	if isURL(importSource) {
		src = bank.SourceFromURL(importSource)
	}

	docs := loader.New(bank.NewLoaderOptions(bank.WithHTTPFallback(30 * time.Second)))
	doc, err := docs.Load(cmd.Context(), src)
	if err != nil {
		return err
	}

	rows, err := openapi.New().RespondentFieldRows(cmd.Context(), doc, importOperation)
	if err != nil {
		return err
	}

	fragment, err := yaml.Marshal(map[string]any{"respondent_fields": rows})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(fragment)
	return err
}

func isURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
