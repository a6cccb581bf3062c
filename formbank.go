// Package formbank compiles question banks into ordered form-definition
// instruction streams. The root package re-exports the orchestrator entry
// points so callers get a working pipeline from a single import.
package formbank

import (
	"context"

	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/orchestrator"
	"github.com/hbmp/go-formbank/pkg/render"
)

// Request describes one pipeline run.
type Request = orchestrator.Request

// RenderOptions describes per-request rendering overrides.
type RenderOptions = render.RenderOptions

// GenerateResult is the outcome of a Generate run.
type GenerateResult = orchestrator.GenerateResult

// ValidationStats is the report produced by the validation pass.
type ValidationStats = form.ValidationStats

// ErrEmptyQuestionBank reports a questions table with no rows at all.
var ErrEmptyQuestionBank = orchestrator.ErrEmptyQuestionBank

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Validate loads the question bank from source and runs the dry-run pass,
// returning the stats report without creating anything.
func Validate(ctx context.Context, source bank.Source, options ...orchestrator.Option) (form.ValidationStats, error) {
	return orchestrator.New(options...).Validate(ctx, orchestrator.Request{Source: source})
}

// Compile loads the question bank from source and compiles it into the
// instruction stream.
func Compile(ctx context.Context, source bank.Source, options ...orchestrator.Option) (form.CompileResult, error) {
	return orchestrator.New(options...).Compile(ctx, orchestrator.Request{Source: source})
}

// GenerateHTML compiles the bank and renders it with the named renderer. It
// is the simplest entry point for callers that just want the HTML preview.
func GenerateHTML(ctx context.Context, source bank.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// GenerateHTMLFromDocument renders a form using a pre-loaded document,
// bypassing the loader stage while still delegating to the orchestrator.
func GenerateHTMLFromDocument(ctx context.Context, doc bank.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	result, err := gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
