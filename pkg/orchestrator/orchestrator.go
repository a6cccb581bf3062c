// Package orchestrator coordinates the full pipeline from question-bank
// source to validation report, rendered output, or built form.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/hbmp/go-formbank/internal/bank/loader"
	internalParser "github.com/hbmp/go-formbank/internal/bank/parser"
	"github.com/hbmp/go-formbank/internal/compiler"
	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/render"
	"github.com/hbmp/go-formbank/pkg/renderers/html"
)

const defaultRendererName = "html"

// ErrEmptyQuestionBank is re-exported so callers can classify the empty-bank
// failure without importing the internal compiler.
var ErrEmptyQuestionBank = compiler.ErrEmptyQuestionBank

// Compiler runs the validation and compilation passes over bank tables.
type Compiler interface {
	Validate(ctx context.Context, tables bank.Tables) (form.ValidationStats, error)
	Compile(ctx context.Context, tables bank.Tables) (form.CompileResult, error)
}

// FormBuilder materialises a compiled program into an actual form artifact
// and reports the identifiers the external service assigned.
type FormBuilder interface {
	Create(ctx context.Context, meta form.Meta, program form.Program) (form.BuildResult, error)
}

// ResultStore records build outcomes. Implemented by internal/store.
type ResultStore interface {
	Save(ctx context.Context, meta form.Meta, result form.BuildResult, stats form.ValidationStats) (int64, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom bank loader.
func WithLoader(loader bank.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom bank parser.
func WithParser(parser bank.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithCompiler injects a custom compiler.
func WithCompiler(c Compiler) Option {
	return func(o *Orchestrator) {
		o.compiler = c
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithFormBuilder installs the collaborator that turns compiled programs into
// real forms. Without one, Generate stops after rendering.
func WithFormBuilder(builder FormBuilder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithResultStore installs a store that records build outcomes produced by
// the form builder.
func WithResultStore(store ResultStore) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// Orchestrator coordinates the loader → parser → compiler pipeline and fans
// the compiled program out to a renderer or a form builder. Missing
// dependencies are initialised with the built-in implementations.
type Orchestrator struct {
	loader          bank.Loader
	parser          bank.Parser
	compiler        Compiler
	registry        *render.Registry
	defaultRenderer string
	builder         FormBuilder
	store           ResultStore
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs for one pipeline run.
type Request struct {
	// Source identifies where the question bank lives. Optional when Document
	// or Tables is supplied.
	Source bank.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *bank.Document

	// Tables allows callers to bypass loading and parsing entirely.
	Tables *bank.Tables

	// Renderer names the renderer to use for Generate. If empty, the
	// configured default renderer applies.
	Renderer string

	// RenderOptions carries per-request rendering instructions.
	RenderOptions render.RenderOptions
}

// GenerateResult is the outcome of a Generate run. Built is set only when a
// form builder is configured.
type GenerateResult struct {
	Meta    form.Meta            `json:"meta"`
	Stats   form.ValidationStats `json:"stats"`
	Output  []byte               `json:"-"`
	Content string               `json:"contentType,omitempty"`
	Built   *form.BuildResult    `json:"result,omitempty"`
}

// Validate runs the dry-run pass: load, parse, and validate without emitting
// instructions or touching any collaborator.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (form.ValidationStats, error) {
	if err := o.ready(ctx); err != nil {
		return form.ValidationStats{}, err
	}
	tables, err := o.resolveTables(ctx, req)
	if err != nil {
		return form.ValidationStats{}, err
	}
	stats, err := o.compiler.Validate(ctx, tables)
	if err != nil {
		return form.ValidationStats{}, fmt.Errorf("orchestrator: validate bank: %w", err)
	}
	return stats, nil
}

// Compile runs the full compilation pass and returns the instruction stream
// without rendering or building.
func (o *Orchestrator) Compile(ctx context.Context, req Request) (form.CompileResult, error) {
	if err := o.ready(ctx); err != nil {
		return form.CompileResult{}, err
	}
	tables, err := o.resolveTables(ctx, req)
	if err != nil {
		return form.CompileResult{}, err
	}
	result, err := o.compiler.Compile(ctx, tables)
	if err != nil {
		if errors.Is(err, ErrEmptyQuestionBank) {
			return result, err
		}
		return form.CompileResult{}, fmt.Errorf("orchestrator: compile bank: %w", err)
	}
	return result, nil
}

// Generate compiles the bank, renders the program with the selected renderer,
// and, when a form builder is configured, creates the form and records the
// outcome in the store.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*GenerateResult, error) {
	compiled, err := o.Compile(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, compiled, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	gen := &GenerateResult{
		Meta:    compiled.Meta,
		Stats:   compiled.Stats,
		Output:  output,
		Content: renderer.ContentType(),
	}

	if o.builder != nil {
		built, err := o.builder.Create(ctx, compiled.Meta, compiled.Program)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: build form: %w", err)
		}
		gen.Built = &built
	}

	// Runs are recorded whether or not a builder produced identifiers; a
	// builderless run saves with a zero-value BuildResult.
	if o.store != nil {
		var built form.BuildResult
		if gen.Built != nil {
			built = *gen.Built
		}
		if _, err := o.store.Save(ctx, compiled.Meta, built, compiled.Stats); err != nil {
			return nil, fmt.Errorf("orchestrator: record result: %w", err)
		}
	}

	return gen, nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveTables(ctx context.Context, req Request) (bank.Tables, error) {
	if req.Tables != nil {
		return *req.Tables, nil
	}

	var doc bank.Document
	switch {
	case req.Document != nil:
		doc = *req.Document
	case req.Source != nil:
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return bank.Tables{}, fmt.Errorf("orchestrator: load bank: %w", err)
		}
		doc = loaded
	default:
		return bank.Tables{}, errors.New("orchestrator: source, document, or tables is required")
	}

	tables, err := o.parser.Tables(ctx, doc)
	if err != nil {
		return bank.Tables{}, fmt.Errorf("orchestrator: parse bank: %w", err)
	}
	return tables, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(bank.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(bank.NewParserOptions())
	}
	if o.compiler == nil {
		o.compiler = compiler.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register default renderer: %w", err)
		}
	}

	o.defaultsApplied = true
}
