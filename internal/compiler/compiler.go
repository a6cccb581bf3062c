// Package compiler turns raw question-bank tables into an ordered stream of
// form-building instructions. The pass is pure and single-scan: normalize each
// row, classify it, sort the accepted records, and emit instructions, carrying
// a stats accumulator through the whole walk.
package compiler

import (
	"context"
	"errors"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
)

// ErrEmptyQuestionBank signals that the questions table produced neither an
// accepted row nor a skip event, meaning the table was empty.
var ErrEmptyQuestionBank = errors.New("compiler: question bank contains no question rows")

// WarnFunc receives respondent-field validation warnings. These are logged
// but deliberately kept out of ValidationStats; only question rows feed the
// stats report.
type WarnFunc func(format string, args ...any)

// Option customises the compiler configuration.
type Option func(*Compiler)

// WithWarnFunc installs a sink for respondent-field warnings. The default
// discards them.
func WithWarnFunc(fn WarnFunc) Option {
	return func(c *Compiler) {
		if fn != nil {
			c.warnf = fn
		}
	}
}

// WithCollator overrides the collator used for section comparison.
func WithCollator(col *collate.Collator) Option {
	return func(c *Compiler) {
		if col != nil {
			c.collator = col
		}
	}
}

// Compiler implements the validate and compile operations over question-bank
// tables. Instances are stateless across calls and safe for reuse.
type Compiler struct {
	warnf    WarnFunc
	collator *collate.Collator
}

// New constructs a Compiler applying any provided options.
func New(options ...Option) *Compiler {
	c := &Compiler{
		warnf:    func(string, ...any) {},
		collator: collate.New(language.English),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Validate runs the normalization and validation pass over all three tables
// and returns the aggregated stats without emitting instructions.
func (c *Compiler) Validate(ctx context.Context, tables bank.Tables) (form.ValidationStats, error) {
	if err := ctx.Err(); err != nil {
		return form.ValidationStats{}, err
	}
	result := c.scan(tables)
	return result.stats(), nil
}

// Compile runs the full pipeline and returns the instruction stream together
// with the same stats shape Validate produces. A questions table that yields
// neither accepted rows nor skip events fails with ErrEmptyQuestionBank.
func (c *Compiler) Compile(ctx context.Context, tables bank.Tables) (form.CompileResult, error) {
	if err := ctx.Err(); err != nil {
		return form.CompileResult{}, err
	}

	result := c.scan(tables)
	stats := result.stats()
	if stats.QuestionsCount == 0 && stats.SkippedCount == 0 {
		return form.CompileResult{}, ErrEmptyQuestionBank
	}

	sortRespondentFields(result.fields)
	c.sortQuestions(result.questions)

	return form.CompileResult{
		Meta:    metaFromRows(tables.Meta),
		Program: emit(result.fields, result.questions),
		Stats:   stats,
	}, nil
}

// scan performs the sequential row walk. Row order is preserved so warning
// messages and stable-sort tie-breaks stay deterministic.
func (c *Compiler) scan(tables bank.Tables) scanResult {
	var result scanResult

	for _, row := range tables.RespondentFields {
		field, blank := normalizeRespondentField(row)
		if blank {
			continue
		}
		if c.validateRespondentField(field) {
			result.fields = append(result.fields, field)
		}
	}

	for _, row := range tables.Questions {
		question, blank := normalizeQuestion(row)
		if blank {
			result.skipped++
			continue
		}
		if reason, ok := validateQuestion(question); !ok {
			result.skipped++
			result.errors = append(result.errors, reason)
			continue
		}
		result.questions = append(result.questions, question)
		if question.Section != "" {
			if result.sections == nil {
				result.sections = make(map[string]struct{})
			}
			result.sections[question.Section] = struct{}{}
		}
	}

	return result
}

// scanResult is the accumulator threaded through the row-processing pass.
type scanResult struct {
	fields    []form.RespondentField
	questions []form.Question
	sections  map[string]struct{}
	skipped   int
	errors    []string
}

func (r scanResult) stats() form.ValidationStats {
	return form.ValidationStats{
		SectionsCount:  len(r.sections),
		QuestionsCount: len(r.questions),
		SkippedCount:   r.skipped,
		Errors:         r.errors,
	}
}

func metaFromRows(rows []bank.Row) form.Meta {
	entries := make([]form.MetaEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, normalizeMetaEntry(row))
	}
	return form.MetaFromEntries(entries)
}
