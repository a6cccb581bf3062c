// Package parser decodes question-bank documents into raw row tables. YAML is
// the native document format; a CSV reader covers per-table imports from
// spreadsheet exports.
package parser

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hbmp/go-formbank/pkg/bank"
)

// Parser implements bank.Parser for YAML question-bank documents.
type Parser struct {
	options bank.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ bank.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options bank.ParserOptions) bank.Parser {
	return &Parser{options: options}
}

// document mirrors the on-disk YAML shape. Cell values stay raw; coercion is
// the compiler's job.
type document struct {
	Meta             []bank.Row `yaml:"meta"`
	RespondentFields []bank.Row `yaml:"respondent_fields"`
	Questions        []bank.Row `yaml:"questions"`
}

// Tables decodes the document payload into the three row tables.
func (p *Parser) Tables(ctx context.Context, doc bank.Document) (bank.Tables, error) {
	if err := ctx.Err(); err != nil {
		return bank.Tables{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return bank.Tables{}, errors.New("bank parser: document payload is empty")
	}

	var decoded document
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return bank.Tables{}, fmt.Errorf("bank parser: decode document: %w", err)
	}

	tables := bank.Tables{
		Meta:             decoded.Meta,
		RespondentFields: decoded.RespondentFields,
		Questions:        decoded.Questions,
	}

	if !p.options.AllowEmptyTables {
		if len(tables.Questions) == 0 {
			return bank.Tables{}, errors.New("bank parser: document has no questions table")
		}
		if len(tables.RespondentFields) == 0 {
			return bank.Tables{}, errors.New("bank parser: document has no respondent_fields table")
		}
		if len(tables.Meta) == 0 {
			return bank.Tables{}, errors.New("bank parser: document has no meta table")
		}
	}

	return tables, nil
}
