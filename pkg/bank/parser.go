package bank

import "context"

// Parser decodes a loaded document into the three raw row tables. The YAML
// implementation under internal/bank/parser is the native format; callers can
// substitute their own for other tabular stores.
type Parser interface {
	Tables(ctx context.Context, doc Document) (Tables, error)
}

// ParserOptions exposes decode toggles shared by parser implementations.
type ParserOptions struct {
	// AllowEmptyTables accepts documents that omit one or more of the three
	// tables. Defaults to true; the compiler reports the empty-bank condition
	// itself.
	AllowEmptyTables bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithStrictTables rejects documents missing any of the three tables.
func WithStrictTables() ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowEmptyTables = false
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{AllowEmptyTables: true}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}
