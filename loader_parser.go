package formbank

import (
	internalLoader "github.com/hbmp/go-formbank/internal/bank/loader"
	internalParser "github.com/hbmp/go-formbank/internal/bank/parser"
	"github.com/hbmp/go-formbank/pkg/bank"
)

// NewLoader constructs a bank loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...bank.LoaderOption) bank.Loader {
	cfg := bank.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a bank parser backed by the internal implementation.
func NewParser(options ...bank.ParserOption) bank.Parser {
	cfg := bank.NewParserOptions(options...)
	return internalParser.New(cfg)
}
