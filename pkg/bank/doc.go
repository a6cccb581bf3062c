// Package bank defines the question-bank input surface: sources, documents,
// raw row tables, and the loader/parser contracts implemented under
// internal/bank. The compiler consumes the raw tables produced here; all type
// coercion happens downstream so parsers can stay format-focused.
package bank
