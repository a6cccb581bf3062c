package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hbmp/go-formbank/pkg/bank"
)

const sampleDocument = `
meta:
  - { Key: FormTitle, Value: Employee Pulse }
respondent_fields:
  - { FieldName: Name, Type: TEXT, Required: "TRUE", Order: 1 }
questions:
  - QuestionText: How satisfied are you?
    Type: MCQ
    Section: General
    Order: 1
    Option1: Very
    Option2: Somewhat
`

func TestTablesDecodesYAML(t *testing.T) {
	t.Parallel()

	doc := bank.MustNewDocument(bank.SourceFromFS("bank.yaml"), []byte(sampleDocument))
	tables, err := New(bank.NewParserOptions()).Tables(context.Background(), doc)
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}

	if len(tables.Meta) != 1 || len(tables.RespondentFields) != 1 || len(tables.Questions) != 1 {
		t.Fatalf("unexpected table sizes: %+v", tables)
	}
	if got := tables.Questions[0].String(bank.ColQuestionText); got != "How satisfied are you?" {
		t.Fatalf("question text = %q", got)
	}
	if got := tables.Questions[0].String("Option2"); got != "Somewhat" {
		t.Fatalf("option2 = %q", got)
	}
	// Numeric cells stay raw for the compiler to coerce.
	if _, ok := tables.Questions[0][bank.ColOrder].(int); !ok {
		t.Fatalf("order cell = %T, want raw int", tables.Questions[0][bank.ColOrder])
	}
}

func TestTablesStrictMode(t *testing.T) {
	t.Parallel()

	doc := bank.MustNewDocument(bank.SourceFromFS("bank.yaml"), []byte("meta: []\n"))
	_, err := New(bank.NewParserOptions(bank.WithStrictTables())).Tables(context.Background(), doc)
	if err == nil {
		t.Fatalf("expected error for missing tables in strict mode")
	}
}

func TestTablesRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	doc := bank.MustNewDocument(bank.SourceFromFS("bank.yaml"), []byte("questions: {broken"))
	if _, err := New(bank.NewParserOptions()).Tables(context.Background(), doc); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestReadTable(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"QuestionText,Type,Section,Order,Option1,Option2",
		`Age range?,DROPDOWN,General,1,18-25,26+`,
		",,,,,",
		`Comments,PARAGRAPH,,2,,`,
	}, "\n")

	rows, err := ReadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (blank record dropped)", len(rows))
	}

	want := bank.Row{
		"QuestionText": "Age range?",
		"Type":         "DROPDOWN",
		"Section":      "General",
		"Order":        "1",
		"Option1":      "18-25",
		"Option2":      "26+",
	}
	if diff := cmp.Diff(want, rows[0]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTableShortRecords(t *testing.T) {
	t.Parallel()

	rows, err := ReadTable(strings.NewReader("FieldName,Type,Required\nName"))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if _, ok := rows[0]["Type"]; ok {
		t.Fatalf("short record should leave trailing columns absent")
	}
}

func TestReadTableEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := ReadTable(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for missing header")
	}
}
