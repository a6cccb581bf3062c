package compiler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
)

func questionRow(text, section, qtype string, order float64, opts ...string) bank.Row {
	row := bank.Row{
		bank.ColQuestionText: text,
		bank.ColSection:      section,
		bank.ColType:         qtype,
		bank.ColOrder:        order,
	}
	for i, opt := range opts {
		row[fmt.Sprintf("Option%d", i+1)] = opt
	}
	return row
}

func TestValidateCountsAndErrors(t *testing.T) {
	t.Parallel()

	tables := bank.Tables{
		Questions: []bank.Row{
			questionRow("Age?", "General", "TEXT", 1),
			questionRow("Mood?", "General", "MCQ", 2, "Good", "Bad"),
			questionRow("Pick all", "", "CHECKBOX", 3), // choice type, no options
			questionRow("Weird", "", "SCALE", 4),       // unknown type
			{bank.ColQuestionText: "   "},              // blank row, silent skip
		},
	}

	stats, err := New().Validate(context.Background(), tables)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := form.ValidationStats{
		SectionsCount:  1,
		QuestionsCount: 2,
		SkippedCount:   3,
		Errors: []string{
			`Question "Pick all" has type CHECKBOX but no options`,
			`Question "Weird" has invalid type: SCALE`,
		},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateCheckboxWithoutOptions(t *testing.T) {
	t.Parallel()

	stats, err := New().Validate(context.Background(), bank.Tables{
		Questions: []bank.Row{questionRow("Symptoms?", "", "CHECKBOX", 1)},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := form.ValidationStats{
		QuestionsCount: 0,
		SkippedCount:   1,
		Errors:         []string{`Question "Symptoms?" has type CHECKBOX but no options`},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateSectionsCountDistinct(t *testing.T) {
	t.Parallel()

	stats, err := New().Validate(context.Background(), bank.Tables{
		Questions: []bank.Row{
			questionRow("One", "General", "TEXT", 1),
			questionRow("Two", "General", "TEXT", 2),
		},
	})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if stats.SectionsCount != 1 {
		t.Fatalf("sectionsCount = %d, want 1", stats.SectionsCount)
	}
}

func TestRespondentWarningsStayOutOfStats(t *testing.T) {
	t.Parallel()

	var warnings []string
	c := New(WithWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}))

	tables := bank.Tables{
		RespondentFields: []bank.Row{
			{bank.ColFieldName: "Name", bank.ColType: "TEXT"},
			{bank.ColFieldName: "Rating", bank.ColType: "SCALE"},
			{bank.ColFieldName: "Region", bank.ColType: "DROPDOWN"},
		},
		Questions: []bank.Row{questionRow("Q1", "", "TEXT", 1)},
	}

	stats, err := c.Validate(context.Background(), tables)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if stats.SkippedCount != 0 || len(stats.Errors) != 0 {
		t.Fatalf("respondent-field problems leaked into stats: %+v", stats)
	}

	wantWarnings := []string{
		"Unknown respondent detail type SCALE for field: Rating",
		`Respondent field "Region" has type DROPDOWN but no options`,
	}
	if diff := cmp.Diff(wantWarnings, warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileSingleTextQuestion(t *testing.T) {
	t.Parallel()

	result, err := New().Compile(context.Background(), bank.Tables{
		Questions: []bank.Row{{
			bank.ColQuestionText: "Age?",
			bank.ColType:         "TEXT",
			bank.ColRequired:     "TRUE",
		}},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := form.Program{
		form.Item(form.ItemTypeText, "Age?", true, nil),
	}
	if diff := cmp.Diff(want, result.Program); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}
	if len(result.Program.PageBreaks()) != 0 {
		t.Fatalf("expected no page breaks without respondent fields")
	}
}

func TestCompileSectionBoundaries(t *testing.T) {
	t.Parallel()

	result, err := New().Compile(context.Background(), bank.Tables{
		Questions: []bank.Row{
			questionRow("a1", "A", "TEXT", 1),
			questionRow("a2", "A", "TEXT", 2),
			questionRow("b1", "B", "TEXT", 1),
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	breaks := result.Program.PageBreaks()
	if len(breaks) != 2 {
		t.Fatalf("page breaks = %d, want 2 (one per contiguous section)", len(breaks))
	}
	if breaks[0].Title != "A" || breaks[0].HelpText != "Section: A" {
		t.Fatalf("unexpected first break: %+v", breaks[0])
	}
	if breaks[1].Title != "B" {
		t.Fatalf("unexpected second break: %+v", breaks[1])
	}
}

func TestCompileBlankSectionNeverOpensBreak(t *testing.T) {
	t.Parallel()

	result, err := New().Compile(context.Background(), bank.Tables{
		Questions: []bank.Row{
			questionRow("one", "", "TEXT", 1),
			questionRow("two", "", "TEXT", 2),
		},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if breaks := result.Program.PageBreaks(); len(breaks) != 0 {
		t.Fatalf("expected no page breaks for sectionless questions, got %d", len(breaks))
	}
}

func TestCompileRespondentBlock(t *testing.T) {
	t.Parallel()

	result, err := New().Compile(context.Background(), bank.Tables{
		RespondentFields: []bank.Row{
			{bank.ColFieldName: "Name", bank.ColType: "TEXT", bank.ColRequired: "TRUE", bank.ColOrder: 1},
			{bank.ColFieldName: "Region", bank.ColType: "DROPDOWN", bank.ColOrder: 2, "Option1": "North", "Option2": "South"},
		},
		Questions: []bank.Row{questionRow("Q1", "", "TEXT", 1)},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := form.Program{
		form.PageBreak("Respondent Information", "Please provide your details before starting the survey."),
		form.Item(form.ItemTypeText, "Name", true, nil),
		form.Item(form.ItemTypeDropdown, "Region", false, []string{"North", "South"}),
		form.PageBreak("Survey Questions", "Answer each question in order."),
		form.Item(form.ItemTypeText, "Q1", false, nil),
	}
	if diff := cmp.Diff(want, result.Program); diff != "" {
		t.Fatalf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileEmptyBank(t *testing.T) {
	t.Parallel()

	_, err := New().Compile(context.Background(), bank.Tables{})
	if !errors.Is(err, ErrEmptyQuestionBank) {
		t.Fatalf("err = %v, want ErrEmptyQuestionBank", err)
	}

	// A bank that only produces skips is degraded, not fatal.
	result, err := New().Compile(context.Background(), bank.Tables{
		Questions: []bank.Row{questionRow("broken", "", "BOGUS", 1)},
	})
	if err != nil {
		t.Fatalf("Compile with skips: %v", err)
	}
	if result.Stats.SkippedCount != 1 {
		t.Fatalf("skippedCount = %d, want 1", result.Stats.SkippedCount)
	}
}

func TestCompileMetaDefaults(t *testing.T) {
	t.Parallel()

	result, err := New().Compile(context.Background(), bank.Tables{
		Meta: []bank.Row{
			{bank.ColKey: "FormTitle", bank.ColValue: ""},
			{bank.ColKey: "Version", bank.ColValue: "1.2"},
			{bank.ColKey: "Mystery", bank.ColValue: "ignored"},
		},
		Questions: []bank.Row{questionRow("Q1", "", "TEXT", 1)},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := form.Meta{
		Title:       form.DefaultFormTitle,
		Description: form.DefaultFormDescription,
		Version:     "1.2",
	}
	if diff := cmp.Diff(want, result.Meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileHonoursContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Compile(ctx, bank.Tables{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
