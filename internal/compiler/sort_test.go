package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hbmp/go-formbank/pkg/form"
)

func TestSortRespondentFieldsStable(t *testing.T) {
	t.Parallel()

	fields := []form.RespondentField{
		{FieldName: "C", Order: 2},
		{FieldName: "A", Order: 1},
		{FieldName: "B", Order: 1},
		{FieldName: "D", Order: 0},
	}
	sortRespondentFields(fields)

	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, f.FieldName)
	}
	want := []string{"D", "A", "B", "C"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortQuestionsBlankSectionLast(t *testing.T) {
	t.Parallel()

	questions := []form.Question{
		{QuestionText: "no section", Section: "", Order: 1},
		{QuestionText: "b", Section: "B", Order: 5},
		{QuestionText: "a", Section: "A", Order: 2},
	}
	New().sortQuestions(questions)

	got := make([]string, 0, len(questions))
	for _, q := range questions {
		got = append(got, q.QuestionText)
	}
	want := []string{"a", "b", "no section"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortQuestionsWithinSectionByOrder(t *testing.T) {
	t.Parallel()

	questions := []form.Question{
		{QuestionText: "third", Section: "General", Order: 3},
		{QuestionText: "first", Section: "General", Order: 1},
		{QuestionText: "tie-a", Section: "General", Order: 2},
		{QuestionText: "tie-b", Section: "General", Order: 2},
	}
	New().sortQuestions(questions)

	got := make([]string, 0, len(questions))
	for _, q := range questions {
		got = append(got, q.QuestionText)
	}
	want := []string{"first", "tie-a", "tie-b", "third"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortQuestionsIdempotent(t *testing.T) {
	t.Parallel()

	questions := []form.Question{
		{QuestionText: "a1", Section: "A", Order: 1},
		{QuestionText: "a2", Section: "A", Order: 2},
		{QuestionText: "b1", Section: "B", Order: 1},
		{QuestionText: "z", Section: "", Order: 0},
	}
	c := New()
	c.sortQuestions(questions)
	sortedOnce := append([]form.Question(nil), questions...)
	c.sortQuestions(questions)

	if diff := cmp.Diff(sortedOnce, questions); diff != "" {
		t.Fatalf("sorting already-sorted list changed it (-want +got):\n%s", diff)
	}
}

func TestSortQuestionsBlankSectionsKeepOrderKey(t *testing.T) {
	t.Parallel()

	questions := []form.Question{
		{QuestionText: "late", Section: "", Order: 9},
		{QuestionText: "early", Section: "", Order: 1},
	}
	New().sortQuestions(questions)

	if questions[0].QuestionText != "early" || questions[1].QuestionText != "late" {
		t.Fatalf("blank-section questions not ordered by order key: %+v", questions)
	}
}
