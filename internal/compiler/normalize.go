package compiler

import (
	"math"
	"strconv"
	"strings"

	"github.com/hbmp/go-formbank/pkg/bank"
	"github.com/hbmp/go-formbank/pkg/form"
)

// normalizeMetaEntry coerces a metadata row into a trimmed key/value pair.
func normalizeMetaEntry(row bank.Row) form.MetaEntry {
	return form.MetaEntry{
		Key:   strings.TrimSpace(row.String(bank.ColKey)),
		Value: strings.TrimSpace(row.String(bank.ColValue)),
	}
}

// normalizeRespondentField coerces a respondent-detail row into its typed
// record. The second return flags a blank row (no field name), which is
// skipped silently before any validation rule runs.
func normalizeRespondentField(row bank.Row) (form.RespondentField, bool) {
	name := strings.TrimSpace(row.String(bank.ColFieldName))
	if name == "" {
		return form.RespondentField{}, true
	}

	fieldType := normalizeType(row, form.ItemTypeText)
	return form.RespondentField{
		FieldName: name,
		Type:      fieldType,
		Required:  parseRequired(row),
		Order:     parseOrder(row),
		Options:   optionsFor(fieldType, row),
	}, false
}

// normalizeQuestion coerces a question row into its typed record. The second
// return flags a blank row (no question text).
func normalizeQuestion(row bank.Row) (form.Question, bool) {
	text := strings.TrimSpace(row.String(bank.ColQuestionText))
	if text == "" {
		return form.Question{}, true
	}

	// An absent type stays empty here so the validator rejects it as outside
	// the enum rather than silently defaulting.
	questionType := normalizeType(row, "")
	return form.Question{
		QuestionID:          strings.TrimSpace(row.String(bank.ColQuestionID)),
		Section:             strings.TrimSpace(row.String(bank.ColSection)),
		Order:               parseOrder(row),
		Type:                questionType,
		QuestionText:        text,
		Required:            parseRequired(row),
		Options:             optionsFor(questionType, row),
		GoToSectionOnOption: strings.TrimSpace(row.String(bank.ColGoToSection)),
	}, false
}

func normalizeType(row bank.Row, fallback form.ItemType) form.ItemType {
	raw := strings.ToUpper(strings.TrimSpace(row.String(bank.ColType)))
	if raw == "" {
		return fallback
	}
	return form.ItemType(raw)
}

// parseRequired treats only a case-insensitive "TRUE" as true; any other
// value, including an absent cell, is false.
func parseRequired(row bank.Row) bool {
	return strings.EqualFold(strings.TrimSpace(row.String(bank.ColRequired)), "TRUE")
}

// parseOrder coerces the Order cell to a float; non-numeric or absent values
// default to 0. NaN counts as non-numeric — it would poison every sort
// comparison.
func parseOrder(row bank.Row) float64 {
	value, ok := row[bank.ColOrder]
	if !ok || value == nil {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return orderOrZero(v)
	case float32:
		return orderOrZero(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(row.String(bank.ColOrder)), 64)
	if err != nil {
		return 0
	}
	return orderOrZero(parsed)
}

func orderOrZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// collectOptions gathers Option1..Option5 in column order, trimming cells and
// omitting blanks so gaps collapse instead of padding the sequence.
func collectOptions(row bank.Row) []string {
	var options []string
	for _, col := range bank.OptionColumns {
		opt := strings.TrimSpace(row.String(col))
		if opt == "" {
			continue
		}
		options = append(options, opt)
	}
	return options
}

// optionsFor returns the collected options for choice-based types and nil for
// everything else, regardless of what the row carried.
func optionsFor(t form.ItemType, row bank.Row) []string {
	if !t.ChoiceBased() {
		return nil
	}
	return collectOptions(row)
}
