package bank

import "fmt"

// Column names the compiler recognises across the three tables. Parsers keep
// whatever columns the source carries; unknown columns are ignored downstream.
const (
	ColKey   = "Key"
	ColValue = "Value"

	ColFieldName = "FieldName"
	ColType      = "Type"
	ColRequired  = "Required"
	ColOrder     = "Order"

	ColQuestionID   = "QuestionId"
	ColSection      = "Section"
	ColQuestionText = "QuestionText"
	ColGoToSection  = "GoToSectionOnOption"
)

// OptionColumns lists the option columns in their fixed scan order.
var OptionColumns = []string{"Option1", "Option2", "Option3", "Option4", "Option5"}

// Row is one table row as a mapping from column name to raw cell value. Cells
// may be absent, numeric, boolean-like strings, or plain strings; coercion is
// the normalizer's responsibility.
type Row map[string]any

// String returns the cell under col rendered as a string, or "" when the cell
// is absent or nil. Non-string scalars use their default formatting.
func (r Row) String(col string) string {
	value, ok := r[col]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Tables groups the three logical question-bank tables in source order.
type Tables struct {
	Meta             []Row `json:"meta,omitempty" yaml:"meta"`
	RespondentFields []Row `json:"respondent_fields,omitempty" yaml:"respondent_fields"`
	Questions        []Row `json:"questions,omitempty" yaml:"questions"`
}

// Empty reports whether all three tables carry zero rows.
func (t Tables) Empty() bool {
	return len(t.Meta) == 0 && len(t.RespondentFields) == 0 && len(t.Questions) == 0
}
