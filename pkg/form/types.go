package form

// ItemType enumerates the input widgets a compiled form can contain.
// Respondent-detail fields may use the text, paragraph, and dropdown types;
// survey questions may additionally use mcq and checkbox.
type ItemType string

const (
	ItemTypeText      ItemType = "TEXT"
	ItemTypeParagraph ItemType = "PARAGRAPH"
	ItemTypeDropdown  ItemType = "DROPDOWN"
	ItemTypeMCQ       ItemType = "MCQ"
	ItemTypeCheckbox  ItemType = "CHECKBOX"
)

// ValidRespondentType reports whether t is allowed on a respondent-detail
// field definition.
func (t ItemType) ValidRespondentType() bool {
	switch t {
	case ItemTypeText, ItemTypeParagraph, ItemTypeDropdown:
		return true
	}
	return false
}

// ValidQuestionType reports whether t is allowed on a survey question.
func (t ItemType) ValidQuestionType() bool {
	switch t {
	case ItemTypeText, ItemTypeParagraph, ItemTypeDropdown, ItemTypeMCQ, ItemTypeCheckbox:
		return true
	}
	return false
}

// ChoiceBased reports whether items of this type require a non-empty option
// list.
func (t ItemType) ChoiceBased() bool {
	switch t {
	case ItemTypeDropdown, ItemTypeMCQ, ItemTypeCheckbox:
		return true
	}
	return false
}

// RespondentField is a normalized respondent-detail field definition.
type RespondentField struct {
	FieldName string   `json:"fieldName"`
	Type      ItemType `json:"type"`
	Required  bool     `json:"required"`
	Order     float64  `json:"order"`
	Options   []string `json:"options"`
}

// Question is a normalized survey question definition.
type Question struct {
	QuestionID          string   `json:"questionId,omitempty"`
	Section             string   `json:"section,omitempty"`
	Order               float64  `json:"order"`
	Type                ItemType `json:"type"`
	QuestionText        string   `json:"questionText"`
	Required            bool     `json:"required"`
	Options             []string `json:"options"`
	GoToSectionOnOption string   `json:"goToSectionOnOption,omitempty"`
}

// ValidationStats summarises one pass over the question bank. Errors holds
// one human-readable message per non-blank skipped question row, in row-scan
// order.
type ValidationStats struct {
	SectionsCount  int      `json:"sectionsCount"`
	QuestionsCount int      `json:"questionsCount"`
	SkippedCount   int      `json:"skippedCount"`
	Errors         []string `json:"errors"`
}
