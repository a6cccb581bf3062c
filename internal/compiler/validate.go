package compiler

import (
	"fmt"

	"github.com/hbmp/go-formbank/pkg/form"
)

// validateRespondentField reports whether the field passes the structural
// rules. Failures are routed to the warn sink only; respondent-field
// validation never feeds ValidationStats.
func (c *Compiler) validateRespondentField(field form.RespondentField) bool {
	if !field.Type.ValidRespondentType() {
		c.warnf("Unknown respondent detail type %s for field: %s", field.Type, field.FieldName)
		return false
	}
	if field.Type.ChoiceBased() && len(field.Options) == 0 {
		c.warnf("Respondent field %q has type %s but no options", field.FieldName, field.Type)
		return false
	}
	return true
}

// validateQuestion checks the question against the structural rules and
// returns the human-readable rejection reason when it fails.
func validateQuestion(question form.Question) (string, bool) {
	if !question.Type.ValidQuestionType() {
		return fmt.Sprintf("Question %q has invalid type: %s", question.QuestionText, question.Type), false
	}
	if question.Type.ChoiceBased() && len(question.Options) == 0 {
		return fmt.Sprintf("Question %q has type %s but no options", question.QuestionText, question.Type), false
	}
	return "", true
}
