package compiler

import "github.com/hbmp/go-formbank/pkg/form"

// Fixed page-break copy for the respondent block.
const (
	respondentPageTitle = "Respondent Information"
	respondentPageHelp  = "Please provide your details before starting the survey."
	questionsPageTitle  = "Survey Questions"
	questionsPageHelp   = "Answer each question in order."
)

// emit walks the sorted records and produces the instruction stream. Emission
// order is the form's item order; callers must not reorder it.
func emit(fields []form.RespondentField, questions []form.Question) form.Program {
	var program form.Program

	if len(fields) > 0 {
		program = append(program, form.PageBreak(respondentPageTitle, respondentPageHelp))
		for _, field := range fields {
			program = append(program, form.Item(field.Type, field.FieldName, field.Required, field.Options))
		}
		program = append(program, form.PageBreak(questionsPageTitle, questionsPageHelp))
	}

	// Section boundaries are change-detected: a contiguous run of the same
	// section gets exactly one page break, and blank sections never open one.
	currentSection := ""
	for _, question := range questions {
		if question.Section != "" && question.Section != currentSection {
			program = append(program, form.PageBreak(question.Section, "Section: "+question.Section))
			currentSection = question.Section
		}
		program = append(program, form.Item(question.Type, question.QuestionText, question.Required, question.Options))
	}

	return program
}
