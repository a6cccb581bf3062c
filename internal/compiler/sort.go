package compiler

import (
	"sort"

	"github.com/hbmp/go-formbank/pkg/form"
)

// sortRespondentFields orders fields by ascending numeric order key. The sort
// is stable: fields sharing an order value keep their original row order.
func sortRespondentFields(fields []form.RespondentField) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
}

// sortQuestions orders questions by (section, order). Sectionless questions
// always sort after any named section regardless of their order key; equal
// sections compare through the collator; within a section the numeric order
// key decides, stable on exact ties.
func (c *Compiler) sortQuestions(questions []form.Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		switch {
		case a.Section == b.Section:
			return a.Order < b.Order
		case a.Section == "":
			return false
		case b.Section == "":
			return true
		}
		if cmp := c.collator.CompareString(a.Section, b.Section); cmp != 0 {
			return cmp < 0
		}
		return a.Order < b.Order
	})
}
