package form

// InstructionOp discriminates the two kinds of form-building instructions.
type InstructionOp string

const (
	OpPageBreak InstructionOp = "pageBreak"
	OpItem      InstructionOp = "item"
)

// Instruction is one step of a compiled form definition. A pageBreak carries
// Title and HelpText; an item carries Kind, Title, Required, and Options.
type Instruction struct {
	Op       InstructionOp `json:"op"`
	Kind     ItemType      `json:"kind,omitempty"`
	Title    string        `json:"title"`
	HelpText string        `json:"helpText,omitempty"`
	Required bool          `json:"required,omitempty"`
	Options  []string      `json:"options,omitempty"`
}

// PageBreak constructs a page-break instruction.
func PageBreak(title, helpText string) Instruction {
	return Instruction{Op: OpPageBreak, Title: title, HelpText: helpText}
}

// Item constructs an input-item instruction. Options should be nil for
// non-choice kinds.
func Item(kind ItemType, title string, required bool, options []string) Instruction {
	return Instruction{Op: OpItem, Kind: kind, Title: title, Required: required, Options: options}
}

// Program is the ordered instruction stream a form-creation collaborator must
// honor verbatim; emission order is the form's item order.
type Program []Instruction

// Items returns only the item instructions, in program order.
func (p Program) Items() []Instruction {
	var items []Instruction
	for _, ins := range p {
		if ins.Op == OpItem {
			items = append(items, ins)
		}
	}
	return items
}

// PageBreaks returns only the page-break instructions, in program order.
func (p Program) PageBreaks() []Instruction {
	var breaks []Instruction
	for _, ins := range p {
		if ins.Op == OpPageBreak {
			breaks = append(breaks, ins)
		}
	}
	return breaks
}

// CompileResult bundles the instruction stream with the validation report
// produced by the same pass.
type CompileResult struct {
	Meta    Meta            `json:"meta"`
	Program Program         `json:"program"`
	Stats   ValidationStats `json:"stats"`
}
