// Package openapi derives respondent-detail field rows from an OpenAPI
// operation's request schema, letting an existing API double as the source of
// a bank's respondent table.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/hbmp/go-formbank/pkg/bank"
)

// Importer converts OpenAPI request-body schemas into respondent-field rows.
type Importer struct{}

// New constructs an Importer.
func New() *Importer {
	return &Importer{}
}

// RespondentFieldRows loads the document, locates the operation, and maps its
// request-body properties onto respondent-field rows: strings become TEXT
// (PARAGRAPH for textarea-style formats), enums and booleans become DROPDOWN,
// numbers fall back to TEXT. Property order is alphabetical so the derived
// order keys stay deterministic.
func (i *Importer) RespondentFieldRows(ctx context.Context, doc bank.Document, operationID string) ([]bank.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if operationID == "" {
		return nil, errors.New("openapi importer: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi importer: operation %q not found", operationID)
	}

	schema := requestSchema(operation.RequestBody)
	if schema == nil || len(schema.Properties) == 0 {
		return nil, fmt.Errorf("openapi importer: operation %q has no request body properties", operationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]bank.Row, 0, len(names))
	for position, name := range names {
		property := schema.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}

		row := bank.Row{
			bank.ColFieldName: name,
			bank.ColType:      fieldTypeFor(property.Value),
			bank.ColOrder:     float64(position + 1),
		}
		if required[name] {
			row[bank.ColRequired] = "TRUE"
		}
		for idx, option := range optionsFor(property.Value) {
			if idx >= len(bank.OptionColumns) {
				break
			}
			row[bank.OptionColumns[idx]] = option
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("openapi importer: operation %q produced no usable fields", operationID)
	}
	return rows, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) *openapi3.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldTypeFor(schema *openapi3.Schema) string {
	if len(schema.Enum) > 0 {
		return "DROPDOWN"
	}
	switch {
	case schema.Type.Is(openapi3.TypeBoolean):
		return "DROPDOWN"
	case schema.Type.Is(openapi3.TypeString):
		switch strings.ToLower(schema.Format) {
		case "textarea", "paragraph", "multiline":
			return "PARAGRAPH"
		}
		return "TEXT"
	default:
		return "TEXT"
	}
}

func optionsFor(schema *openapi3.Schema) []string {
	if len(schema.Enum) > 0 {
		options := make([]string, 0, len(schema.Enum))
		for _, value := range schema.Enum {
			options = append(options, fmt.Sprint(value))
		}
		return options
	}
	if schema.Type.Is(openapi3.TypeBoolean) {
		return []string{"Yes", "No"}
	}
	return nil
}
