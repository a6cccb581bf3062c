package form

import "time"

// Recognized metadata keys. Keys outside this set are ignored when resolving
// Meta from metadata rows; the output-only keys are produced as part of a
// BuildResult and never read back by the compiler.
const (
	MetaKeyFormTitle       = "FormTitle"
	MetaKeyFormDescription = "FormDescription"
	MetaKeyVersion         = "Version"

	MetaKeyFormID                = "FormId"
	MetaKeyFormEditURL           = "FormEditUrl"
	MetaKeyFormPublishedURL      = "FormPublishedUrl"
	MetaKeyCreatedAt             = "CreatedAt"
	MetaKeyResponseSpreadsheetID = "ResponseSpreadsheetId"
	MetaKeyResponseSheetName     = "ResponseSheetName"
)

// Defaults applied when the metadata table omits or blanks a value.
const (
	DefaultFormTitle       = "HBMP Survey Form"
	DefaultFormDescription = "Survey form generated from Question Bank"
)

// MetaEntry is one key/value row from the metadata table.
type MetaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Meta is the resolved form metadata. Title and Description are always
// non-empty.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
}

// MetaFromEntries resolves entries against the recognized key set, applying
// the fixed defaults for absent or blank title and description.
func MetaFromEntries(entries []MetaEntry) Meta {
	meta := Meta{
		Title:       DefaultFormTitle,
		Description: DefaultFormDescription,
	}
	for _, entry := range entries {
		if entry.Value == "" {
			continue
		}
		switch entry.Key {
		case MetaKeyFormTitle:
			meta.Title = entry.Value
		case MetaKeyFormDescription:
			meta.Description = entry.Value
		case MetaKeyVersion:
			meta.Version = entry.Value
		}
	}
	return meta
}

// BuildResult carries the identifiers produced when an external collaborator
// materialises a compiled program into an actual form artifact.
type BuildResult struct {
	FormID                string    `json:"formId"`
	EditURL               string    `json:"formEditUrl,omitempty"`
	PublishedURL          string    `json:"formPublishedUrl,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	ResponseSpreadsheetID string    `json:"responseSpreadsheetId,omitempty"`
	ResponseSheetName     string    `json:"responseSheetName,omitempty"`
}
