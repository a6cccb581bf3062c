package render

import (
	"context"

	"github.com/hbmp/go-formbank/pkg/form"
)

// Renderer converts a compiled form program into a byte representation (HTML
// preview, interactive terminal session output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, result form.CompileResult, options RenderOptions) ([]byte, error)
}

// RenderOptions carries per-request rendering hints.
type RenderOptions struct {
	// ShowStats asks the renderer to include the validation report alongside
	// the form output when its format supports it.
	ShowStats bool

	// Values pre-populates item answers keyed by item title. The TUI renderer
	// uses them as prompt defaults; the HTML renderer as initial values.
	Values map[string]string
}
