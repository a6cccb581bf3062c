// Package tui runs a compiled form program as an interactive terminal
// session, collecting answers through a survey-backed prompt driver.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/render"
)

// skipChoice is prepended to optional single-select prompts so respondents
// can leave them unanswered.
const skipChoice = "(skip)"

// Option customises the renderer configuration.
type Option func(*Renderer)

// WithDriver injects a custom prompt driver, usually a fake in tests.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer implements render.Renderer for terminal-driven sessions. The
// rendered bytes are the collected answers serialized as JSON.
type Renderer struct {
	driver PromptDriver
}

// New constructs a TUI renderer with the survey driver as default.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render walks the program in order: page breaks become banners, items become
// prompts. Answers are keyed by item title.
func (r *Renderer) Render(ctx context.Context, result form.CompileResult, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if result.Meta.Title != "" {
		if err := r.driver.Info(ctx, "== "+result.Meta.Title); err != nil {
			return nil, err
		}
	}

	answers := make(map[string]any)
	for _, ins := range result.Program {
		switch ins.Op {
		case form.OpPageBreak:
			banner := "-- " + ins.Title
			if ins.HelpText != "" {
				banner += " · " + ins.HelpText
			}
			if err := r.driver.Info(ctx, banner); err != nil {
				return nil, err
			}
		case form.OpItem:
			value, answered, err := r.promptItem(ctx, ins, options.Values[ins.Title])
			if err != nil {
				return nil, err
			}
			if answered {
				answers[ins.Title] = value
			}
		}
	}

	encoded, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode answers: %w", err)
	}
	return encoded, nil
}

func (r *Renderer) promptItem(ctx context.Context, ins form.Instruction, preset string) (any, bool, error) {
	switch ins.Kind {
	case form.ItemTypeText:
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   ins.Title,
			Default:   preset,
			Validator: requiredValidator(ins),
		})
		if err != nil {
			return nil, false, err
		}
		return value, value != "", nil

	case form.ItemTypeParagraph:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{Message: ins.Title, Default: preset})
		if err != nil {
			return nil, false, err
		}
		return value, value != "", nil

	case form.ItemTypeDropdown, form.ItemTypeMCQ:
		choices := ins.Options
		if !ins.Required {
			choices = append([]string{skipChoice}, ins.Options...)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      ins.Title,
			Options:      choices,
			DefaultIndex: indexOf(choices, preset),
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || choices[idx] == skipChoice {
			return nil, false, nil
		}
		return choices[idx], true, nil

	case form.ItemTypeCheckbox:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{Message: ins.Title, Options: ins.Options})
		if err != nil {
			return nil, false, err
		}
		if len(indices) == 0 {
			return nil, false, nil
		}
		selected := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(ins.Options) {
				selected = append(selected, ins.Options[idx])
			}
		}
		return selected, true, nil

	default:
		return nil, false, fmt.Errorf("tui: unsupported item kind %q", ins.Kind)
	}
}

func requiredValidator(ins form.Instruction) func(string) error {
	if !ins.Required {
		return nil
	}
	title := ins.Title
	return func(value string) error {
		if value == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}
