// Package html renders a compiled form program into a self-contained HTML
// preview page.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/hbmp/go-formbank/pkg/form"
	"github.com/hbmp/go-formbank/pkg/render"
	rendertemplate "github.com/hbmp/go-formbank/pkg/render/template"
	gotemplate "github.com/hbmp/go-formbank/pkg/render/template/gotemplate"
)

const templateName = "templates/form.tmpl"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme injects a resolved go-theme renderer configuration whose CSS
// variables are emitted as a :root style block.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer implements render.Renderer for static HTML previews.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
	policy    *bluemonday.Policy
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     cfg.theme,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the preview page. Titles and help text pass through a
// strict sanitizer so bank content can never inject markup.
func (r *Renderer) Render(ctx context.Context, result form.CompileResult, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	data := map[string]any{
		"meta":      r.metaContext(result.Meta),
		"pages":     r.pageContexts(result.Program, options.Values),
		"theme_css": cssVarsStyle(r.theme),
	}
	if options.ShowStats {
		data["stats"] = result.Stats
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

// Page groups the items that follow one page break.
type Page struct {
	Title string
	Help  string
	Items []PageItem
}

// PageItem is one rendered input widget.
type PageItem struct {
	Kind     string
	Title    string
	Required bool
	Options  []string
	Value    string
}

func (r *Renderer) metaContext(meta form.Meta) map[string]any {
	return map[string]any{
		"title":       r.policy.Sanitize(meta.Title),
		"description": r.policy.Sanitize(meta.Description),
		"version":     r.policy.Sanitize(meta.Version),
	}
}

func (r *Renderer) pageContexts(program form.Program, values map[string]string) []Page {
	// The first page is untitled when the program opens with items rather
	// than a page break.
	pages := []Page{{}}
	for _, ins := range program {
		switch ins.Op {
		case form.OpPageBreak:
			pages = append(pages, Page{
				Title: r.policy.Sanitize(ins.Title),
				Help:  r.policy.Sanitize(ins.HelpText),
			})
		case form.OpItem:
			last := len(pages) - 1
			item := PageItem{
				Kind:     string(ins.Kind),
				Title:    r.policy.Sanitize(ins.Title),
				Required: ins.Required,
				Value:    values[ins.Title],
			}
			for _, option := range ins.Options {
				item.Options = append(item.Options, r.policy.Sanitize(option))
			}
			pages[last].Items = append(pages[last].Items, item)
		}
	}

	// Drop the leading placeholder when every item landed on a named page.
	if len(pages[0].Items) == 0 && pages[0].Title == "" {
		pages = pages[1:]
	}
	return pages
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
