package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hbmp/go-formbank/pkg/form"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }

func (s stubRenderer) Render(context.Context, form.CompileResult, RenderOptions) ([]byte, error) {
	return nil, nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	renderer, err := registry.Get("html")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if renderer.Name() != "html" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}
	if !registry.Has("html") {
		t.Fatal("Has should report registered renderer")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "html"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	err := registry.Register(stubRenderer{name: "html"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for empty renderer name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"tui", "html", "json"} {
		registry.MustRegister(stubRenderer{name: name})
	}

	if diff := cmp.Diff([]string{"html", "json", "tui"}, registry.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	registry := NewRegistry()
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}
