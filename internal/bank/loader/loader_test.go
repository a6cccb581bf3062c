package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hbmp/go-formbank/pkg/bank"
)

const sampleBank = "questions:\n  - QuestionText: How are you?\n    Type: TEXT\n"

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(sampleBank), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(bank.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), bank.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(doc.Raw()) != sampleBank {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"banks/bank.yaml": &fstest.MapFile{Data: []byte(sampleBank)},
	}

	loader := New(bank.NewLoaderOptions(bank.WithFileSystem(fsys)))
	doc, err := loader.Load(context.Background(), bank.SourceFromFS("banks/bank.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(doc.Raw()) != sampleBank {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	loader := New(bank.NewLoaderOptions())
	_, err := loader.Load(context.Background(), bank.SourceFromURL("http://example.com/bank.yaml"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http-disabled error, got %v", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBank))
	}))
	defer srv.Close()

	loader := New(bank.NewLoaderOptions(bank.WithHTTPFallback(0)))
	doc, err := loader.Load(context.Background(), bank.SourceFromURL(srv.URL))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(doc.Raw()) != sampleBank {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoadHTTPNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	loader := New(bank.NewLoaderOptions(bank.WithHTTPFallback(0)))
	if _, err := loader.Load(context.Background(), bank.SourceFromURL(srv.URL)); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestLoadNilSource(t *testing.T) {
	loader := New(bank.NewLoaderOptions())
	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
