// Package loader fetches question-bank documents from files, fs.FS entries,
// or HTTP endpoints.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/hbmp/go-formbank/pkg/bank"
)

// Loader implements bank.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ bank.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options bank.LoaderOptions) bank.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src bank.Source) (bank.Document, error) {
	if src == nil {
		return bank.Document{}, errors.New("bank loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case bank.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case bank.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case bank.SourceKindURL:
		if !l.allowHTTP {
			return bank.Document{}, errors.New("bank loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("bank loader: unsupported source kind")
	}
	if err != nil {
		return bank.Document{}, err
	}

	return bank.NewDocument(src, data)
}
