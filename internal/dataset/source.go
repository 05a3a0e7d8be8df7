package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fr4nk3nst1ner/salarydash/internal/client"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
)

// Stamp identifies one version of a source. Two equal stamps mean the
// cached content is still valid.
type Stamp struct {
	ModTime time.Time
	Size    int64
	ETag    string
}

// Equal reports whether both stamps describe the same version
func (s Stamp) Equal(o Stamp) bool {
	return s.ModTime.Equal(o.ModTime) && s.Size == o.Size && s.ETag == o.ETag
}

// Cacheable reports whether the stamp carries enough information to detect a
// change. Remote tables served without Last-Modified or ETag are reread every time.
func (s Stamp) Cacheable() bool {
	return !s.ModTime.IsZero() || s.ETag != ""
}

// Source is a readable input table
type Source interface {
	// Key identifies the source in the cache
	Key() string
	// Stamp reports the current version without reading the content
	Stamp(ctx context.Context) (Stamp, error)
	// Open returns the content and its size in bytes (-1 when unknown)
	Open(ctx context.Context) (io.ReadCloser, int64, error)
}

// NewSource returns an HTTPSource for http(s) URLs and a FileSource otherwise
func NewSource(location string, httpClient *http.Client) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if httpClient == nil {
			httpClient = defaultClient()
		}
		return &HTTPSource{URL: location, Client: httpClient}
	}
	return FileSource{Path: location}
}

// FileSource reads a table from the local filesystem
type FileSource struct {
	Path string
}

func (s FileSource) Key() string {
	if abs, err := filepath.Abs(s.Path); err == nil {
		return abs
	}
	return s.Path
}

func (s FileSource) Stamp(ctx context.Context) (Stamp, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return Stamp{}, fileError(s.Path, err)
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, nil
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, 0, fileError(s.Path, err)
	}
	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return f, size, nil
}

func fileError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, models.ErrMissingInputFile)
	}
	return fmt.Errorf("%s: %w", path, err)
}

// HTTPSource reads a table published over HTTP. Its stamp comes from a HEAD request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Key() string { return s.URL }

// defaultClient is shared by sources built without a client so their connections are pooled
var defaultClient = sync.OnceValue(func() *http.Client {
	return client.CreateHTTPClient("")
})

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return defaultClient()
}

func (s *HTTPSource) do(ctx context.Context, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header = client.Headers()

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, s.URL, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", s.URL, models.ErrMissingInputFile)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: received non-200 status code: %d", method, s.URL, resp.StatusCode)
	}
	return resp, nil
}

func (s *HTTPSource) Stamp(ctx context.Context) (Stamp, error) {
	resp, err := s.do(ctx, http.MethodHead)
	if err != nil {
		return Stamp{}, err
	}
	resp.Body.Close()

	stamp := Stamp{Size: resp.ContentLength, ETag: resp.Header.Get("ETag")}
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			stamp.ModTime = t
		}
	}
	return stamp, nil
}

func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, int64, error) {
	resp, err := s.do(ctx, http.MethodGet)
	if err != nil {
		return nil, 0, err
	}
	size := resp.ContentLength
	if resp.Header.Get("Content-Encoding") == "gzip" {
		size = -1
	}
	body, err := client.ResponseBody(resp)
	if err != nil {
		return nil, 0, err
	}
	return body, size, nil
}
