package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/mmcdole/flicks/internal/domain"
	"github.com/spf13/afero"
)

// DefaultLocation is the relative path the catalog is read from when unconfigured
const DefaultLocation = "./movies.json"

// maxPayloadBytes caps how much of a catalog response is read
const maxPayloadBytes = 32 << 20

// NewSource returns an HTTP source for http(s) locations and a file source otherwise.
// fs may be nil, in which case the OS filesystem is used.
func NewSource(location string, fs afero.Fs, client *http.Client) domain.CatalogSource {
	if location == "" {
		location = DefaultLocation
	}
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return NewHTTPSource(location, client)
	}
	return NewFileSource(location, fs)
}

// FileSource reads the catalog from a filesystem path
type FileSource struct {
	fs     afero.Fs
	path   string
	origin string
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string, fs afero.Fs) *FileSource {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path = strings.TrimPrefix(path, "file://")
	return &FileSource{fs: fs, path: path, origin: fileOrigin(path)}
}

// fileOrigin resolves path against the working directory so every spelling
// of the same file shares one origin
func fileOrigin(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Origin returns the absolute, cleaned catalog path
func (s *FileSource) Origin() string { return s.origin }

func (s *FileSource) Fetch(ctx context.Context) ([]domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	f, err := s.fs.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrCatalogUnavailable, s.path, err)
	}

	return Decode(data)
}

// HTTPSource performs a single GET for the catalog. There is no retry.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates an HTTP catalog source. A nil client uses http.DefaultClient;
// deadlines come from the context passed to Fetch.
func NewHTTPSource(rawURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: rawURL}
}

func (s *HTTPSource) Origin() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Movie, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", domain.ErrCatalogUnavailable, resp.StatusCode, s.url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrCatalogUnavailable, err)
	}

	return Decode(data)
}
