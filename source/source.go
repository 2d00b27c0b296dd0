package source

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// Accessor returns the post-change content of a file by its diff path
type Accessor interface {
	Content(ctx context.Context, path string) ([]byte, error)
}

// Func adapts a function to Accessor
type Func func(ctx context.Context, path string) ([]byte, error)

// Content calls f
func (f Func) Content(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// Memory is an in-memory snapshot keyed by diff path
type Memory map[string][]byte

// Content returns the snapshot content of path
func (m Memory) Content(_ context.Context, path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return content, nil
}

// FS reads files relative to a base URL through afs, so local paths and storage URLs work alike
type FS struct {
	baseURL string
	fs      afs.Service
}

// Content downloads path relative to the base URL
func (f *FS) Content(ctx context.Context, path string) ([]byte, error) {
	URL := url.Join(f.baseURL, path)
	content, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	return content, nil
}

// BaseURL returns the location diff paths are resolved against
func (f *FS) BaseURL() string {
	return f.baseURL
}

// NewFS creates an afs backed accessor rooted at baseURL
func NewFS(baseURL string) *FS {
	return &FS{baseURL: baseURL, fs: afs.New()}
}
