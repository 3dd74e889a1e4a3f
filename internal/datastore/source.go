package datastore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds a single remote fetch
const DefaultHTTPTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: DefaultHTTPTimeout}

// IsRemote reports whether source is an http(s) URL
func IsRemote(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Open returns a reader for a local path or an http(s) URL
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", source, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status fetching %s: %s", source, resp.Status)
	}
	return resp.Body, nil
}

// Resolve joins a relative image path onto base. Absolute paths and URLs are
// returned as is.
func Resolve(base, p string) string {
	if p == "" || IsRemote(p) || filepath.IsAbs(p) {
		return p
	}
	if IsRemote(base) {
		return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(filepath.ToSlash(p), "/")
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

// baseOf returns the directory that relative image paths are resolved against
func baseOf(source string) string {
	if IsRemote(source) {
		if i := strings.LastIndex(source, "/"); i > strings.Index(source, "://")+2 {
			return source[:i]
		}
		return source
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return filepath.Dir(source)
	}
	return filepath.Dir(abs)
}
