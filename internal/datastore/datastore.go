// Package datastore loads the gallery metadata document and holds it
// read-only for the rest of the program.
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"picgrid/internal/domain"
)

var (
	// ErrMissingImages means the document has no images array
	ErrMissingImages = errors.New("metadata document has no images array")
	// ErrMissingCategories means the document has no categories array
	ErrMissingCategories = errors.New("metadata document has no categories array")
)

// Store is the loaded gallery snapshot. It is never mutated after Load.
type Store struct {
	images     []domain.Image
	categories []string
	baseDir    string
	source     string
}

// Load reads and validates the metadata document at source
func Load(ctx context.Context, source string) (*Store, error) {
	rc, err := Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", source, err)
	}
	return NewStore(data, baseOf(source), source), nil
}

// Decode parses a metadata document. Missing or non-array images and
// categories are rejected; category consistency is not checked.
func Decode(r io.Reader) (*domain.GalleryData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if !isArray(doc["images"]) {
		return nil, ErrMissingImages
	}
	if !isArray(doc["categories"]) {
		return nil, ErrMissingCategories
	}

	var data domain.GalleryData
	if err := json.Unmarshal(doc["images"], &data.Images); err != nil {
		return nil, fmt.Errorf("failed to parse images: %w", err)
	}
	if err := json.Unmarshal(doc["categories"], &data.Categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	for i := range data.Images {
		if data.Images[i].Tags == nil {
			data.Images[i].Tags = []string{}
		}
	}
	return &data, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// NewStore wraps already decoded data
func NewStore(data *domain.GalleryData, baseDir, source string) *Store {
	s := &Store{baseDir: baseDir, source: source}
	if data != nil {
		s.images = append([]domain.Image{}, data.Images...)
		s.categories = append([]string{}, data.Categories...)
	}
	return s
}

// Images returns a copy of the master image list
func (s *Store) Images() []domain.Image {
	out := make([]domain.Image, len(s.images))
	copy(out, s.images)
	return out
}

// Categories returns a copy of the category list
func (s *Store) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Data returns a GalleryData view of the snapshot
func (s *Store) Data() *domain.GalleryData {
	return &domain.GalleryData{Images: s.Images(), Categories: s.Categories()}
}

// BaseDir is where relative image paths are resolved from
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Source is the path or URL the document was loaded from
func (s *Store) Source() string {
	return s.source
}

// ResolvePath resolves an image path against BaseDir
func (s *Store) ResolvePath(p string) string {
	return Resolve(s.baseDir, p)
}

// CategoryCount is one entry of CategoryCounts
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryCounts counts images per declared category, in declaration order.
// Categories used by images but not declared are appended sorted by name.
func (s *Store) CategoryCounts() []CategoryCount {
	counts := make(map[string]int)
	for _, img := range s.images {
		counts[img.Category]++
	}

	out := make([]CategoryCount, 0, len(s.categories))
	seen := make(map[string]bool)
	for _, c := range s.categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, CategoryCount{Name: c, Count: counts[c]})
	}

	var extra []string
	for c := range counts {
		if !seen[c] && c != "" {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	for _, c := range extra {
		out = append(out, CategoryCount{Name: c, Count: counts[c]})
	}
	return out
}
