// Package imageload decodes gallery images into small thumbnails for the
// terminal, caching them and bounding concurrent decodes.
package imageload

import (
	"context"
	"fmt"
	"image"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/webp" // WebP format support
	"golang.org/x/sync/semaphore"

	"picgrid/internal/datastore"
	"picgrid/internal/domain"
	"picgrid/internal/logging"
)

const (
	// DefaultCacheSize is the number of decoded thumbnails kept
	DefaultCacheSize = 256
	// DefaultConcurrency bounds simultaneous decodes
	DefaultConcurrency = 4
)

type cacheKey struct {
	source string
	width  int
	height int
}

// Loader resolves, decodes and fits images
type Loader struct {
	baseDir string
	cache   *lru.Cache[cacheKey, image.Image]
	sem     *semaphore.Weighted
}

// Options configures a Loader
type Options struct {
	BaseDir     string
	CacheSize   int
	Concurrency int64
}

// NewLoader creates a loader resolving relative paths against opts.BaseDir
func NewLoader(opts Options) (*Loader, error) {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	cache, err := lru.New[cacheKey, image.Image](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail cache: %w", err)
	}
	return &Loader{
		baseDir: opts.BaseDir,
		cache:   cache,
		sem:     semaphore.NewWeighted(opts.Concurrency),
	}, nil
}

// Source returns the resolved location used for img: the thumbnail when
// present, otherwise the full image path
func (l *Loader) Source(img domain.Image) string {
	return datastore.Resolve(l.baseDir, img.ThumbnailOr(img.Path))
}

// FullSource returns the resolved full-size image location
func (l *Loader) FullSource(img domain.Image) string {
	return datastore.Resolve(l.baseDir, img.Path)
}

// Load returns img fitted into a width x height pixel box
func (l *Loader) Load(ctx context.Context, img domain.Image, width, height int) (image.Image, error) {
	return l.load(ctx, l.Source(img), width, height)
}

// LoadFull is Load for the full-size image, used by the viewer
func (l *Loader) LoadFull(ctx context.Context, img domain.Image, width, height int) (image.Image, error) {
	return l.load(ctx, l.FullSource(img), width, height)
}

func (l *Loader) load(ctx context.Context, source string, width, height int) (image.Image, error) {
	if source == "" {
		return nil, fmt.Errorf("image has no path")
	}
	key := cacheKey{source: source, width: width, height: height}
	if cached, ok := l.cache.Get(key); ok {
		return cached, nil
	}

	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	// Another caller may have filled the cache while we waited
	if cached, ok := l.cache.Get(key); ok {
		return cached, nil
	}

	rc, err := datastore.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			logging.Warn("failed to close image %s: %v", source, err)
		}
	}()

	src, err := imaging.Decode(rc, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	fitted := imaging.Fit(src, width, height, imaging.Lanczos)
	l.cache.Add(key, fitted)
	logging.Debug("Decoded %s to %dx%d", source, fitted.Bounds().Dx(), fitted.Bounds().Dy())
	return fitted, nil
}

// Preload warms the cache for img. Failures are ignored.
func (l *Loader) Preload(ctx context.Context, img domain.Image, width, height int) {
	if _, err := l.LoadFull(ctx, img, width, height); err != nil {
		logging.Debug("Preload of %s failed: %v", img.ID, err)
	}
}

// Cached reports whether the full image at this size is already decoded
func (l *Loader) Cached(img domain.Image, width, height int) bool {
	return l.cache.Contains(cacheKey{source: l.FullSource(img), width: width, height: height})
}
