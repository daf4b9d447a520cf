package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/curranmax/ImageFeatures/internal/features"
)

// Options configures how an ImageCache prepares images for analysis.
type Options struct {
	// MaxSide, when positive, bounds the longer side of every analyzed image.
	// Larger images are downscaled with Lanczos resampling, preserving the
	// aspect ratio. Zero analyzes images at full resolution.
	MaxSide int
}

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and pixel conversion.
//
// The cache stores *features.Image values keyed by their file path. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// copy without disk I/O. Images are decoded with EXIF orientation applied, so
// features see the picture the way a viewer displays it.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). Each entry holds 3 bytes per analyzed pixel; setting
// Options.MaxSide bounds that cost for large photographs.
//
// # Example Usage
//
//	cache := imaging.NewImageCache(imaging.Options{MaxSide: 1024})
//	img, err := cache.Load("/path/to/photo.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	vec, err := features.ExtractAll(img)
type ImageCache struct {
	opts Options

	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	img    *features.Image
	config image.Config
	format string
	width  int // decoded width before any downscale
	height int
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache(opts Options) *ImageCache {
	return &ImageCache{
		opts:    opts,
		entries: make(map[string]*cacheEntry),
	}
}

// Load retrieves an image from the cache or decodes it from disk if not
// cached.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// Returns:
//   - *features.Image: The decoded 8-bit RGB image, downscaled if
//     Options.MaxSide requires it.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
func (c *ImageCache) Load(path string) (*features.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (*cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.entries[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	e, err := c.decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = e
	c.mu.Unlock()

	return e, nil
}

func (c *ImageCache) decode(path string) (*cacheEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	config, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind image: %w", err)
	}

	src, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	e := &cacheEntry{
		config: config,
		format: format,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}

	if side := c.opts.MaxSide; side > 0 && (e.width > side || e.height > side) {
		src = resize.Thumbnail(uint(side), uint(side), src, resize.Lanczos3)
	}

	e.img, err = features.NewImage(src)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	return e, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
// After eviction, the next Load() call for this path will read from disk.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the decoded image width in pixels, after EXIF orientation.
	Width int `json:"width"`

	// Height is the decoded image height in pixels, after EXIF orientation.
	Height int `json:"height"`

	// AnalyzedWidth and AnalyzedHeight are the dimensions features are
	// computed on. They differ from Width and Height only when the image was
	// downscaled.
	AnalyzedWidth  int `json:"analyzed_width"`
	AnalyzedHeight int `json:"analyzed_height"`

	// Format is the format name reported by the registered decoder:
	// "png", "jpeg", "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the file stores an alpha channel. Alpha is
	// discarded before analysis.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// This function loads the image into the cache (if not already cached) and
// reports its dimensions, format, color depth, alpha channel presence, and
// file size.
//
// # Format Detection
//
// The format is detected from the file contents by the decoder registry, not
// from the file extension.
//
// # Color Depth Detection
//
// Color depth is determined by the color model of the encoded file:
//   - RGBA64, NRGBA64, Gray16 -> "16-bit"
//   - All other models -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch e.config.ColorModel {
	case color.RGBAModel, color.NRGBAModel, color.AlphaModel:
		hasAlpha = true
	case color.RGBA64Model, color.NRGBA64Model, color.Alpha16Model:
		hasAlpha = true
		colorDepth = "16-bit"
	case color.Gray16Model:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:          e.width,
		Height:         e.height,
		AnalyzedWidth:  e.img.Width(),
		AnalyzedHeight: e.img.Height(),
		Format:         e.format,
		ColorDepth:     colorDepth,
		HasAlpha:       hasAlpha,
		FileSizeBytes:  stat.Size(),
	}, nil
}
