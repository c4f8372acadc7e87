package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Cache provides thread-safe caching of decoded frames so repeated
// detections and exports against the same file skip disk I/O.
//
// Cached images stay in memory until Evict or Clear; long-running callers
// processing many files should clear periodically.
type Cache struct {
	mu     sync.RWMutex
	images map[string]cached
}

type cached struct {
	img    image.Image
	format string
}

// NewCache creates an empty frame cache, ready for concurrent use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]cached)}
}

// Load returns the decoded image at path, reading and decoding it on the
// first call and serving the cached copy afterwards. Entries are keyed by
// the exact path string, so relative and absolute spellings of one file
// cache separately.
func (c *Cache) Load(path string) (image.Image, error) {
	img, _, err := c.load(path)
	return img, err
}

func (c *Cache) load(path string) (image.Image, string, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e.img, e.format, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = cached{img: img, format: format}
	c.mu.Unlock()

	return img, format, nil
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cached)
	c.mu.Unlock()
}

// Evict drops the cached image for path, if present.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Info describes a loaded frame.
type Info struct {
	// Width and Height are the frame dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoded format name ("png", "jpeg", "gif"), as reported
	// by the decoder rather than guessed from the file extension.
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads a frame (through the cache) and returns its metadata.
func (c *Cache) LoadInfo(path string) (*Info, error) {
	img, format, err := c.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	bounds := img.Bounds()
	return &Info{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// Dimensions holds just a frame's width and height.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LoadDimensions is the lightweight form of LoadInfo for callers that only
// need the frame size.
func (c *Cache) LoadDimensions(path string) (*Dimensions, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return &Dimensions{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
