// Package assets resolves sprite paths to opaque handles and reports their
// pixel dimensions. Frontends decode the pixels themselves; the simulation
// only ever needs sizes.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG sprites
	"io/fs"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

//go:embed sprites/*.png
var builtin embed.FS

// Builtin returns the embedded sprite set. Paths look like "sprites/bird.png".
func Builtin() fs.FS {
	return builtin
}

// Handle identifies a loaded sprite. The zero Handle is never valid.
type Handle int

// ErrUnknownHandle is returned for handles this catalog never issued.
var ErrUnknownHandle = errors.New("assets: unknown handle")

type entry struct {
	path string
	size core.Vec2
}

// Catalog loads sprite metadata from a file system. Loading the same path
// twice returns the same handle.
type Catalog struct {
	fsys    fs.FS
	byPath  map[string]Handle
	entries []entry
}

// NewCatalog creates a catalog reading from fsys.
func NewCatalog(fsys fs.FS) *Catalog {
	return &Catalog{
		fsys:   fsys,
		byPath: make(map[string]Handle),
	}
}

// Load resolves path to a handle, reading the image header to learn its size.
func (c *Catalog) Load(path string) (Handle, error) {
	if h, ok := c.byPath[path]; ok {
		return h, nil
	}

	f, err := c.fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("assets: cannot open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("assets: cannot decode %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, fmt.Errorf("assets: %s has empty dimensions %dx%d", path, cfg.Width, cfg.Height)
	}

	c.entries = append(c.entries, entry{
		path: path,
		size: core.V2(float64(cfg.Width), float64(cfg.Height)),
	})
	h := Handle(len(c.entries))
	c.byPath[path] = h
	return h, nil
}

func (c *Catalog) lookup(h Handle) (entry, error) {
	if h <= 0 || int(h) > len(c.entries) {
		return entry{}, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return c.entries[h-1], nil
}

// Size returns the pixel dimensions of a loaded sprite.
func (c *Catalog) Size(h Handle) (core.Vec2, error) {
	e, err := c.lookup(h)
	if err != nil {
		return core.Vec2{}, err
	}
	return e.size, nil
}

// Path returns the path a handle was loaded from, or "" for unknown handles.
func (c *Catalog) Path(h Handle) string {
	e, err := c.lookup(h)
	if err != nil {
		return ""
	}
	return e.path
}

// Open opens the sprite file behind a handle for full decoding.
func (c *Catalog) Open(h Handle) (fs.File, error) {
	e, err := c.lookup(h)
	if err != nil {
		return nil, err
	}
	return c.fsys.Open(e.path)
}

// Handles returns every handle issued so far, in load order.
func (c *Catalog) Handles() []Handle {
	hs := make([]Handle, len(c.entries))
	for i := range c.entries {
		hs[i] = Handle(i + 1)
	}
	return hs
}
