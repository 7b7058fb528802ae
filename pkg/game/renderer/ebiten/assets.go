package ebiten

import (
	"errors"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/zyedidia/generic/mapset"
)

var imageExts = []string{".png", ".jpg", ".jpeg"}

// ImageCache loads scene images from the assets directory on first use.
// Keys that failed to load are remembered so a missing file is reported once.
type ImageCache struct {
	dir string
	log *slog.Logger

	images  map[string]*ebiten.Image
	missing mapset.Set[string]
}

// NewImageCache creates a cache over <dir>/images.
func NewImageCache(dir string, log *slog.Logger) *ImageCache {
	return &ImageCache{
		dir:     dir,
		log:     log,
		images:  make(map[string]*ebiten.Image),
		missing: mapset.New[string](),
	}
}

// HasImage reports whether key resolves to a drawable image.
func (c *ImageCache) HasImage(key string) bool {
	return c.Image(key) != nil
}

// Image returns the image for key, loading it if needed, or nil.
func (c *ImageCache) Image(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	if img, ok := c.images[key]; ok {
		return img
	}
	if c.missing.Has(key) {
		return nil
	}

	for _, path := range assetCandidates(c.dir, "images", key, imageExts) {
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err == nil {
			c.images[key] = img
			c.log.Debug("image loaded", "key", key, "path", path)
			return img
		}
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("image unreadable", "key", key, "path", path, "error", err)
		}
	}

	c.missing.Put(key)
	c.log.Warn("image missing", "key", key, "dir", c.dir)
	return nil
}

// assetCandidates lists the paths tried for key. A key with an extension is
// used as is; otherwise each of exts is tried in order.
func assetCandidates(dir, sub, key string, exts []string) []string {
	if filepath.Ext(key) != "" {
		return []string{
			filepath.Join(dir, sub, key),
			filepath.Join(dir, key),
		}
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, filepath.Join(dir, sub, key+ext))
	}
	return out
}
