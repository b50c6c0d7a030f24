/*
Package nim converts ordinary images into the NIP palettes and NIM
indexed bitmaps used by ZX Spectrum Next software.
*/
package nim

import (
	"log"

	"github.com/next-dev/nim/bitmap"
	"github.com/next-dev/nim/nip"
)

// Converter turns image files into NIM bitmaps using a fixed palette
// and pixel depth. A non nil cache skips conversions whose source
// content and settings have been seen before.
type Converter struct {
	palette *nip.Palette
	depth   bitmap.Depth
	width   int
	height  int
	cache   *Cache
	logger  *log.Logger
}

func New(palette *nip.Palette, depth bitmap.Depth, cache *Cache, logger *log.Logger) *Converter {
	return &Converter{
		palette: palette,
		depth:   depth,
		cache:   cache,
		logger:  logger,
	}
}

// Resize sets a size images are scaled to before converting, using
// nearest neighbour resampling to keep hard pixel edges.
func (c *Converter) Resize(width, height int) {
	c.width = width
	c.height = height
}
