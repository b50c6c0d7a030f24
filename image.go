package nim

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/next-dev/nim/bitmap"
)

// ConvertFile converts the image at path into a NIM bitmap written
// alongside it with the extension replaced by ".nim".
func (c *Converter) ConvertFile(path string) error {
	return c.convert(path, ReplaceExt(path, ".nim"))
}

func (c *Converter) convert(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	var sha, fp string
	if c.cache != nil {
		if sha, err = fileSHA1(f); err != nil {
			return err
		}
		if fp, err = paletteFingerprint(c.palette); err != nil {
			return err
		}

		b, err := c.cache.get(sha, c.depth, fp, c.resizeKey())
		if err != nil {
			return err
		}
		if b != nil {
			c.logger.Printf("Using cached conversion for \"%s\"\n", src)
			return writeFile(dst, b)
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	if c.width > 0 && c.height > 0 {
		m = transform.Resize(m, c.width, c.height, transform.NearestNeighbor)
	}

	b := new(bytes.Buffer)
	if err := bitmap.Encode(b, m, c.palette, c.depth); err != nil {
		return err
	}

	if c.cache != nil {
		if err := c.cache.put(sha, c.depth, fp, c.resizeKey(), b.Bytes()); err != nil {
			return err
		}
	}

	if err := writeFile(dst, b.Bytes()); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\"\n", src, dst)

	return nil
}

func (c *Converter) resizeKey() string {
	if c.width > 0 && c.height > 0 {
		return fmt.Sprintf("%dx%d", c.width, c.height)
	}
	return ""
}
