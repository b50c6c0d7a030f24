package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"io"

	"github.com/next-dev/nim/nip"
)

var (
	errInvalidMagic = errors.New("bitmap: invalid magic")
	errNotEnough    = errors.New("bitmap: not enough image data")
	errTooMuch      = errors.New("bitmap: too much image data")
)

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

// Image is a decoded NIM bitmap holding one palette index per pixel in
// row-major order, whichever depth it was read from.
type Image struct {
	Width  int
	Height int
	Depth  Depth
	Pix    []uint8
}

// Bounds returns the rectangle covered by the bitmap.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// ColorIndexAt returns the palette index of the pixel at (x, y), or
// zero outside the bitmap.
func (m *Image) ColorIndexAt(x, y int) uint8 {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Paletted renders the bitmap as a stdlib paletted image using the
// colours of p. Indices beyond the end of the palette clamp to entry
// zero.
func (m *Image) Paletted(p *nip.Palette) *image.Paletted {
	pm := image.NewPaletted(m.Bounds(), p.ColorPalette())
	for i, idx := range m.Pix {
		if int(idx) >= len(pm.Palette) {
			idx = 0
		}
		pm.Pix[i] = idx
	}
	return pm
}

type decoder struct {
	r io.Reader

	header header
	depth  Depth
	pix    []uint8
}

func (d *decoder) readHeader() error {
	if err := binary.Read(d.r, binary.LittleEndian, &d.header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}
	if string(d.header.Magic[:]) != Magic {
		return errInvalidMagic
	}
	return nil
}

func (d *decoder) readPixels() error {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	w, h := int(d.header.Width), int(d.header.Height)

	switch {
	case len(data) == w*h:
		d.depth = Depth8
		d.pix = data
	case w%2 == 0 && len(data)*2 == w*h:
		d.depth = Depth4
		d.pix = make([]uint8, 0, w*h)
		for _, b := range data {
			d.pix = append(d.pix, upperNibble(b)>>4, lowerNibble(b))
		}
	case len(data) < w*h:
		return errNotEnough
	default:
		return errTooMuch
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	return d.readPixels()
}

// Decode reads a NIM bitmap from r. The header does not record the
// pixel depth so it is inferred from the amount of image data.
func Decode(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &Image{
		Width:  int(d.header.Width),
		Height: int(d.header.Height),
		Depth:  d.depth,
		Pix:    d.pix,
	}, nil
}

// DecodeConfig returns the dimensions of a NIM bitmap without decoding
// the pixels. The colour model is left nil as the file carries no
// palette.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:  int(d.header.Width),
		Height: int(d.header.Height),
	}, nil
}
