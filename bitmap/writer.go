package bitmap

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/next-dev/nim/nip"
)

var (
	// ErrPaletteTooLarge is returned when encoding at 4 bpp with a
	// palette holding more than 16 colours.
	ErrPaletteTooLarge = errors.New("bitmap: too many colours for 4 bpp")

	// ErrOddWidth is returned when encoding an odd width image at
	// 4 bpp, which cannot pack into whole bytes.
	ErrOddWidth = errors.New("bitmap: odd width image at 4 bpp")

	errImageTooLarge = errors.New("bitmap: image is too large")
)

type encoder struct {
	w io.Writer
}

// nearestIndex returns the position of the palette entry closest to c,
// measured as the squared distance between the raw channels and the
// entry widened to 8 bits. The transparent entry never matches and
// ties go to the lowest index.
func nearestIndex(p *nip.Palette, c color.NRGBA) uint8 {
	best, bestDist := 0, 1<<24
	for i, pc := range p.Colors {
		if i == int(p.Transparent) {
			continue
		}
		r, g, b := pc.RGB8()
		dr := int(c.R) - int(r)
		dg := int(c.G) - int(g)
		db := int(c.B) - int(b)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

func (e *encoder) encode(w, h int, pix []uint8, d Depth) error {
	hdr := header{Width: uint16(w), Height: uint16(h)}
	copy(hdr.Magic[:], Magic)
	if err := binary.Write(e.w, binary.LittleEndian, hdr); err != nil {
		return err
	}

	if d == Depth8 {
		_, err := e.w.Write(pix)
		return err
	}

	// Masking off any high bits leaves a 0-15 value
	packed := make([]byte, 0, len(pix)/2)
	for i := 0; i < len(pix); i += 2 {
		packed = append(packed, pix[i]&0x0f<<4|pix[i+1]&0x0f)
	}

	_, err := e.w.Write(packed)
	return err
}

// Encode writes the image m to w in NIM format at the given depth,
// mapping every pixel to its nearest entry in p. Pixels that are not
// fully opaque become the transparent index without a search.
func Encode(w io.Writer, m image.Image, p *nip.Palette, d Depth) error {
	b := m.Bounds()

	if b.Dx() > math.MaxUint16 || b.Dy() > math.MaxUint16 {
		return errImageTooLarge
	}

	switch d {
	case Depth8:
	case Depth4:
		if len(p.Colors) > 16 {
			return ErrPaletteTooLarge
		}
		if b.Dx()%2 != 0 {
			return ErrOddWidth
		}
	default:
		return errors.New("bitmap: unsupported depth")
	}

	pix := make([]uint8, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			if c.A != 0xff {
				pix = append(pix, p.Transparent)
				continue
			}
			pix = append(pix, nearestIndex(p, c))
		}
	}

	e := encoder{w: w}

	return e.encode(b.Dx(), b.Dy(), pix, d)
}
