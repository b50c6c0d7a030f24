/*
Package nip implements a decoder and encoder for the NIP palette format
used by ZX Spectrum Next software, along with parsing of JASC-PAL text
palettes and palette extraction from ordinary images.

A NIP file starts with the four byte magic "NIP0", a colour count byte
where zero stands for 256, and a flags byte whose bit 0 selects the
extended layout. The palette body follows; in the standard layout each
colour is a single RRRGGGBB byte, while the extended layout interleaves
a second byte per colour whose bit 0 carries the true low bit of the
3-bit blue channel. A single trailing byte gives the index of the
transparent colour.

In the standard layout only the top two bits of blue are stored; the
missing low bit is derived on read as the OR of the two stored bits,
matching the palette hardware.
*/
package nip

import (
	"image/color"

	"github.com/next-dev/nim/rgb333"
)

const (
	// Magic identifies a NIP palette file.
	Magic = "NIP0"

	// MaxColors is the largest number of entries a palette can hold.
	// On disk a count byte of zero stands for MaxColors.
	MaxColors = 256

	// DefaultTransparent is the transparent colour index used unless a
	// palette overrides it.
	DefaultTransparent = 0xe3

	flagExtended = 0x01
)

// Palette is an ordered sequence of up to 256 colours plus the index
// substituted for transparent pixels. The position of each colour is
// the index written to encoded images.
type Palette struct {
	// Colors holds between 1 and 256 entries; the bounds are enforced
	// when encoding.
	Colors []rgb333.Color

	// Transparent is the palette index substituted for any pixel that
	// is not fully opaque. It is a raw byte and need not refer to a
	// populated entry.
	Transparent uint8

	// Extended selects the two-plane 9-bit body layout when encoding.
	// Decoding sets it from the flags byte.
	Extended bool
}

// New returns a palette holding the given colours and the default
// transparent index.
func New(colors []rgb333.Color) *Palette {
	return &Palette{
		Colors:      colors,
		Transparent: DefaultTransparent,
	}
}

// Default returns the standard 256 colour palette, where entry i spells
// RRRGGGBB and the 2-bit blue field widens to three bits by ORing its
// own bits into the low position.
func Default() *Palette {
	colors := make([]rgb333.Color, MaxColors)
	for i := range colors {
		colors[i] = rgb333.Color{
			R: uint8(i>>5) & 7,
			G: uint8(i>>2) & 7,
			B: uint8(i&3)<<1 + (uint8(i&2)>>1 | uint8(i&1)),
		}
	}
	return New(colors)
}

// ColorPalette returns the palette entries as a stdlib color.Palette.
func (p *Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		cp[i] = c
	}
	return cp
}
