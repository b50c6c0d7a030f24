/*
Package bitmap implements the NIM indexed bitmap format used by ZX
Spectrum Next software.

A NIM file is the four byte magic "NIM0" followed by the bitmap width
and height as little endian 16-bit values, then the pixel data as bare
palette indices in row-major order. At 8 bits per pixel every byte
holds one index. At 4 bits per pixel each byte packs two horizontally
adjacent pixels with the even column in the upper nibble, which
requires an even width. The palette is not part of the file, see the
nip package.
*/
package bitmap

import "strconv"

// Magic identifies a NIM bitmap file.
const Magic = "NIM0"

type header struct {
	Magic  [4]byte
	Width  uint16
	Height uint16
}

// Depth is the number of bits storing each pixel.
type Depth int

// Supported pixel depths.
const (
	Depth8 Depth = 8
	Depth4 Depth = 4
)

// String implements the fmt.Stringer interface.
func (d Depth) String() string {
	return strconv.Itoa(int(d)) + " bpp"
}
