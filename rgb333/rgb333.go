/*
Package rgb333 implements the 9-bit RGB colour space used by the ZX
Spectrum Next palette hardware.

Each channel holds one of eight levels spread across the 8-bit range.
Palette files store a colour as three level indices, so converting PC
artwork means reducing each 8-bit sample to its nearest level.
*/
package rgb333

// Levels3 holds the 8-bit value of each 3-bit channel level.
var Levels3 = [8]uint8{0, 36, 73, 109, 146, 182, 219, 255}

// Levels2 holds the 8-bit value of each 2-bit channel level.
var Levels2 = [4]uint8{0, 85, 170, 255}

// Reduce3 returns the index of the Levels3 entry closest to v. An exact
// match wins immediately; otherwise ties resolve to the lower index.
func Reduce3(v uint8) uint8 {
	minIdx := 0
	minDiff := 255

	for i, l := range Levels3 {
		diff := int(v) - int(l)
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			return uint8(i)
		}
		if diff < minDiff {
			minDiff = diff
			minIdx = i
		}
	}

	return uint8(minIdx)
}

// Reduce2 returns the index of the Levels2 entry closest to v. An exact
// match wins immediately; otherwise ties resolve to the lower index.
func Reduce2(v uint8) uint8 {
	minIdx := 0
	minDiff := 255

	for i, l := range Levels2 {
		diff := int(v) - int(l)
		if diff < 0 {
			diff = -diff
		}
		if diff == 0 {
			return uint8(i)
		}
		if diff < minDiff {
			minDiff = diff
			minIdx = i
		}
	}

	return uint8(minIdx)
}

// Color is a palette entry with three 3-bit channels, each a level index
// between 0 and 7.
type Color struct {
	R, G, B uint8
}

// FromRGB quantizes an 8-bit RGB triple to the nearest Color.
func FromRGB(r, g, b uint8) Color {
	return Color{Reduce3(r), Reduce3(g), Reduce3(b)}
}

// RGB8 returns the 8-bit expansion of each channel.
func (c Color) RGB8() (r, g, b uint8) {
	return Levels3[c.R&7], Levels3[c.G&7], Levels3[c.B&7]
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xffff
}
