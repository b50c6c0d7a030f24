package nim

import (
	"crypto/sha1"
	"fmt"
	"io"

	"github.com/next-dev/nim/nip"
)

// fileSHA1 returns the uppercase hex SHA1 of everything left in r.
func fileSHA1(r io.Reader) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

// paletteFingerprint digests a palette's encoded form. Together with
// the pixel depth and resize settings it keys cached conversions.
func paletteFingerprint(p *nip.Palette) (string, error) {
	b, err := p.MarshalBinary()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", sha1.Sum(b)), nil
}
