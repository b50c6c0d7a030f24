package nim

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/next-dev/nim/nip"
)

// LoadPalette reads a palette from file, which may be a NIP palette, a
// JASC-PAL text palette, or any decodable image whose colours are then
// reduced to at most colors entries.
func LoadPalette(file string, colors int) (*nip.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := nip.Decode(f)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, nip.ErrUnknownFormat) {
		return nil, err
	}

	// Not a palette, try it as an image
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return nip.FromImage(m, colors)
}

// WritePalette writes p to file in NIP binary form.
func WritePalette(file string, p *nip.Palette) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	return writeFile(file, b)
}

// ParseIndex parses a palette index given as a decimal number or as a
// hexadecimal one prefixed with "$".
func ParseIndex(s string) (uint8, error) {
	t, base := s, 10
	if strings.HasPrefix(t, "$") {
		t, base = t[1:], 16
	}
	v, err := strconv.ParseUint(t, base, 8)
	if err != nil {
		return 0, fmt.Errorf("nim: invalid palette index %q", s)
	}
	return uint8(v), nil
}

// ParseSize parses a size given as WIDTHxHEIGHT, such as "256x192".
func ParseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(s, "x")
	if ok {
		if width, err = strconv.Atoi(ws); err == nil {
			height, err = strconv.Atoi(hs)
		}
	}
	if !ok || err != nil || width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("nim: invalid size %q", s)
	}
	return width, height, nil
}

// ReplaceExt returns path with its extension replaced by ext.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func writeFile(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(b)

	return err
}
