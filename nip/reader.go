package nip

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/next-dev/nim/rgb333"
)

var (
	// ErrTruncated is returned when palette data ends before all of its
	// declared content.
	ErrTruncated = errors.New("nip: truncated palette data")

	// ErrUnknownFormat is returned when the input is neither a NIP
	// palette nor a JASC-PAL text palette.
	ErrUnknownFormat = errors.New("nip: unrecognized palette format")

	// ErrColorValue is returned when a JASC-PAL channel value is not an
	// integer between 0 and 255.
	ErrColorValue = errors.New("nip: invalid colour value")

	// ErrColorCount is returned when a JASC-PAL palette holds fewer
	// colours than its header declares.
	ErrColorCount = errors.New("nip: colour count mismatch")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Decode reads a palette from r, accepting either a binary NIP palette
// or a JASC-PAL text palette.
func Decode(r io.Reader) (*Palette, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if len(data) >= len(Magic) && string(data[:len(Magic)]) == Magic {
		p := new(Palette)
		if err := p.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return p, nil
	}

	return decodeJASC(data)
}

// UnmarshalBinary decodes a binary NIP palette. Bytes beyond the
// trailing transparent index are ignored. The palette is left untouched
// on error.
func (p *Palette) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var hdr [6]byte
	if err := readFull(r, hdr[:]); err != nil {
		return ErrTruncated
	}
	if string(hdr[:len(Magic)]) != Magic {
		return ErrUnknownFormat
	}

	count := int(hdr[4])
	if count == 0 {
		count = MaxColors
	}
	extended := hdr[5]&flagExtended != 0

	size := 1
	if extended {
		size = 2
	}

	colors := make([]rgb333.Color, 0, count)
	var entry [2]byte
	for i := 0; i < count; i++ {
		if err := readFull(r, entry[:size]); err != nil {
			return ErrTruncated
		}
		p1, p2 := entry[0], entry[1]
		if !extended {
			p2 = p1>>1&1 | p1&1
		}
		colors = append(colors, rgb333.Color{
			R: p1 >> 5 & 7,
			G: p1 >> 2 & 7,
			B: (p1&3)<<1 | p2&1,
		})
	}

	transparent, err := r.ReadByte()
	if err != nil {
		return ErrTruncated
	}

	p.Colors = colors
	p.Transparent = transparent
	p.Extended = extended

	return nil
}

// decodeJASC parses a JASC-PAL text palette. Any triples beyond the
// declared count are ignored, fewer than declared is an error.
func decodeJASC(data []byte) (*Palette, error) {
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !s.Scan() {
			return "", false
		}
		return s.Text(), true
	}

	if tok, ok := next(); !ok || tok != "JASC-PAL" {
		return nil, ErrUnknownFormat
	}
	if tok, ok := next(); !ok || tok != "0100" {
		return nil, ErrUnknownFormat
	}

	tok, ok := next()
	if !ok {
		return nil, ErrTruncated
	}
	count, err := strconv.Atoi(tok)
	if err != nil || count < 1 {
		return nil, fmt.Errorf("%w: bad colour count %q", ErrColorCount, tok)
	}

	colors := make([]rgb333.Color, 0, count)
	for len(colors) < count {
		var channel [3]uint8
		for i := range channel {
			tok, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: declared %d colours, found %d", ErrColorCount, count, len(colors))
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v < 0 || v > 255 {
				return nil, fmt.Errorf("%w: %q", ErrColorValue, tok)
			}
			channel[i] = uint8(v)
		}
		colors = append(colors, rgb333.FromRGB(channel[0], channel[1], channel[2]))
	}

	return New(colors), nil
}
