package nip

import (
	"bytes"
	"fmt"
	"io"
)

// MarshalBinary encodes the palette into NIP binary form. A 256 entry
// palette stores its count as the zero sentinel.
func (p *Palette) MarshalBinary() ([]byte, error) {
	if len(p.Colors) < 1 || len(p.Colors) > MaxColors {
		return nil, fmt.Errorf("nip: palette must hold between 1 and %d colours, has %d", MaxColors, len(p.Colors))
	}

	var flags byte
	if p.Extended {
		flags |= flagExtended
	}

	b := new(bytes.Buffer)
	b.WriteString(Magic)
	b.WriteByte(byte(len(p.Colors)))
	b.WriteByte(flags)

	for _, c := range p.Colors {
		b.WriteByte(c.R<<5 | c.G<<2 | c.B>>1)
		if p.Extended {
			b.WriteByte(c.B & 1)
		}
	}

	b.WriteByte(p.Transparent)

	return b.Bytes(), nil
}

// Encode writes the palette to w in NIP binary form.
func Encode(w io.Writer, p *Palette) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
