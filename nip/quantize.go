package nip

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/next-dev/nim/rgb333"
)

// FromImage builds a palette from the colours of an image, reducing
// them to at most max entries with a median cut and quantizing each
// entry to the 3-bit colour space. Entries that collapse to the same
// quantized colour are folded together, keeping first-seen order.
func FromImage(m image.Image, max int) (*Palette, error) {
	if max < 1 || max > MaxColors {
		return nil, fmt.Errorf("nip: invalid colour count %d", max)
	}

	q := quantize.MedianCutQuantizer{}

	var colors []rgb333.Color
	seen := make(map[rgb333.Color]struct{})
	for _, qc := range q.Quantize(make(color.Palette, 0, max), m) {
		c := color.NRGBAModel.Convert(qc).(color.NRGBA)
		rc := rgb333.FromRGB(c.R, c.G, c.B)
		if _, ok := seen[rc]; ok {
			continue
		}
		seen[rc] = struct{}{}
		colors = append(colors, rc)
	}

	if len(colors) == 0 {
		return nil, errors.New("nip: image has no colours")
	}

	return New(colors), nil
}
