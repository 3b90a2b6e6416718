package render

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontSet builds faces at matplotlib-style point sizes for the output DPI.
type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
	dpi     float64
}

func newFontSet(dpi float64) (*fontSet, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: fonts: %w", err)
	}
	b, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: fonts: %w", err)
	}
	return &fontSet{regular: reg, bold: b, dpi: dpi}, nil
}

func (fs *fontSet) face(size float64, bold bool) (font.Face, error) {
	src := fs.regular
	if bold {
		src = fs.bold
	}
	return opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     fs.dpi,
		Hinting: font.HintingFull,
	})
}
