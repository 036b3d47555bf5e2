package render

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"qrstudio/internal/domain"
)

const (
	minFontSize    = 8
	captionPadding = 10
	// gap between the lowest descender and the band edge
	captionBottomMargin = 3
)

var captionColor = color.Black

// captionFont is parsed once; the parsed font is read-only and shared.
var captionFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// Frame returns a new canvas with base at the top and a band of fill color
// below it, carrying text centered in black.
func (r *Renderer) Frame(base image.Image, text string, fill color.Color) (*image.RGBA, error) {
	b := base.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+r.frameHeight))
	draw.Draw(canvas, image.Rect(0, 0, b.Dx(), b.Dy()), base, b.Min, draw.Src)

	band := image.Rect(0, b.Dy(), b.Dx(), b.Dy()+r.frameHeight)
	draw.Draw(canvas, band, image.NewUniform(fill), image.Point{}, draw.Src)

	if err := r.caption(canvas, band, text); err != nil {
		return nil, err
	}
	return canvas, nil
}

func (r *Renderer) caption(dst draw.Image, band image.Rectangle, text string) error {
	f, err := captionFont()
	if err != nil {
		return domain.RenderFailed("frame", err)
	}
	face, err := fitFace(f, text, r.fontSize, band.Dx()-2*captionPadding)
	if err != nil {
		return domain.RenderFailed("frame", err)
	}
	defer face.Close()

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(captionColor),
		Face: face,
		Dot:  captionDot(band, font.MeasureString(face, text), face.Metrics()),
	}
	d.DrawString(text)
	return nil
}

// captionDot centers the text horizontally and puts the baseline near the
// bottom of the band, leaving room for descenders.
func captionDot(band image.Rectangle, width fixed.Int26_6, m font.Metrics) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.I(band.Min.X) + (fixed.I(band.Dx())-width)/2,
		Y: fixed.I(band.Max.Y-captionBottomMargin) - m.Descent,
	}
}

// fitFace returns the largest face not above size whose rendering of text
// fits in maxWidth, bottoming out at minFontSize.
func fitFace(f *opentype.Font, text string, size float64, maxWidth int) (font.Face, error) {
	for {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, err
		}
		if size <= minFontSize || font.MeasureString(face, text) <= fixed.I(maxWidth) {
			return face, nil
		}
		_ = face.Close()
		size -= 2
	}
}
