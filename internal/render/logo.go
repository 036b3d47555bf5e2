package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"qrstudio/internal/domain"
)

// MaxLogoSide caps logo width and height before the pixels are decoded.
const MaxLogoSide = 4096

// padded and unpadded, standard and URL-safe alphabets
var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeBase64 decodes a logo sent as base64, with or without a data URI
// prefix.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if _, rest, ok := strings.Cut(s, ","); ok {
			s = rest
		}
	}
	var err error
	for _, enc := range base64Encodings {
		var data []byte
		if data, err = enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, domain.RenderFailed("logo", fmt.Errorf("decode base64: %w", err))
}

// Logo decodes data, scales it to fit the logo footprint and paints it over
// the center of the square barcode region of base. base is not modified.
func (r *Renderer) Logo(base image.Image, data []byte) (*image.RGBA, error) {
	if r.maxLogoBytes > 0 && int64(len(data)) > r.maxLogoBytes {
		return nil, domain.RenderFailed("logo", fmt.Errorf("%w: %s exceeds %s",
			domain.ErrLogoTooLarge, humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(r.maxLogoBytes))))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, domain.RenderFailed("logo", fmt.Errorf("%w: %s", domain.ErrUnsupportedImage, mt.String()))
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, domain.RenderFailed("logo", fmt.Errorf("decode %s: %w", mt.String(), err))
	}
	if cfg.Width > MaxLogoSide || cfg.Height > MaxLogoSide {
		return nil, domain.RenderFailed("logo", fmt.Errorf("%w: %dx%d exceeds %dpx",
			domain.ErrLogoTooLarge, cfg.Width, cfg.Height, MaxLogoSide))
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, domain.RenderFailed("logo", fmt.Errorf("decode %s: %w", mt.String(), err))
	}

	b := base.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), base, b.Min, draw.Src)

	// the barcode is the top square of the canvas; a frame only adds rows below
	side := b.Dx()
	target := fitRect(src.Bounds(), r.logoSize).Add(image.Pt(side/2, side/2))
	draw.BiLinear.Scale(canvas, target, src, src.Bounds(), draw.Src, nil)
	return canvas, nil
}

// fitRect scales src to fit a box×box square keeping its aspect ratio and
// returns the result centered on the origin.
func fitRect(src image.Rectangle, box int) image.Rectangle {
	w, h := src.Dx(), src.Dy()
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(box)/float64(w), float64(box)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return image.Rect(-nw/2, -nh/2, nw-nw/2, nh-nh/2)
}
