// Package render draws the QR code for a payload and applies the optional
// decorations: a caption band under the code and a logo over its center.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"

	"qrstudio/internal/domain"
)

const (
	DefaultSize        = 500
	DefaultFrameHeight = 50
	DefaultFontSize    = 30
	DefaultLogoSize    = 50
	// MaxPayloadBytes is the byte-mode capacity of a version 40 symbol at
	// the lowest recovery level.
	MaxPayloadBytes = 2953
)

var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Options configures a Renderer. Zero values take the defaults above.
type Options struct {
	Size         int
	FrameHeight  int
	FontSize     float64
	LogoSize     int
	MaxLogoBytes int64
}

// Renderer holds the geometry shared by every request. It keeps no per
// request state and is safe for concurrent use.
type Renderer struct {
	size         int
	frameHeight  int
	fontSize     float64
	logoSize     int
	maxLogoBytes int64
}

func New(opts Options) *Renderer {
	r := &Renderer{
		size:         opts.Size,
		frameHeight:  opts.FrameHeight,
		fontSize:     opts.FontSize,
		logoSize:     opts.LogoSize,
		maxLogoBytes: opts.MaxLogoBytes,
	}
	if r.size <= 0 {
		r.size = DefaultSize
	}
	if r.frameHeight <= 0 {
		r.frameHeight = DefaultFrameHeight
	}
	if r.fontSize <= 0 {
		r.fontSize = DefaultFontSize
	}
	if r.logoSize <= 0 {
		r.logoSize = DefaultLogoSize
	}
	return r
}

// levels from most to least redundant
var levels = []qrcode.RecoveryLevel{qrcode.Highest, qrcode.High, qrcode.Medium, qrcode.Low}

// Barcode renders payload as a size×size QR code. It starts at the
// preferred recovery level and steps down until the payload fits.
func (r *Renderer) Barcode(payload string, fg, bg color.Color, preferred qrcode.RecoveryLevel) (image.Image, error) {
	if payload == "" {
		return nil, domain.RenderFailed("barcode", errors.New("empty payload"))
	}
	if len(payload) > MaxPayloadBytes {
		return nil, domain.RenderFailed("barcode",
			fmt.Errorf("%w: %d bytes, limit %d", domain.ErrPayloadTooLong, len(payload), MaxPayloadBytes))
	}
	var lastErr error
	for _, level := range levels {
		if level > preferred {
			continue
		}
		qr, err := qrcode.New(payload, level)
		if err != nil {
			lastErr = err
			continue
		}
		qr.ForegroundColor = fg
		qr.BackgroundColor = bg
		return qr.Image(r.size), nil
	}
	return nil, domain.RenderFailed("barcode", fmt.Errorf("%w: %v", domain.ErrPayloadTooLong, lastErr))
}
