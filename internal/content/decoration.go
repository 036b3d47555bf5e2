package content

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"qrstudio/internal/domain"
)

var (
	DefaultDotColor   = color.RGBA{A: 0xff}
	DefaultFrameColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Decoration holds the parsed visual options shared by every kind.
type Decoration struct {
	DotColor   color.RGBA
	FrameText  string
	FrameColor color.RGBA
}

// HasFrame reports whether a caption band was requested.
func (d Decoration) HasFrame() bool { return d.FrameText != "" }

// Decoration parses the decoration fields of the request. Colors fall back
// to black dots and a white frame.
func (r *Request) Decoration() (Decoration, error) {
	dot, err := ParseHexColor(r.DotColor, DefaultDotColor)
	if err != nil {
		return Decoration{}, domain.Invalid(r.Type, domain.ErrInvalidColor, "dotColor")
	}
	frame, err := ParseHexColor(r.FrameColor, DefaultFrameColor)
	if err != nil {
		return Decoration{}, domain.Invalid(r.Type, domain.ErrInvalidColor, "frameColor")
	}
	return Decoration{DotColor: dot, FrameText: r.FrameText, FrameColor: frame}, nil
}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading # is optional).
// An empty string yields def.
func ParseHexColor(s string, def color.RGBA) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
