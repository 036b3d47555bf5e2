package generator

import (
	"unicode/utf8"

	"github.com/rs/zerolog"

	"qrstudio/internal/content"
)

// DefaultFieldMaxChars bounds every logged text field.
const DefaultFieldMaxChars = 120

// Summary returns a log object describing req without binary data or
// secrets. Text fields are cut to maxChars runes.
func Summary(req *content.Request, maxChars int) zerolog.LogObjectMarshaler {
	if maxChars <= 0 {
		maxChars = DefaultFieldMaxChars
	}
	return summary{req: req, max: maxChars}
}

type summary struct {
	req *content.Request
	max int
}

func (s summary) MarshalZerologObject(e *zerolog.Event) {
	r := s.req
	if r == nil {
		return
	}
	e.Str("type", truncate(r.Type, s.max))
	s.str(e, "text", r.Text)
	s.str(e, "ssid", r.SSID)
	s.str(e, "encryption", r.Encryption)
	if r.Password != "" {
		e.Bool("password_set", true)
	}
	if len(r.Items) > 0 {
		e.Int("items", len(r.Items))
	}
	s.str(e, "name", r.Name)
	s.str(e, "company", r.Company)
	s.str(e, "couponCode", r.CouponCode)
	s.str(e, "discount", r.Discount.String())
	s.str(e, "title", r.Title)
	s.str(e, "expiration", r.Expiration)
	s.str(e, "dotColor", r.DotColor)
	s.str(e, "frameText", r.FrameText)
	s.str(e, "frameColor", r.FrameColor)
	s.str(e, "file", r.File)
	if n := len(r.LogoFile); n > 0 {
		e.Int("logo_bytes", n)
	} else if r.Logo != "" {
		e.Int("logo_base64_chars", len(r.Logo))
	}
}

func (s summary) str(e *zerolog.Event, key, value string) {
	if value == "" {
		return
	}
	e.Str(key, truncate(value, s.max))
}

func truncate(s string, maxChars int) string {
	if utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars]) + "…"
}
