package content

import (
	"encoding/json"
	"strings"
)

// Request is the transport representation of a generation request. Every
// field is optional here; which ones are required depends on Type.
type Request struct {
	Type string `json:"type"`

	Text  string     `json:"text,omitempty"`
	Items []MenuItem `json:"items,omitempty"`

	SSID       string `json:"ssid,omitempty"`
	Password   string `json:"password,omitempty"`
	Encryption string `json:"encryption,omitempty"`

	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Company  string `json:"company,omitempty"`
	JobTitle string `json:"jobTitle,omitempty"`
	Website  string `json:"website,omitempty"`
	Birthday string `json:"birthday,omitempty"`

	CouponCode string `json:"couponCode,omitempty"`
	Discount   Amount `json:"discount,omitempty"`
	Expiration string `json:"expiration,omitempty"`

	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	DotColor   string `json:"dotColor,omitempty"`
	FrameText  string `json:"frameText,omitempty"`
	FrameColor string `json:"frameColor,omitempty"`
	// Logo is a base64 string, optionally with a data URI prefix.
	Logo string `json:"logo,omitempty"`

	// LogoFile carries a logo received as a binary multipart part. It wins
	// over Logo when both are set.
	LogoFile []byte `json:"-"`
	// File is the staged reference of an uploaded document.
	File string `json:"-"`
}

// MenuItem is one line of a Menu payload.
type MenuItem struct {
	Name  string `json:"name" validate:"required"`
	Price Amount `json:"price" validate:"required"`
	Link  string `json:"link,omitempty"`
}

// Amount accepts either a JSON string or a JSON number and keeps the
// literal text, so "9.50" and 9.50 both print as 9.50.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) String() string { return string(a) }
