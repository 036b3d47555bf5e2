// Package content turns a transport request into the canonical text that
// ends up inside the QR code.
//
// Every supported kind is a small struct carrying only the fields that kind
// uses. Required fields are declared with validator tags on that struct, and
// the canonical text comes from its Payload method. Adding a kind means
// adding one type and one entry in variants.
package content

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"qrstudio/internal/domain"
)

// Content is a validated request for one kind.
type Content interface {
	Kind() Kind
	// Payload returns the canonical text. It never fails and never returns
	// an empty string for validated content.
	Payload() string
}

var variants = map[Kind]func(*Request) Content{
	KindWiFi:    newWiFi,
	KindMenu:    newMenu,
	KindWebsite: newWebsite,
	KindPDF:     newPDF,
	KindVCard:   newVCard,
	KindCoupon:  newCoupon,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse checks the request type and the required fields of that type. It
// returns a *domain.ValidationError naming every missing field.
func Parse(req *Request) (Content, error) {
	if req == nil || strings.TrimSpace(req.Type) == "" {
		return nil, domain.Invalid("", domain.ErrMissingType, "type")
	}
	kind, ok := ParseKind(req.Type)
	if !ok {
		return nil, domain.Invalid(req.Type, domain.ErrUnsupportedType, "type")
	}
	c := variants[kind](req)
	if err := validate.Struct(c); err != nil {
		return nil, fieldErrors(kind, err)
	}
	return c, nil
}

// Encode returns the canonical payload of validated content.
func Encode(c Content) string {
	return c.Payload()
}

func fieldErrors(kind Kind, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalid(kind.String(), errors.Join(domain.ErrMissingFields, err))
	}
	seen := make(map[string]struct{}, len(verrs))
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := fe.Namespace()
		// drop the struct name prefix, keep "items[0].name"
		if _, rest, ok := strings.Cut(name, "."); ok {
			name = rest
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	return domain.Invalid(kind.String(), domain.ErrMissingFields, fields...)
}
