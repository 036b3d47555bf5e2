// Package i18n holds the user-facing messages in Spanish and English and
// picks the locale for a request.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported locales.
const (
	Spanish = "es"
	English = "en"
)

// Message keys.
const (
	MsgTypeRequired     = "error.type_required"
	MsgTypeUnsupported  = "error.type_unsupported"
	MsgMissingFields    = "error.missing_fields"
	MsgInvalidColor     = "error.invalid_color"
	MsgPayloadTooLong   = "error.payload_too_long"
	MsgLogoTooLarge     = "error.logo_too_large"
	MsgUnsupportedImage = "error.unsupported_image"
	MsgInvalidLogo      = "error.invalid_logo"
	MsgRenderFailed     = "error.render_failed"
	MsgBodyTooLarge     = "error.body_too_large"
	MsgMalformedBody    = "error.malformed_body"
	MsgUploadTooLarge   = "error.upload_too_large"
	MsgStagingFailed    = "error.staging_failed"
	MsgCanceled         = "error.canceled"
)

var messages = map[string]map[language.Tag]string{
	MsgTypeRequired: {
		language.Spanish: `El campo "type" es obligatorio`,
		language.English: `The field "type" is required`,
	},
	MsgTypeUnsupported: {
		language.Spanish: "Tipo de QR no soportado: %s",
		language.English: "Unsupported QR type: %s",
	},
	MsgMissingFields: {
		language.Spanish: "Faltan campos obligatorios para %s: %s",
		language.English: "Missing required fields for %s: %s",
	},
	MsgInvalidColor: {
		language.Spanish: "Color inválido en %s",
		language.English: "Invalid color in %s",
	},
	MsgPayloadTooLong: {
		language.Spanish: "El contenido es demasiado largo para un código QR",
		language.English: "The content is too long for a QR code",
	},
	MsgLogoTooLarge: {
		language.Spanish: "El logo supera el tamaño máximo de %s",
		language.English: "The logo exceeds the maximum size of %s",
	},
	MsgUnsupportedImage: {
		language.Spanish: "El logo no es una imagen soportada",
		language.English: "The logo is not a supported image",
	},
	MsgInvalidLogo: {
		language.Spanish: "No se pudo leer el logo",
		language.English: "The logo could not be read",
	},
	MsgRenderFailed: {
		language.Spanish: "Error al generar el código QR",
		language.English: "Failed to generate the QR code",
	},
	MsgBodyTooLarge: {
		language.Spanish: "La solicitud supera el tamaño máximo de %s",
		language.English: "The request exceeds the maximum size of %s",
	},
	MsgMalformedBody: {
		language.Spanish: "Cuerpo de la solicitud inválido",
		language.English: "Malformed request body",
	},
	MsgUploadTooLarge: {
		language.Spanish: "El archivo supera el tamaño máximo de %s",
		language.English: "The file exceeds the maximum size of %s",
	},
	MsgStagingFailed: {
		language.Spanish: "No se pudo guardar el archivo",
		language.English: "The file could not be stored",
	},
	MsgCanceled: {
		language.Spanish: "La solicitud fue cancelada",
		language.English: "The request was canceled",
	},
}

var (
	supported = []language.Tag{language.Spanish, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = mustCatalog()
)

func mustCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Spanish))
	for key, byLang := range messages {
		for tag, msg := range byLang {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Printer returns a printer for locale. Unknown locales print Spanish.
func Printer(locale string) *message.Printer {
	tag := language.Spanish
	if l, ok := Match(locale); ok && l == English {
		tag = language.English
	}
	return message.NewPrinter(tag, message.Catalog(cat))
}

// Match maps a language tag or Accept-Language header to a supported
// locale. ok is false when nothing matches with any confidence.
func Match(header string) (locale string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	base, _ := supported[idx].Base()
	return base.String(), true
}

// Normalize returns locale when it is supported and fallback otherwise.
func Normalize(locale, fallback string) string {
	if l, ok := Match(locale); ok {
		return l
	}
	if l, ok := Match(fallback); ok {
		return l
	}
	return Spanish
}

var spanishSpeaking = map[string]struct{}{
	"AR": {}, "BO": {}, "CL": {}, "CO": {}, "CR": {}, "CU": {}, "DO": {}, "EC": {},
	"ES": {}, "GQ": {}, "GT": {}, "HN": {}, "MX": {}, "NI": {}, "PA": {}, "PE": {},
	"PR": {}, "PY": {}, "SV": {}, "UY": {}, "VE": {},
}

// ForCountry returns the locale for an ISO country code, or "" when the
// country is unknown.
func ForCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return ""
	}
	if _, ok := spanishSpeaking[country]; ok {
		return Spanish
	}
	return English
}
