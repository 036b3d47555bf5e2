package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"qrstudio/internal/domain"
	"qrstudio/internal/i18n"
)

var (
	errMalformedBody  = errors.New("malformed request body")
	errUploadTooLarge = errors.New("upload too large")
	errStaging        = errors.New("staging failed")
)

// status maps a pipeline or transport error to the HTTP status and the
// localized message returned to the client.
func (a *App) status(locale string, err error) (int, string) {
	p := i18n.Printer(locale)

	var (
		maxBytes *http.MaxBytesError
		verr     *domain.ValidationError
		rerr     *domain.RenderError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, p.Sprintf(i18n.MsgBodyTooLarge, humanize.Bytes(uint64(maxBytes.Limit)))
	case errors.Is(err, errUploadTooLarge):
		return http.StatusRequestEntityTooLarge, p.Sprintf(i18n.MsgUploadTooLarge, humanize.Bytes(uint64(a.Config.MaxUploadBytes)))
	case errors.Is(err, errMalformedBody):
		return http.StatusBadRequest, p.Sprintf(i18n.MsgMalformedBody)
	case errors.Is(err, errStaging):
		return http.StatusInternalServerError, p.Sprintf(i18n.MsgStagingFailed)
	case errors.As(err, &verr):
		return http.StatusBadRequest, validationMessage(locale, verr)
	case errors.As(err, &rerr):
		return http.StatusBadRequest, a.renderMessage(locale, rerr)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, p.Sprintf(i18n.MsgCanceled)
	default:
		return http.StatusInternalServerError, p.Sprintf(i18n.MsgRenderFailed)
	}
}

func validationMessage(locale string, err *domain.ValidationError) string {
	p := i18n.Printer(locale)
	fields := strings.Join(err.Fields, ", ")
	switch {
	case errors.Is(err, domain.ErrMissingType):
		return p.Sprintf(i18n.MsgTypeRequired)
	case errors.Is(err, domain.ErrUnsupportedType):
		return p.Sprintf(i18n.MsgTypeUnsupported, err.Kind)
	case errors.Is(err, domain.ErrInvalidColor):
		return p.Sprintf(i18n.MsgInvalidColor, fields)
	default:
		return p.Sprintf(i18n.MsgMissingFields, err.Kind, fields)
	}
}

func (a *App) renderMessage(locale string, err *domain.RenderError) string {
	p := i18n.Printer(locale)
	switch {
	case errors.Is(err, domain.ErrPayloadTooLong):
		return p.Sprintf(i18n.MsgPayloadTooLong)
	case errors.Is(err, domain.ErrLogoTooLarge):
		return p.Sprintf(i18n.MsgLogoTooLarge, humanize.Bytes(uint64(a.Config.MaxLogoBytes)))
	case errors.Is(err, domain.ErrUnsupportedImage):
		return p.Sprintf(i18n.MsgUnsupportedImage)
	case err.Op == "logo":
		return p.Sprintf(i18n.MsgInvalidLogo)
	default:
		return p.Sprintf(i18n.MsgRenderFailed)
	}
}
