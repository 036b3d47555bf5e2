package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"

	"qrstudio/internal/content"
	"qrstudio/internal/domain"
	"qrstudio/internal/generator"
	"qrstudio/internal/middleware"
)

// multipart parts above this size are spooled to temporary files
const maxMultipartMemory = 8 << 20

type qrCodeResponse struct {
	QRCodeImage string `json:"qrCodeImage"`
}

// GenerateQRCode accepts a JSON or multipart request and answers with the
// rendered code as a PNG data URI.
func (a *App) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := zerolog.Ctx(ctx)
	locale := middleware.LocaleFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxBodyBytes)
	req, err := a.decodeRequest(r)
	if err != nil {
		a.fail(w, r, locale, err)
		return
	}
	log.Info().
		Str("locale", locale).
		Str("country", middleware.CountryFromContext(ctx)).
		Object("request", generator.Summary(req, a.Config.LogFieldMaxChars)).
		Msg("generate qrcode")

	res, err := a.Generator.Generate(ctx, req)
	if err != nil {
		a.fail(w, r, locale, err)
		return
	}
	a.json(w, http.StatusOK, qrCodeResponse{QRCodeImage: res.DataURI})
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, locale string, err error) {
	code, msg := a.status(locale, err)
	ev := zerolog.Ctx(r.Context()).Warn()
	if code >= http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", code).Msg("generate qrcode failed")
	a.error(w, code, msg)
}

func (a *App) decodeRequest(r *http.Request) (*content.Request, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return a.decodeMultipart(r)
	}
	var req content.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, bodyError(err)
	}
	return &req, nil
}

// decodeMultipart maps form values onto the JSON field names. items travels
// as a JSON string; logo and file travel as file parts.
func (a *App) decodeMultipart(r *http.Request) (*content.Request, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, bodyError(err)
	}
	defer r.MultipartForm.RemoveAll()

	fields := make(map[string]any, len(r.MultipartForm.Value))
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		if key == "items" {
			fields[key] = json.RawMessage(values[0])
			continue
		}
		fields[key] = values[0]
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	var req content.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}

	if fh := firstFile(r.MultipartForm, "logo"); fh != nil {
		req.LogoFile, err = readPart(fh, a.Config.MaxLogoBytes)
		if errors.Is(err, errUploadTooLarge) {
			return nil, domain.RenderFailed("logo", domain.ErrLogoTooLarge)
		}
		if err != nil {
			return nil, err
		}
	}
	if fh := firstFile(r.MultipartForm, "file"); fh != nil {
		if kind, ok := content.ParseKind(req.Type); ok && kind == content.KindPDF {
			if req.File, err = a.stage(r, fh); err != nil {
				return nil, err
			}
		}
	}
	return &req, nil
}

func (a *App) stage(r *http.Request, fh *multipart.FileHeader) (string, error) {
	if fh.Size > a.Config.MaxUploadBytes {
		return "", errUploadTooLarge
	}
	data, err := readPart(fh, a.Config.MaxUploadBytes)
	if err != nil {
		return "", err
	}
	ref, err := a.Stager.Stage(r.Context(), fh.Filename, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errStaging, err)
	}
	zerolog.Ctx(r.Context()).Debug().Str("ref", ref).Int("bytes", len(data)).Msg("upload staged")
	return ref, nil
}

func firstFile(form *multipart.Form, key string) *multipart.FileHeader {
	if files := form.File[key]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// readPart reads fh, failing with errUploadTooLarge past limit bytes.
func readPart(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func bodyError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return err
	}
	return fmt.Errorf("%w: %v", errMalformedBody, err)
}
