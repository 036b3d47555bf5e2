// Package generator runs the request pipeline: validate, encode, render,
// decorate and assemble.
package generator

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"qrstudio/internal/content"
	"qrstudio/internal/domain"
	"qrstudio/internal/metrics"
	"qrstudio/internal/render"
)

// Result is the outcome of one successful generation.
type Result struct {
	Kind    content.Kind
	Payload string
	Image   image.Image
	PNG     []byte
	DataURI string
}

// Generator is stateless across requests and safe for concurrent use.
type Generator struct {
	renderer *render.Renderer
	metrics  *metrics.Metrics
}

func New(renderer *render.Renderer, m *metrics.Metrics) *Generator {
	return &Generator{renderer: renderer, metrics: m}
}

// Generate runs the whole pipeline for req. Any stage failure aborts the
// request; errors are *domain.ValidationError, *domain.RenderError or the
// context error.
func (g *Generator) Generate(ctx context.Context, req *content.Request) (res *Result, err error) {
	if req == nil {
		req = &content.Request{}
	}
	kind := "unknown"
	if k, ok := content.ParseKind(req.Type); ok {
		kind = k.String()
	}
	defer func() {
		g.metrics.CountRequest(kind, outcome(err))
	}()

	start := time.Now()
	c, err := content.Parse(req)
	if err != nil {
		return nil, err
	}
	deco, err := req.Decoration()
	if err != nil {
		return nil, err
	}
	g.metrics.ObserveStage("validate", start)

	start = time.Now()
	payload := content.Encode(c)
	g.metrics.ObserveStage("encode", start)
	g.metrics.ObservePayload(kind, len(payload))

	logo, err := logoBytes(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	// the logo hides the center modules, so ask for more redundancy
	level := qrcode.Medium
	if len(logo) > 0 {
		level = qrcode.High
	}
	img, err := g.renderer.Barcode(payload, deco.DotColor, render.White, level)
	if err != nil {
		return nil, err
	}
	g.metrics.ObserveStage("render", start)

	start = time.Now()
	if deco.HasFrame() {
		if img, err = g.renderer.Frame(img, deco.FrameText, deco.FrameColor); err != nil {
			return nil, err
		}
	}
	if len(logo) > 0 {
		if img, err = g.renderer.Logo(img, logo); err != nil {
			return nil, err
		}
	}
	g.metrics.ObserveStage("decorate", start)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	pngData, uri, err := render.Assemble(img)
	if err != nil {
		return nil, err
	}
	g.metrics.ObserveStage("assemble", start)

	zerolog.Ctx(ctx).Debug().
		Str("kind", kind).
		Int("payload_bytes", len(payload)).
		Bool("frame", deco.HasFrame()).
		Int("logo_bytes", len(logo)).
		Int("png_bytes", len(pngData)).
		Msg("qrcode generated")

	return &Result{Kind: c.Kind(), Payload: payload, Image: img, PNG: pngData, DataURI: uri}, nil
}

func logoBytes(req *content.Request) ([]byte, error) {
	if len(req.LogoFile) > 0 {
		return req.LogoFile, nil
	}
	if req.Logo == "" {
		return nil, nil
	}
	return render.DecodeBase64(req.Logo)
}

func outcome(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.As(err, &verr):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeRenderError
	}
}
