package generator

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrstudio/internal/content"
	"qrstudio/internal/domain"
	"qrstudio/internal/metrics"
	"qrstudio/internal/render"
)

func newGenerator() (*Generator, *metrics.Metrics) {
	m := metrics.New()
	return New(render.New(render.Options{}), m), m
}

func decodeQR(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_CHARACTER_SET: "UTF-8",
		gozxing.DecodeHintType_TRY_HARDER:    true,
	}
	result, err := gozxingqr.NewQRCodeReader().Decode(bmp, hints)
	require.NoError(t, err)
	return result.GetText()
}

func logoPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, red)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateRoundTripPerKind(t *testing.T) {
	g, _ := newGenerator()
	tests := []struct {
		name string
		req  content.Request
		want string
	}{
		{
			name: "wifi",
			req:  content.Request{Type: "WiFi", SSID: "Cafe", Password: "secret"},
			want: "WIFI:T:WPA;S:Cafe;P:secret;H:;",
		},
		{
			name: "menu",
			req: content.Request{Type: "Menu", Items: []content.MenuItem{
				{Name: "Tacos", Price: "5"},
				{Name: "Agua", Price: "1.50", Link: "https://x.mx/agua"},
			}},
			want: "1. Tacos - 5 ()\n2. Agua - 1.50 (https://x.mx/agua)",
		},
		{
			name: "website",
			req:  content.Request{Type: "Website", Text: "https://example.com"},
			want: "https://example.com",
		},
		{
			name: "pdf",
			req:  content.Request{Type: "PDF", Text: "https://example.com/a.pdf", Title: "Carta"},
			want: "Título: Carta\nPDF URL: https://example.com/a.pdf",
		},
		{
			name: "vcard",
			req:  content.Request{Type: "VCard", Name: "Ana", Phone: "123", Email: "a@b.c"},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Ana\nTEL:123\nEMAIL:a@b.c\nEND:VCARD",
		},
		{
			name: "coupon",
			req:  content.Request{Type: "Coupon", CouponCode: "SAVE10", Discount: "10%"},
			want: "Cupón: SAVE10\nDescuento: 10%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := g.Generate(context.Background(), &tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Payload)
			assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))

			raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(res.DataURI, "data:image/png;base64,"))
			require.NoError(t, err)
			assert.Equal(t, res.PNG, raw)

			img, err := png.Decode(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, render.DefaultSize, render.DefaultSize), img.Bounds())
			assert.Equal(t, tt.want, decodeQR(t, img))
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g, _ := newGenerator()
	req := content.Request{Type: "Website", Text: "https://example.com", FrameText: "Escanéame", DotColor: "#123456"}

	first, err := g.Generate(context.Background(), &req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, first.DataURI, second.DataURI)
}

func TestGenerateFrameAndLogo(t *testing.T) {
	g, _ := newGenerator()
	plain, err := g.Generate(context.Background(), &content.Request{Type: "Website", Text: "https://example.com"})
	require.NoError(t, err)

	req := content.Request{
		Type:       "Website",
		Text:       "https://example.com",
		FrameText:  "Scan me",
		FrameColor: "#00FF00",
		Logo:       "data:image/png;base64," + base64.StdEncoding.EncodeToString(logoPNG(t)),
	}
	res, err := g.Generate(context.Background(), &req)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 500, 550), img.Bounds())

	r, gg, b, _ := img.At(250, 250).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, gg, b}, "logo sits at the center of the code")
	assert.NotEqual(t, plain.Image.At(250, 250), img.At(250, 250))

	_, gg, _, _ = img.At(2, 548).RGBA()
	assert.Equal(t, uint32(0xffff), gg, "frame band uses frameColor")

	assert.Equal(t, "https://example.com", decodeQR(t, img))
}

func TestGenerateLogoFileWinsOverBase64(t *testing.T) {
	g, _ := newGenerator()
	req := content.Request{Type: "Website", Text: "https://example.com", Logo: "%%%not-base64", LogoFile: logoPNG(t)}

	_, err := g.Generate(context.Background(), &req)
	require.NoError(t, err)
}

func TestGeneratePDFFilePrecedence(t *testing.T) {
	g, _ := newGenerator()
	req := content.Request{Type: "PDF", Text: "https://example.com/a.pdf", File: "uploads/1700000000000-abc-menu.pdf"}

	res, err := g.Generate(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, "Archivo PDF: uploads/1700000000000-abc-menu.pdf", res.Payload)
	assert.NotContains(t, res.Payload, "PDF URL")
}

func TestGenerateErrors(t *testing.T) {
	g, m := newGenerator()

	_, err := g.Generate(context.Background(), &content.Request{Type: "VCard", Name: "Ana"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"phone", "email"}, verr.Fields)

	_, err = g.Generate(context.Background(), &content.Request{Type: "Invoice"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "Invoice")

	_, err = g.Generate(context.Background(), &content.Request{Type: "Website", Text: "x", DotColor: "nope"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"dotColor"}, verr.Fields)

	_, err = g.Generate(context.Background(), &content.Request{Type: "Website", Text: "x", Logo: "aGVsbG8gd29ybGQ="})
	var rerr *domain.RenderError
	require.ErrorAs(t, err, &rerr)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("unknown", metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("VCard", metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("Website", metrics.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("Website", metrics.OutcomeRenderError)))
}

func TestGenerateStopsOnCanceledContext(t *testing.T) {
	g, _ := newGenerator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := g.Generate(ctx, &content.Request{Type: "Website", Text: "https://example.com"})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWithoutMetrics(t *testing.T) {
	g := New(render.New(render.Options{}), nil)
	_, err := g.Generate(context.Background(), &content.Request{Type: "Coupon", CouponCode: "A", Discount: "5"})
	require.NoError(t, err)
}

func TestSummaryBoundsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	req := content.Request{
		Type:     "WiFi",
		SSID:     strings.Repeat("ñ", 20),
		Password: "hunter2",
		LogoFile: make([]byte, 2048),
	}

	logger.Info().Object("request", Summary(&req, 5)).Msg("generate")

	var line struct {
		Request map[string]any `json:"request"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WiFi", line.Request["type"])
	assert.Equal(t, "ñññññ…", line.Request["ssid"])
	assert.Equal(t, true, line.Request["password_set"])
	assert.Equal(t, float64(2048), line.Request["logo_bytes"])
	assert.NotContains(t, buf.String(), "hunter2")
	assert.NotContains(t, line.Request, "text")
}
