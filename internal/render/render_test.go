package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	gozxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"qrstudio/internal/domain"
)

var black = color.RGBA{A: 0xff}

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

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBarcodeSizeAndRoundTrip(t *testing.T) {
	r := New(Options{})
	payload := "BEGIN:VCARD\nVERSION:3.0\nFN:José Pérez\nTEL:+34 600 000 000\nEMAIL:jose@example.com\nEND:VCARD"

	img, err := r.Barcode(payload, color.RGBA{R: 0x1e, G: 0x2a, B: 0x6b, A: 0xff}, White, qrcode.Medium)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, DefaultSize, DefaultSize), img.Bounds())
	assert.Equal(t, payload, decodeQR(t, img))
}

func TestBarcodeIsDeterministic(t *testing.T) {
	r := New(Options{})
	a, err := r.Barcode("WIFI:T:WPA;S:Home;P:;H:;", black, White, qrcode.High)
	require.NoError(t, err)
	b, err := r.Barcode("WIFI:T:WPA;S:Home;P:;H:;", black, White, qrcode.High)
	require.NoError(t, err)
	assert.Equal(t, encodePNG(t, a), encodePNG(t, b))
}

func TestBarcodeFallsBackToLowerLevel(t *testing.T) {
	r := New(Options{})
	// too long for High, fits at Low
	payload := strings.Repeat("x", 2000)
	img, err := r.Barcode(payload, black, White, qrcode.High)
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestBarcodeRejectsOversizedPayload(t *testing.T) {
	r := New(Options{})
	_, err := r.Barcode(strings.Repeat("x", MaxPayloadBytes+1), black, White, qrcode.Medium)
	var rerr *domain.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, domain.ErrPayloadTooLong)

	_, err = r.Barcode("", black, White, qrcode.Medium)
	assert.ErrorAs(t, err, &rerr)
}

func TestFrameExtendsCanvas(t *testing.T) {
	r := New(Options{})
	base, err := r.Barcode("https://example.com", black, White, qrcode.Medium)
	require.NoError(t, err)

	fill := color.RGBA{R: 0xff, G: 0xd7, A: 0xff}
	framed, err := r.Frame(base, "Escanéame", fill)
	require.NoError(t, err)

	assert.Equal(t, DefaultSize, framed.Bounds().Dx())
	assert.Equal(t, DefaultSize+DefaultFrameHeight, framed.Bounds().Dy())
	assert.Equal(t, fill, framed.RGBAAt(1, DefaultSize+1))
	assert.Equal(t, fill, framed.RGBAAt(DefaultSize-2, DefaultSize+DefaultFrameHeight-2))

	inked := false
	for y := DefaultSize; y < DefaultSize+DefaultFrameHeight && !inked; y++ {
		for x := 0; x < DefaultSize; x++ {
			if c := framed.RGBAAt(x, y); c.R < 0x40 && c.G < 0x40 {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "caption not drawn")

	// ink stays in the lower part of the band
	top := -1
	for y := DefaultSize; y < DefaultSize+DefaultFrameHeight && top < 0; y++ {
		for x := 0; x < DefaultSize; x++ {
			if c := framed.RGBAAt(x, y); c.R < 0x40 && c.G < 0x40 {
				top = y
				break
			}
		}
	}
	assert.Greater(t, top, DefaultSize+8, "caption starts too high")

	// the barcode region is copied unchanged
	assert.Equal(t, "https://example.com", decodeQR(t, framed))
}

func TestFrameShrinksLongCaption(t *testing.T) {
	r := New(Options{})
	base := solidImage(DefaultSize, DefaultSize, White)
	_, err := r.Frame(base, strings.Repeat("Texto largo ", 10), White)
	require.NoError(t, err)
}

func TestCaptionDot(t *testing.T) {
	band := image.Rect(0, DefaultSize, DefaultSize, DefaultSize+DefaultFrameHeight)
	dot := captionDot(band, fixed.I(100), font.Metrics{Ascent: fixed.I(28), Descent: fixed.I(6)})
	assert.Equal(t, fixed.I(200), dot.X)
	assert.Equal(t, fixed.I(DefaultSize+DefaultFrameHeight-captionBottomMargin-6), dot.Y)
}

func TestLogoIsCentered(t *testing.T) {
	r := New(Options{})
	base := solidImage(DefaultSize, DefaultSize+DefaultFrameHeight, White)
	red := color.RGBA{R: 0xff, A: 0xff}
	logo := encodePNG(t, solidImage(200, 100, red))

	out, err := r.Logo(base, logo)
	require.NoError(t, err)
	assert.Equal(t, base.Bounds(), out.Bounds())

	// 200x100 scales to 50x25 around (250, 250)
	assert.Equal(t, red, out.RGBAAt(250, 250))
	assert.Equal(t, red, out.RGBAAt(226, 238))
	assert.Equal(t, White, out.RGBAAt(250, 230))
	assert.Equal(t, White, out.RGBAAt(220, 250))
	// base untouched
	assert.Equal(t, White, base.RGBAAt(250, 250))
}

func TestLogoAcceptsJPEG(t *testing.T) {
	r := New(Options{})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(64, 64, color.RGBA{B: 0xff, A: 0xff}), nil))
	_, err := r.Logo(solidImage(DefaultSize, DefaultSize, White), buf.Bytes())
	require.NoError(t, err)
}

func TestLogoErrors(t *testing.T) {
	r := New(Options{MaxLogoBytes: 1024})
	base := solidImage(DefaultSize, DefaultSize, White)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not an image", []byte("this is not an image"), domain.ErrUnsupportedImage},
		{"too large", bytes.Repeat([]byte{0x89}, 2048), domain.ErrLogoTooLarge},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Logo(base, tc.data)
			var rerr *domain.RenderError
			require.ErrorAs(t, err, &rerr)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("truncated png", func(t *testing.T) {
		data := encodePNG(t, solidImage(10, 10, White))
		_, err := r.Logo(base, data[:40])
		var rerr *domain.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "logo", rerr.Op)
	})
}

func TestLogoRejectsOversizedDimensions(t *testing.T) {
	r := New(Options{})
	base := solidImage(DefaultSize, DefaultSize, White)

	// a wide grayscale canvas compresses to a few hundred bytes
	data := encodePNG(t, image.NewGray(image.Rect(0, 0, MaxLogoSide+1, 4)))
	require.Less(t, len(data), 4096)

	_, err := r.Logo(base, data)
	var rerr *domain.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "logo", rerr.Op)
	assert.ErrorIs(t, err, domain.ErrLogoTooLarge)

	_, err = r.Logo(base, encodePNG(t, image.NewGray(image.Rect(0, 0, 4, MaxLogoSide+1))))
	assert.ErrorIs(t, err, domain.ErrLogoTooLarge)

	_, err = r.Logo(base, encodePNG(t, solidImage(MaxLogoSide, 2, White)))
	require.NoError(t, err)
}

func TestFitRect(t *testing.T) {
	assert.Equal(t, image.Rect(-25, -25, 25, 25), fitRect(image.Rect(0, 0, 10, 10), 50))
	assert.Equal(t, image.Rect(-12, -25, 13, 25), fitRect(image.Rect(0, 0, 100, 200), 50))
	assert.Equal(t, image.Rectangle{}, fitRect(image.Rectangle{}, 50))
}

func TestDecodeBase64(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G'}
	enc := base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeBase64(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBase64("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBase64(strings.TrimRight(enc, "="))
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	urlSafe := []byte{0xfb, 0xff, 0xfe}
	for _, enc := range []string{
		base64.URLEncoding.EncodeToString(urlSafe),
		base64.RawURLEncoding.EncodeToString(urlSafe),
	} {
		got, err = DecodeBase64(enc)
		require.NoError(t, err, enc)
		assert.Equal(t, urlSafe, got)
	}

	_, err = DecodeBase64("%%%")
	var rerr *domain.RenderError
	assert.ErrorAs(t, err, &rerr)
}

func TestAssemble(t *testing.T) {
	img := solidImage(8, 8, White)
	raw, uri, err := Assemble(img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	back, err := png.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
}
