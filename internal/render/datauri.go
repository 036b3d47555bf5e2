package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"qrstudio/internal/domain"
)

const dataURIPrefix = "data:image/png;base64,"

// Assemble encodes img as PNG and returns both the raw bytes and the
// matching data URI.
func Assemble(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", domain.RenderFailed("encode", err)
	}
	return buf.Bytes(), DataURI(buf.Bytes()), nil
}

// DataURI wraps PNG bytes in a data URI.
func DataURI(pngData []byte) string {
	return dataURIPrefix + base64.StdEncoding.EncodeToString(pngData)
}
