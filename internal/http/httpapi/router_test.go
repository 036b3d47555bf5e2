package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrstudio/internal/generator"
	"qrstudio/internal/http/handlers"
	"qrstudio/internal/infra"
	"qrstudio/internal/metrics"
	"qrstudio/internal/render"
	"qrstudio/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &infra.Config{MaxBodyBytes: 1 << 20, MaxLogoBytes: 1 << 20, MaxUploadBytes: 1 << 20}
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	m := metrics.New()
	app := handlers.NewApp(cfg, generator.New(render.New(render.Options{}), m), store, m)
	return NewRouter(app, Options{
		Logger:        zerolog.Nop(),
		DefaultLocale: "es",
		Origins:       []string{"*"},
		CountryLookup: func(string) (string, error) { return "US", nil },
	})
}

func TestRouterGenerate(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-qrcode", strings.NewReader(`{"type":"Website","text":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body["qrCodeImage"], "data:image/png;base64,"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `qrcode_requests_total{kind="Website",outcome="ok"} 1`)
}

func TestRouterLocaleFromGeoIP(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-qrcode", bytes.NewReader([]byte(`{"type":"Invoice"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Unsupported QR type: Invoice"}`, rec.Body.String())
}

func TestRouterHealthAndPreflight(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/generate-qrcode", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate-qrcode", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
