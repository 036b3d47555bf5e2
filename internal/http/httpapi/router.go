package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"qrstudio/internal/http/handlers"
	"qrstudio/internal/middleware"
)

// Options carries the collaborators of the middleware chain.
type Options struct {
	Logger        zerolog.Logger
	DefaultLocale string
	Origins       []string
	CountryLookup middleware.CountryLookup
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.Origins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.Get("/metrics", app.PrometheusMetrics)

	r.Post("/generate-qrcode", app.GenerateQRCode)

	return r
}
