package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"qrstudio/internal/generator"
	"qrstudio/internal/http/handlers"
	"qrstudio/internal/http/httpapi"
	"qrstudio/internal/infra"
	"qrstudio/internal/infra/geoip"
	"qrstudio/internal/metrics"
	"qrstudio/internal/render"
	"qrstudio/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "qrstudio-api")
	zerolog.DefaultContextLogger = &logger

	ctx := context.Background()
	stager, closeStager, err := newStager(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.UploadBackend).Msg("failed to initialise upload staging")
	}
	defer closeStager()

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	m := metrics.New()
	renderer := render.New(render.Options{MaxLogoBytes: cfg.MaxLogoBytes})
	app := handlers.NewApp(cfg, generator.New(renderer, m), stager, m)

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:        logger,
		DefaultLocale: cfg.DefaultLocale,
		Origins:       cfg.CORSAllowedOrigins,
		CountryLookup: resolver.Lookup(),
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("addr", server.Addr()).
			Str("upload_backend", cfg.UploadBackend).
			Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newStager prepares the upload backend once at startup: the directory for
// the filesystem store, the table for the postgres store.
func newStager(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (storage.Stager, func(), error) {
	if cfg.UploadBackend != infra.UploadBackendPostgres {
		store, err := storage.NewFileStore(cfg.UploadDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewPostgresStore(infra.NewSQLRunner(pool, logger))
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
