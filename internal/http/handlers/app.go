package handlers

import (
	"encoding/json"
	"net/http"

	"qrstudio/internal/generator"
	"qrstudio/internal/infra"
	"qrstudio/internal/metrics"
	"qrstudio/internal/storage"
)

type App struct {
	Config    *infra.Config
	Generator *generator.Generator
	Stager    storage.Stager
	Metrics   *metrics.Metrics
}

func NewApp(cfg *infra.Config, gen *generator.Generator, stager storage.Stager, m *metrics.Metrics) *App {
	return &App{Config: cfg, Generator: gen, Stager: stager, Metrics: m}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, errorResponse{Error: message})
}
