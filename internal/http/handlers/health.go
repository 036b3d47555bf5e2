package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PrometheusMetrics serves the registry of a.Metrics, or 404 when metrics
// are disabled.
func (a *App) PrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	if a.Metrics == nil {
		http.NotFound(w, r)
		return
	}
	a.Metrics.Handler().ServeHTTP(w, r)
}
