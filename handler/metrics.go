package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsHandler struct{}

func NewMetricsHandler() MetricsHandler {
	return MetricsHandler{}
}

// ServeHTTP exposes the Prometheus registry directly. It bypasses the JSON
// error handling since Prometheus speaks its own format.
func (h MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
