package metrics

import (
	"net/http"
	"time"

	"github.com/iyhunko/product-service/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer builds the metrics HTTP server exposing the /metrics endpoint.
// The caller owns its lifecycle (ListenAndServe / Shutdown).
func NewServer(conf *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              ":" + conf.MetricsServer.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
