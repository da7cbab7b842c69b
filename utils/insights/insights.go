package insights

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tweet-collector/models/constants"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func NewProbes(port int, isConnected func() bool, metrics *Metrics) *Impl {
	mux := http.NewServeMux()
	probes := &Impl{
		mux:         mux,
		isConnected: isConnected,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	mux.HandleFunc("/healthz", probes.healthz)
	if metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
	}

	return probes
}

func (probes *Impl) Handler() http.Handler {
	return probes.mux
}

// ListenAndServe blocks until the server is shut down.
func (probes *Impl) ListenAndServe() {
	log.Info().Str(constants.LogProbeAddr, probes.server.Addr).Msg("Probes listening")
	if err := probes.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Probes stopped unexpectedly")
	}
}

func (probes *Impl) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := probes.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Cannot shutdown probes, continuing...")
	}
}

func (probes *Impl) healthz(w http.ResponseWriter, _ *http.Request) {
	if !probes.isConnected() {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
