package insights

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

type Probes interface {
	ListenAndServe()
	Shutdown()
	Handler() http.Handler
}

type Impl struct {
	server      *http.Server
	mux         *http.ServeMux
	isConnected func() bool
}

// Metrics observes run reports and exposes them as prometheus collectors.
type Metrics struct {
	registry      *prometheus.Registry
	collected     prometheus.Counter
	failedQueries prometheus.Counter
	persisted     *prometheus.CounterVec
	runs          prometheus.Counter
	runDuration   prometheus.Histogram
}
