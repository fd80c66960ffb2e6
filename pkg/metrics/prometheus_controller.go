package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/commverse/community-sdk/pkg/application"
)

const defaultMetricsPath = "/debug/metrics"

// PrometheusController exposes the segment mutation counters on a scrape
// endpoint. Encoding errors are reported inline instead of aborting the
// scrape, so a single bad metric never blanks the whole page.
type PrometheusController struct {
	path string
}

func NewPrometheusController(path string) application.Controller {
	if path == "" {
		path = defaultMetricsPath
	}
	return &PrometheusController{path: path}
}

func (c *PrometheusController) Key() string {
	return "metrics:" + c.path
}

func (c *PrometheusController) Register(r *mux.Router) {
	handler := promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
	r.Handle(c.path, handler).Methods(http.MethodGet)
}
