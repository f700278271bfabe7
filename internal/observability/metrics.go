package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ImportRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealfeed_import_runs_total",
			Help: "Completed CSV import runs",
		},
	)

	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealfeed_import_rows_total",
			Help: "CSV rows processed, by disposition",
		},
		[]string{"disposition"},
	)

	RedirectPlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dealfeed_redirect_plans_total",
			Help: "Redirect plans resolved, by platform",
		},
		[]string{"platform"},
	)

	PostsImportedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dealfeed_posts_imported_total",
			Help: "Blog posts ingested from HTML uploads",
		},
	)
)

func Register() {
	prometheus.MustRegister(ImportRunsTotal, ImportRowsTotal, RedirectPlansTotal, PostsImportedTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
