package handlers

import (
	"net/http"

	"github.com/ndmlabs/dealfeed/internal/observability"
	"github.com/ndmlabs/dealfeed/internal/redirect"
)

// RedirectPlanHandler resolves a navigation plan for one deal URL. The
// client passes the visitor's user agent in the "ua" parameter when it
// proxies for a browser; otherwise the request's own User-Agent is used.
type RedirectPlanHandler struct {
	Resolver redirect.Resolver
}

func (h RedirectPlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	dealURL := r.URL.Query().Get("url")
	if dealURL == "" {
		writeError(w, http.StatusBadRequest, "missing_url", `query parameter "url" is required`)
		return
	}

	ua := r.URL.Query().Get("ua")
	if ua == "" {
		ua = r.UserAgent()
	}

	plan := h.Resolver.Resolve(dealURL, ua)
	observability.RedirectPlansTotal.WithLabelValues(string(plan.Platform)).Inc()

	writeJSON(w, http.StatusOK, plan)
}
