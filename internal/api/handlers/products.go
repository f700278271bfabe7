package handlers

import (
	"net/http"
	"strconv"

	"github.com/ndmlabs/dealfeed/internal/store"
)

// ProductsHandler lists the catalog, newest first.
type ProductsHandler struct {
	Store store.Store
}

func (h ProductsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.Store == nil {
		writeError(w, http.StatusInternalServerError, "misconfigured", "handler dependencies not configured")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	products, err := h.Store.ListProducts(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": products,
		"count": len(products),
	})
}
