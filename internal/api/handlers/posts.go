package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ndmlabs/dealfeed/internal/observability"
	"github.com/ndmlabs/dealfeed/internal/posts"
)

const maxPostBytes = 8 << 20

// PostImportHandler ingests one exported HTML document as a blog post.
type PostImportHandler struct {
	Service posts.Service
}

func (h PostImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw, err := readHTMLPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", err.Error())
		return
	}

	post, err := h.Service.ImportHTML(r.Context(), raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "import_failed", err.Error())
		return
	}

	observability.PostsImportedTotal.Inc()
	writeJSON(w, http.StatusCreated, post)
}

func readHTMLPayload(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxPostBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxPostBytes); err != nil {
			return "", errors.New("could not parse multipart form")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", errors.New(`multipart upload must include a "file" field`)
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".html" && ext != ".htm" {
			return "", errors.New("only .html uploads are accepted")
		}

		raw, err := io.ReadAll(file)
		if err != nil {
			return "", errors.New("could not read uploaded file")
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.New("could not read request body")
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "", errors.New("request body is empty")
	}
	return string(raw), nil
}

// PostsHandler serves the post list and individual posts by slug under
// /v1/posts and /v1/posts/{slug}.
type PostsHandler struct {
	Service posts.Service
}

func (h PostsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/posts"), "/")
	if slug == "" {
		h.list(w, r)
		return
	}
	if strings.Contains(slug, "/") {
		writeError(w, http.StatusNotFound, "not_found", "invalid path")
		return
	}
	h.get(w, r, slug)
}

func (h PostsHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	items, err := h.Service.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

func (h PostsHandler) get(w http.ResponseWriter, r *http.Request, slug string) {
	post, ok, err := h.Service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get_failed", err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
