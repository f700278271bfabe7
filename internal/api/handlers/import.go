package handlers

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ndmlabs/dealfeed/internal/ingest"
	"github.com/ndmlabs/dealfeed/internal/observability"
)

const maxImportBytes = 16 << 20

// ImportHandler accepts a product CSV, either as a raw text/csv request
// body or as a multipart upload under the "file" field, and runs it
// through the ingest pipeline. The full per-row report is returned either
// way; only input-shape problems produce a non-200 status.
type ImportHandler struct {
	Processor ingest.Processor
	Logger    *log.Logger
}

func (h ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	text, err := readCSVPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_upload", err.Error())
		return
	}

	report, runErr := h.Processor.Run(r.Context(), text)

	observability.ImportRunsTotal.Inc()
	for _, row := range report.Rows {
		observability.ImportRowsTotal.WithLabelValues(string(row.Disposition)).Inc()
	}

	switch {
	case errors.Is(runErr, ingest.ErrTooFewLines):
		writeJSON(w, http.StatusBadRequest, report)
	case errors.Is(runErr, ingest.ErrNoValidRows):
		writeJSON(w, http.StatusUnprocessableEntity, report)
	case runErr != nil:
		if h.Logger != nil {
			h.Logger.Printf("import run failed: %v", runErr)
		}
		writeError(w, http.StatusInternalServerError, "import_failed", runErr.Error())
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

// readCSVPayload pulls the CSV text out of either upload shape and
// rejects files that are clearly not CSV before any parsing happens.
func readCSVPayload(r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportBytes)

	ct := r.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(ct)

	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return "", errors.New("could not parse multipart form")
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", errors.New(`multipart upload must include a "file" field`)
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".csv" && ext != ".txt" {
			return "", errors.New("only .csv uploads are accepted")
		}

		raw, err := io.ReadAll(file)
		if err != nil {
			return "", errors.New("could not read uploaded file")
		}
		return string(raw), nil
	}

	switch mediaType {
	case "text/csv", "text/plain", "application/octet-stream", "":
	default:
		return "", errors.New("content type must be text/csv or multipart/form-data")
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.New("could not read request body")
	}
	return string(raw), nil
}
