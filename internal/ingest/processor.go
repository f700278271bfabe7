package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ndmlabs/dealfeed/internal/domain"
)

var (
	// ErrTooFewLines aborts a run whose file has no header or no data rows.
	ErrTooFewLines = errors.New("csv file must contain a header row and at least one data row")

	// ErrNoValidRows aborts a run in which every data row failed validation.
	ErrNoValidRows = errors.New("no valid products found in csv file")
)

// Catalog is the slice of the store the pipeline needs. The duplicate check
// and the insert are two separate calls; rows are submitted one at a time,
// which keeps the check race-free for single-operator uploads.
type Catalog interface {
	ProductExistsByModel(ctx context.Context, modelNumber string) (bool, error)
	InsertProduct(ctx context.Context, p domain.Product) error
}

// Stats is the per-run accounting surfaced to the operator. After a full
// run ValidRows + Duplicates + Errors == TotalRows.
type Stats struct {
	TotalRows  int `json:"total_rows"`
	ValidRows  int `json:"valid_rows"`
	Duplicates int `json:"duplicates"`
	Errors     int `json:"errors"`
}

// RowResult is the terminal outcome of one data row.
type RowResult struct {
	Row         int                   `json:"row"`
	ModelNumber string                `json:"model_number,omitempty"`
	Disposition domain.RowDisposition `json:"disposition"`
	Reason      string                `json:"reason,omitempty"`
	Issues      []Issue               `json:"issues,omitempty"`
}

// Report is the result of one import run.
type Report struct {
	RunID   string      `json:"run_id"`
	Stats   Stats       `json:"stats"`
	Rows    []RowResult `json:"rows"`
	Errors  []string    `json:"errors,omitempty"`
	Message string      `json:"message"`
}

// Processor turns one CSV document into validated catalog inserts,
// tolerating per-row failures without aborting the batch.
type Processor struct {
	Catalog Catalog
	Tag     string
	Logger  *log.Logger
	Now     func() time.Time // defaults to time.Now
}

type candidate struct {
	row     int
	product domain.Product
}

// Run executes the full pipeline: read, parse header, validate and
// transform each row, then submit candidates sequentially. The returned
// error is non-nil only when the whole run aborts; it is ErrTooFewLines or
// ErrNoValidRows for input-shape aborts, in which case the Report still
// carries whatever stats and row errors accumulated.
func (p Processor) Run(ctx context.Context, text string) (Report, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	runID, err := NewRunID()
	if err != nil {
		return Report{}, err
	}

	report := Report{RunID: runID}

	lines := splitLines(text)
	p.logf("run %s: csv read, %d non-blank lines", runID, len(lines))
	if len(lines) < 2 {
		return report, ErrTooFewLines
	}

	headers := NormalizeHeaders(SplitLine(lines[0]))
	p.logf("run %s: headers: %s", runID, strings.Join(headers, ", "))
	if unknown := unknownHeaders(headers); len(unknown) > 0 {
		p.logf("run %s: ignoring unknown headers: %s", runID, strings.Join(unknown, ", "))
	}

	report.Stats.TotalRows = len(lines) - 1

	var candidates []candidate
	for i, line := range lines[1:] {
		rowNum := i + 1

		values := SplitLine(line)
		if len(values) != len(headers) {
			msg := fmt.Sprintf("Row %d: column count mismatch. Expected %d, got %d", rowNum, len(headers), len(values))
			p.logf("run %s: %s", runID, msg)
			report.Errors = append(report.Errors, msg)
			report.Rows = append(report.Rows, RowResult{
				Row:         rowNum,
				Disposition: domain.RowDispositionRejected,
				Reason:      "column_count_mismatch",
			})
			report.Stats.Errors++
			continue
		}

		row := rowFromValues(headers, values)

		if issues := validateRow(row, p.Tag); len(issues) > 0 {
			for _, issue := range issues {
				msg := fmt.Sprintf("Row %d: %s", rowNum, issue.Message)
				report.Errors = append(report.Errors, msg)
				p.logf("run %s: %s", runID, msg)
			}
			report.Rows = append(report.Rows, RowResult{
				Row:         rowNum,
				ModelNumber: row.ModelNumber,
				Disposition: domain.RowDispositionRejected,
				Reason:      "validation_failed",
				Issues:      issues,
			})
			report.Stats.Errors++
			continue
		}

		product, err := toProduct(row, p.Tag, now().UTC())
		if err != nil {
			msg := fmt.Sprintf("Row %d: %s", rowNum, err.Error())
			report.Errors = append(report.Errors, msg)
			p.logf("run %s: %s", runID, msg)
			report.Rows = append(report.Rows, RowResult{
				Row:         rowNum,
				ModelNumber: row.ModelNumber,
				Disposition: domain.RowDispositionRejected,
				Reason:      "transform_failed",
			})
			report.Stats.Errors++
			continue
		}

		candidates = append(candidates, candidate{row: rowNum, product: product})
		report.Stats.ValidRows++
	}

	if len(candidates) == 0 {
		p.logf("run %s: no valid products found", runID)
		return report, ErrNoValidRows
	}

	p.logf("run %s: %d valid products to upload", runID, len(candidates))

	var inserted, skipped, failed int
	for _, c := range candidates {
		result := p.submit(ctx, runID, c)
		report.Rows = append(report.Rows, result)

		switch result.Disposition {
		case domain.RowDispositionInserted:
			inserted++
		case domain.RowDispositionDuplicate:
			skipped++
			report.Stats.ValidRows--
			report.Stats.Duplicates++
		case domain.RowDispositionFailed:
			failed++
			report.Stats.ValidRows--
			report.Stats.Errors++
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to upload %q: %s", c.product.Title, result.Reason))
		}
	}

	report.Message = summaryMessage(inserted, skipped, failed)
	p.logf("run %s: %s", runID, report.Message)
	return report, nil
}

// submit uploads one candidate: duplicate check first, then insert. A
// failed duplicate check is logged and treated as "not a duplicate" so the
// insert still gets its chance; the store will reject it if need be.
func (p Processor) submit(ctx context.Context, runID string, c candidate) RowResult {
	result := RowResult{Row: c.row, ModelNumber: c.product.ModelNumber}

	exists, err := p.Catalog.ProductExistsByModel(ctx, c.product.ModelNumber)
	if err != nil {
		p.logf("run %s: error checking for duplicate %s: %v", runID, c.product.ModelNumber, err)
		exists = false
	}
	if exists {
		p.logf("run %s: skipping duplicate model: %s", runID, c.product.ModelNumber)
		result.Disposition = domain.RowDispositionDuplicate
		result.Reason = "duplicate_model_number"
		return result
	}

	p.logf("run %s: uploading product: %s", runID, c.product.ModelNumber)
	if err := p.Catalog.InsertProduct(ctx, c.product); err != nil {
		p.logf("run %s: error uploading product %s: %v", runID, c.product.ModelNumber, err)
		result.Disposition = domain.RowDispositionFailed
		result.Reason = err.Error()
		return result
	}

	p.logf("run %s: successfully uploaded product: %s", runID, c.product.ModelNumber)
	result.Disposition = domain.RowDispositionInserted
	return result
}

func summaryMessage(inserted, skipped, failed int) string {
	parts := make([]string, 0, 3)
	if inserted > 0 {
		parts = append(parts, fmt.Sprintf("Successfully uploaded %d products", inserted))
	}
	if skipped > 0 {
		parts = append(parts, fmt.Sprintf("Skipped %d duplicates", skipped))
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("Failed to upload %d products", failed))
	}
	if len(parts) == 0 {
		return "No products uploaded"
	}
	return strings.Join(parts, ", ")
}

func (p Processor) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
