package domain

// RowDisposition is the terminal outcome of one CSV data row.
type RowDisposition string

const (
	RowDispositionRejected  RowDisposition = "rejected"
	RowDispositionInserted  RowDisposition = "inserted"
	RowDispositionDuplicate RowDisposition = "skipped_duplicate"
	RowDispositionFailed    RowDisposition = "failed"
)
