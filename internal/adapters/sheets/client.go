// Package sheets adapts a Google Sheets spreadsheet as a row-oriented
// remote table. Worksheets are named grids whose first row is the header;
// all row indices in this package are zero-based positions into the data
// region below the header.
package sheets

import "context"

// Client provides ordered row access to named worksheets of one
// spreadsheet. Implementations perform no retries; retry policy belongs to
// the caller. All operations are remote and latency-bearing.
type Client interface {
	// ListRows returns every data row of the worksheet in sheet order.
	ListRows(ctx context.Context, worksheet string) ([][]string, error)

	// AppendRow adds one row at the end of the worksheet.
	AppendRow(ctx context.Context, worksheet string, row []string) error

	// UpdateRow replaces the row at the given position in full.
	UpdateRow(ctx context.Context, worksheet string, index int, row []string) error

	// DeleteRow removes the row at the given position.
	DeleteRow(ctx context.Context, worksheet string, index int) error

	// EnsureWorksheet creates the worksheet with the given header row if it
	// does not exist yet. Idempotent.
	EnsureWorksheet(ctx context.Context, worksheet string, header []string) error
}
