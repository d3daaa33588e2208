package sheets

import "errors"

// Sentinel kinds for remote table errors. Callers branch on these with
// errors.Is; the wrapped message carries the backend detail.
var (
	// ErrConnectivity marks transient transport, quota, or auth failures.
	// The only kind a caller may retry.
	ErrConnectivity = errors.New("sheets backend unreachable")

	// ErrWorksheetNotFound marks an operation against a missing worksheet.
	// Recoverable via EnsureWorksheet.
	ErrWorksheetNotFound = errors.New("worksheet not found")

	// ErrOutOfRange marks a row position that no longer exists.
	ErrOutOfRange = errors.New("row index out of range")

	// ErrValidation marks a row that does not match the worksheet columns.
	ErrValidation = errors.New("row does not match worksheet columns")

	// ErrConflict marks a detected concurrent modification of the worksheet.
	ErrConflict = errors.New("worksheet changed concurrently")
)
