package sheets

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryClient implements Client against process memory. It backs tests
// and local development where no spreadsheet is reachable, and mirrors the
// GoogleClient error contract including injectable failures.
type InMemoryClient struct {
	mu     sync.Mutex
	sheets map[string]*memorySheet

	// Calls counts invocations per operation name.
	Calls map[string]int

	// Injectable failures, returned verbatim by the matching operation.
	ListErr   error
	AppendErr error
	UpdateErr error
	DeleteErr error
}

type memorySheet struct {
	header []string
	rows   [][]string
}

// NewInMemoryClient creates an empty in-memory table backend.
func NewInMemoryClient() *InMemoryClient {
	return &InMemoryClient{
		sheets: make(map[string]*memorySheet),
		Calls:  make(map[string]int),
	}
}

// Seed replaces a worksheet's contents wholesale. Creates the worksheet if
// needed.
func (c *InMemoryClient) Seed(worksheet string, header []string, rows [][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([][]string, len(rows))
	for i, r := range rows {
		copied[i] = append([]string(nil), r...)
	}
	c.sheets[worksheet] = &memorySheet{
		header: append([]string(nil), header...),
		rows:   copied,
	}
}

// Rows returns a copy of the worksheet's current data rows.
func (c *InMemoryClient) Rows(worksheet string) [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ws, ok := c.sheets[worksheet]
	if !ok {
		return nil
	}
	out := make([][]string, len(ws.rows))
	for i, r := range ws.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (c *InMemoryClient) ListRows(ctx context.Context, worksheet string) ([][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["list_rows"]++
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	ws, ok := c.sheets[worksheet]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
	}
	out := make([][]string, len(ws.rows))
	for i, r := range ws.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (c *InMemoryClient) AppendRow(ctx context.Context, worksheet string, row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["append_row"]++
	if c.AppendErr != nil {
		return c.AppendErr
	}
	ws, ok := c.sheets[worksheet]
	if !ok {
		return fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
	}
	if len(ws.header) > 0 && len(row) != len(ws.header) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrValidation, len(row), len(ws.header))
	}
	ws.rows = append(ws.rows, append([]string(nil), row...))
	return nil
}

func (c *InMemoryClient) UpdateRow(ctx context.Context, worksheet string, index int, row []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["update_row"]++
	if c.UpdateErr != nil {
		return c.UpdateErr
	}
	ws, ok := c.sheets[worksheet]
	if !ok {
		return fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
	}
	if index < 0 || index >= len(ws.rows) {
		return fmt.Errorf("%w: worksheet %q has no row at index %d", ErrOutOfRange, worksheet, index)
	}
	if len(ws.header) > 0 && len(row) != len(ws.header) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrValidation, len(row), len(ws.header))
	}
	ws.rows[index] = append([]string(nil), row...)
	return nil
}

func (c *InMemoryClient) DeleteRow(ctx context.Context, worksheet string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["delete_row"]++
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	ws, ok := c.sheets[worksheet]
	if !ok {
		return fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
	}
	if index < 0 || index >= len(ws.rows) {
		return fmt.Errorf("%w: worksheet %q has no row at index %d", ErrOutOfRange, worksheet, index)
	}
	ws.rows = append(ws.rows[:index], ws.rows[index+1:]...)
	return nil
}

func (c *InMemoryClient) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls["ensure_worksheet"]++
	if _, ok := c.sheets[worksheet]; ok {
		return nil
	}
	c.sheets[worksheet] = &memorySheet{header: append([]string(nil), header...)}
	return nil
}
