package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/LeifStrom/hiring/pkg/logger"
	"github.com/LeifStrom/hiring/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultRatePerSecond = 1.0
	defaultRateBurst     = 4
	// headerRowCount is the number of reserved rows above the data region.
	headerRowCount = 1
)

// GoogleClient implements Client against the Google Sheets v4 API.
type GoogleClient struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	header        []string
	limiter       *rate.Limiter

	mu       sync.Mutex
	sheetIDs map[string]int64 // worksheet title -> numeric sheet id

	log logger.Logger
}

// NewGoogleClient builds a client for one spreadsheet, authenticating with
// the given service-account credentials file unless a service was injected
// via WithService.
func NewGoogleClient(ctx context.Context, spreadsheetID, credentialsFile string, opts ...Option) (*GoogleClient, error) {
	c := &GoogleClient{
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(defaultRatePerSecond), defaultRateBurst),
		sheetIDs:      make(map[string]int64),
		log:           logger.Named("sheets"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.svc == nil {
		svc, err := sheetsv4.NewService(ctx,
			option.WithCredentialsFile(credentialsFile),
			option.WithScopes(sheetsv4.SpreadsheetsScope),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
		}
		c.svc = svc
	}
	return c, nil
}

// ListRows returns every data row of the worksheet in sheet order. The
// header row is stripped; ragged rows come back as-is and are the caller's
// concern.
func (c *GoogleClient) ListRows(ctx context.Context, worksheet string) ([][]string, error) {
	const op = "sheets.list_rows"
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeRef(worksheet, "")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return nil, classify(op, err)
	}

	if len(resp.Values) <= headerRowCount {
		return [][]string{}, nil
	}
	rows := make([][]string, 0, len(resp.Values)-headerRowCount)
	for _, raw := range resp.Values[headerRowCount:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow adds one row at the end of the worksheet data region.
func (c *GoogleClient) AppendRow(ctx context.Context, worksheet string, row []string) error {
	const op = "sheets.append_row"
	if err := c.checkWidth(row); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeRef(worksheet, ""), valueRange(row)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	return nil
}

// UpdateRow replaces the row at the given position in full.
func (c *GoogleClient) UpdateRow(ctx context.Context, worksheet string, index int, row []string) error {
	const op = "sheets.update_row"
	if err := c.checkWidth(row); err != nil {
		return err
	}
	if err := c.probeRow(ctx, worksheet, index); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	sheetRow := index + headerRowCount + 1 // 1-based sheet coordinates
	ref := fmt.Sprintf("A%d:%s%d", sheetRow, columnName(len(row)), sheetRow)
	start := time.Now()
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeRef(worksheet, ref), valueRange(row)).
		ValueInputOption("RAW").
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	return nil
}

// DeleteRow removes the row at the given position, shifting later rows up.
func (c *GoogleClient) DeleteRow(ctx context.Context, worksheet string, index int) error {
	const op = "sheets.delete_row"
	if err := c.probeRow(ctx, worksheet, index); err != nil {
		return err
	}
	sheetID, err := c.sheetID(ctx, worksheet)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			DeleteDimension: &sheetsv4.DeleteDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(index + headerRowCount),
					EndIndex:   int64(index + headerRowCount + 1),
				},
			},
		}},
	}
	start := time.Now()
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	return nil
}

// EnsureWorksheet creates the worksheet with the given header row if it is
// missing. Safe to call repeatedly.
func (c *GoogleClient) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	const op = "sheets.ensure_worksheet"
	if _, err := c.sheetID(ctx, worksheet); err == nil {
		return nil
	} else if !errors.Is(err, ErrWorksheetNotFound) {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{
				Properties: &sheetsv4.SheetProperties{Title: worksheet},
			},
		}},
	}
	start := time.Now()
	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		c.mu.Lock()
		c.sheetIDs[worksheet] = resp.Replies[0].AddSheet.Properties.SheetId
		c.mu.Unlock()
	}
	c.log.Info(ctx, "created worksheet", logger.String("worksheet", worksheet))

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	start = time.Now()
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeRef(worksheet, ""), valueRange(header)).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	return nil
}

// probeRow verifies that the data row at index exists before a positional
// write. Positions go stale whenever another write lands first; failing
// early keeps a shifted write from silently hitting the wrong row.
func (c *GoogleClient) probeRow(ctx context.Context, worksheet string, index int) error {
	const op = "sheets.probe_row"
	if index < 0 {
		return fmt.Errorf("%w: index %d", ErrOutOfRange, index)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	sheetRow := index + headerRowCount + 1
	ref := fmt.Sprintf("A%d:A%d", sheetRow, sheetRow)
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rangeRef(worksheet, ref)).
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return classify(op, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return fmt.Errorf("%w: worksheet %q has no row at index %d", ErrOutOfRange, worksheet, index)
	}
	return nil
}

// sheetID resolves the numeric sheet id for a worksheet title, caching the
// mapping. Titles are stable here; ids never change for a sheet's lifetime.
func (c *GoogleClient) sheetID(ctx context.Context, worksheet string) (int64, error) {
	const op = "sheets.sheet_id"
	c.mu.Lock()
	if id, ok := c.sheetIDs[worksheet]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	metrics.RecordSheetCall(op, time.Since(start), err)
	if err != nil {
		return 0, classify(op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			c.sheetIDs[s.Properties.Title] = s.Properties.SheetId
		}
	}
	if id, ok := c.sheetIDs[worksheet]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrWorksheetNotFound, worksheet)
}

// checkWidth rejects rows that do not match the configured header.
func (c *GoogleClient) checkWidth(row []string) error {
	if len(c.header) > 0 && len(row) != len(c.header) {
		return fmt.Errorf("%w: got %d cells, want %d", ErrValidation, len(row), len(c.header))
	}
	return nil
}

// classify maps backend failures onto the package's sentinel kinds.
func classify(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%s: %w: %v", op, ErrConnectivity, err)
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			return fmt.Errorf("%s: %w: %v", op, ErrConnectivity, err)
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%s: %w: %v", op, ErrWorksheetNotFound, err)
		case gerr.Code == http.StatusBadRequest && strings.Contains(gerr.Message, "Unable to parse range"):
			// The API reports a missing worksheet as an unparseable range.
			return fmt.Errorf("%s: %w: %v", op, ErrWorksheetNotFound, err)
		case gerr.Code == http.StatusBadRequest:
			return fmt.Errorf("%s: %w: %v", op, ErrValidation, err)
		}
		return fmt.Errorf("%s: %w: %v", op, ErrConnectivity, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %v", op, ErrConnectivity, err)
}

// rangeRef builds an A1 range reference scoped to a worksheet. An empty ref
// addresses the whole sheet.
func rangeRef(worksheet, ref string) string {
	quoted := "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
	if ref == "" {
		return quoted
	}
	return quoted + "!" + ref
}

// columnName converts a 1-based column count to its A1 letter, e.g. 11 -> K.
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func valueRange(row []string) *sheetsv4.ValueRange {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return &sheetsv4.ValueRange{Values: [][]interface{}{cells}}
}
