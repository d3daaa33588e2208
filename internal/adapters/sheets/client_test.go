package sheets

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestColumnName(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{11, "K"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{53, "BA"},
		{703, "AAA"},
	}
	for _, tc := range cases {
		if got := columnName(tc.n); got != tc.want {
			t.Errorf("columnName(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestRangeRef(t *testing.T) {
	cases := []struct {
		worksheet string
		ref       string
		want      string
	}{
		{"active", "", "'active'"},
		{"active", "A2:K2", "'active'!A2:K2"},
		{"John's picks", "A1", "'John''s picks'!A1"},
	}
	for _, tc := range cases {
		if got := rangeRef(tc.worksheet, tc.ref); got != tc.want {
			t.Errorf("rangeRef(%q, %q) = %q, want %q", tc.worksheet, tc.ref, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"quota", &googleapi.Error{Code: http.StatusTooManyRequests}, ErrConnectivity},
		{"server error", &googleapi.Error{Code: http.StatusBadGateway}, ErrConnectivity},
		{"bad credentials", &googleapi.Error{Code: http.StatusForbidden}, ErrConnectivity},
		{"missing spreadsheet", &googleapi.Error{Code: http.StatusNotFound}, ErrWorksheetNotFound},
		{"missing worksheet", &googleapi.Error{Code: http.StatusBadRequest, Message: "Unable to parse range: 'gone'"}, ErrWorksheetNotFound},
		{"bad payload", &googleapi.Error{Code: http.StatusBadRequest, Message: "Invalid value"}, ErrValidation},
		{"network", errors.New("connection reset"), ErrConnectivity},
	}
	for _, tc := range cases {
		got := classify("list_rows", tc.err)
		if !errors.Is(got, tc.want) {
			t.Errorf("%s: classify() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyContextErrors(t *testing.T) {
	for _, err := range []error{context.Canceled, context.DeadlineExceeded} {
		got := classify("append_row", err)
		if !errors.Is(got, err) {
			t.Errorf("classify(%v) = %v, want the context error preserved", err, got)
		}
		if errors.Is(got, ErrConnectivity) {
			t.Errorf("classify(%v) must not be retryable", err)
		}
	}
}

func TestInMemoryClientContract(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryClient()

	if err := c.EnsureWorksheet(ctx, "active", []string{"name", "score"}); err != nil {
		t.Fatalf("ensure worksheet: %v", err)
	}

	if _, err := c.ListRows(ctx, "gone"); !errors.Is(err, ErrWorksheetNotFound) {
		t.Fatalf("ListRows on missing worksheet = %v, want ErrWorksheetNotFound", err)
	}

	if err := c.AppendRow(ctx, "active", []string{"Alice", "7.43"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := c.AppendRow(ctx, "active", []string{"too", "many", "cells"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("appending a wide row = %v, want ErrValidation", err)
	}

	if err := c.UpdateRow(ctx, "active", 3, []string{"Bob", "5.00"}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("updating a missing row = %v, want ErrOutOfRange", err)
	}
	if err := c.UpdateRow(ctx, "active", 0, []string{"Alice", "9.00"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows, err := c.ListRows(ctx, "active")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0][1] != "9.00" {
		t.Fatalf("unexpected rows after update: %v", rows)
	}

	if err := c.DeleteRow(ctx, "active", 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := c.DeleteRow(ctx, "active", 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("deleting a missing row = %v, want ErrOutOfRange", err)
	}

	// Ensure on an existing worksheet keeps its contents.
	if err := c.AppendRow(ctx, "active", []string{"Cara", "4.00"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := c.EnsureWorksheet(ctx, "active", []string{"name", "score"}); err != nil {
		t.Fatalf("ensure existing: %v", err)
	}
	if got := c.Rows("active"); len(got) != 1 {
		t.Fatalf("ensure wiped existing rows: %v", got)
	}
}
