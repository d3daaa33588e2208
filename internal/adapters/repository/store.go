// Package repository provides the applicant store: a TTL-cached projection
// of the remote worksheets with write-through updates.
//
// The remote spreadsheet is the only source of truth. Each worksheet's
// snapshot lives in memory until its TTL expires or a write targets the
// worksheet; either way the next read fetches fresh rows. Row positions are
// re-resolved from a fresh snapshot immediately before every positional
// write, never carried across operations.
package repository

import (
	"context"
	"time"

	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/types"
)

// Store provides cached read and write-through access to applicant
// worksheets.
type Store interface {
	// Get returns the worksheet snapshot, fetching from the remote table
	// when the cached copy is stale. The returned slice is the caller's to
	// mutate.
	Get(ctx context.Context, worksheet string) ([]model.Applicant, error)

	// SaveRatings validates the ratings, recomputes the applicant score,
	// and writes the row through to the remote worksheet. The worksheet's
	// cache entry is invalidated afterwards.
	SaveRatings(ctx context.Context, worksheet, name string, r model.Ratings) error

	// Move relocates one applicant between worksheets: append to the
	// destination first, then delete from the source. A failure between the
	// two writes leaves a harmless duplicate rather than losing the record.
	Move(ctx context.Context, from, to, name string) error

	// TopN returns the n highest-scored applicants of the worksheet,
	// descending by score, earlier row winning ties.
	TopN(ctx context.Context, worksheet string, n int) ([]types.Entry, error)

	// Refresh drops every cached snapshot, forcing remote fetches on the
	// next reads.
	Refresh(ctx context.Context)

	// LastSync reports when a remote fetch last succeeded.
	LastSync() time.Time
}
