package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/names"
	"github.com/LeifStrom/hiring/internal/domain/scoring"
	"github.com/LeifStrom/hiring/internal/domain/types"
	"github.com/LeifStrom/hiring/pkg/logger"
	"github.com/LeifStrom/hiring/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultTTL         = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultRandomSeed  = 42
)

// entry is one cached worksheet snapshot.
type entry struct {
	applicants []model.Applicant
	index      *names.Index
	fetchedAt  time.Time
}

// byName resolves an applicant and its remote row position. RowIndex is the
// remote position, which can differ from the slice position when unreadable
// rows were skipped during decoding.
func (e *entry) byName(name string) (model.Applicant, int, bool) {
	row, ok := e.index.Lookup(name)
	if !ok {
		return model.Applicant{}, 0, false
	}
	for _, a := range e.applicants {
		if a.RowIndex == row {
			return a, row, true
		}
	}
	return model.Applicant{}, 0, false
}

// CachedStore implements Store over a sheets.Client. A single mutex
// serializes every operation so position-based remote edits to one
// worksheet never interleave within a store instance.
type CachedStore struct {
	mu     sync.Mutex
	client sheets.Client

	ttl         time.Duration
	maxAttempts int
	baseDelay   time.Duration
	verifyMoves bool
	clock       func() time.Time
	rng         *rand.Rand

	entries  map[string]*entry
	lastSync time.Time

	log logger.Logger
}

// NewCachedStore creates a store over the given remote table client.
func NewCachedStore(client sheets.Client, opts ...Option) *CachedStore {
	s := &CachedStore{
		client:      client,
		ttl:         defaultTTL,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		verifyMoves: true,
		clock:       time.Now,
		rng:         rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // jitter only, not security-sensitive
		entries:     make(map[string]*entry),
		log:         logger.Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the worksheet snapshot, fetching when the cache is stale.
func (s *CachedStore) Get(ctx context.Context, worksheet string) ([]model.Applicant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.snapshot(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	out := make([]model.Applicant, len(e.applicants))
	copy(out, e.applicants)
	return out, nil
}

// SaveRatings validates, recomputes the score, and writes the row through.
func (s *CachedStore) SaveRatings(ctx context.Context, worksheet, name string, r model.Ratings) error {
	// Validate before touching anything; a rejected rating set must leave
	// the cached snapshot exactly as it was.
	score, err := scoring.Score(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Positions go stale under concurrent edits; resolve against a fresh
	// snapshot immediately before the write.
	e, err := s.refetch(ctx, worksheet)
	if err != nil {
		return err
	}
	a, row, ok := e.byName(name)
	if !ok {
		return fmt.Errorf("%w: %q in worksheet %q", ErrApplicantNotFound, name, worksheet)
	}

	a.Ratings = r
	a.Score = score

	err = s.withRetry(ctx, "update_row", func() error {
		return s.client.UpdateRow(ctx, worksheet, row, a.ToRow())
	})
	s.invalidate(worksheet)
	if err != nil {
		return fmt.Errorf("save ratings for %q: %w", name, err)
	}
	s.log.Info(ctx, "ratings saved",
		logger.String("worksheet", worksheet),
		logger.String("applicant", name),
		logger.Float64("score", score),
	)
	return nil
}

// Move relocates one applicant, appending to the destination before
// deleting from the source.
func (s *CachedStore) Move(ctx context.Context, from, to, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.refetch(ctx, from)
	if err != nil {
		return err
	}
	a, row, ok := src.byName(name)
	if !ok {
		return fmt.Errorf("%w: %q in worksheet %q", ErrApplicantNotFound, name, from)
	}
	expected := len(src.applicants) - 1

	dst, err := s.refetch(ctx, to)
	if err != nil {
		return err
	}
	if dst.index.Has(name) {
		return fmt.Errorf("%w: %q already present in worksheet %q", ErrDuplicateName, name, to)
	}

	// Append first. If the delete below fails we are left with a duplicate
	// across worksheets, which a recruiter can clean up; the reverse order
	// could lose the applicant entirely.
	if err := s.withRetry(ctx, "append_row", func() error {
		return s.client.AppendRow(ctx, to, a.ToRow())
	}); err != nil {
		s.invalidate(from)
		s.invalidate(to)
		return fmt.Errorf("move %q to %q: %w", name, to, err)
	}

	err = s.withRetry(ctx, "delete_row", func() error {
		return s.client.DeleteRow(ctx, from, row)
	})
	s.invalidate(from)
	s.invalidate(to)
	if err != nil {
		return fmt.Errorf("move %q: appended to %q but not removed from %q: %w", name, to, from, err)
	}

	s.log.Info(ctx, "applicant moved",
		logger.String("applicant", name),
		logger.String("from", from),
		logger.String("to", to),
	)

	if s.verifyMoves {
		fresh, verr := s.refetch(ctx, from)
		if verr != nil {
			// Verification is best-effort; the move itself succeeded.
			s.log.Warn(ctx, "post-move verification fetch failed", logger.Error(verr))
			return nil
		}
		if len(fresh.applicants) != expected {
			metrics.RecordMoveConflict()
			return fmt.Errorf("%w: worksheet %q has %d rows after move, expected %d",
				sheets.ErrConflict, from, len(fresh.applicants), expected)
		}
	}
	return nil
}

// TopN returns the n highest-scored applicants, descending, stable on ties.
func (s *CachedStore) TopN(ctx context.Context, worksheet string, n int) ([]types.Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.snapshot(ctx, worksheet)
	if err != nil {
		return nil, err
	}
	ranked := make([]model.Applicant, len(e.applicants))
	copy(ranked, e.applicants)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]types.Entry, n)
	for i := 0; i < n; i++ {
		out[i] = types.Entry{Rank: i + 1, Name: ranked[i].Name, Score: ranked[i].Score}
	}
	return out, nil
}

// Refresh drops every cached snapshot.
func (s *CachedStore) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ws := range s.entries {
		metrics.RecordCacheInvalidation(ws)
	}
	s.entries = make(map[string]*entry)
	s.log.Info(ctx, "cache cleared")
}

// LastSync reports when a remote fetch last succeeded.
func (s *CachedStore) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}

// snapshot returns a fresh-enough cache entry, fetching when stale.
// Callers must hold s.mu.
func (s *CachedStore) snapshot(ctx context.Context, worksheet string) (*entry, error) {
	if e, ok := s.entries[worksheet]; ok && s.clock().Sub(e.fetchedAt) < s.ttl {
		metrics.RecordCacheHit(worksheet)
		return e, nil
	}
	metrics.RecordCacheMiss(worksheet)
	return s.fetch(ctx, worksheet)
}

// refetch discards the cached entry and fetches unconditionally.
// Callers must hold s.mu.
func (s *CachedStore) refetch(ctx context.Context, worksheet string) (*entry, error) {
	delete(s.entries, worksheet)
	return s.fetch(ctx, worksheet)
}

func (s *CachedStore) fetch(ctx context.Context, worksheet string) (*entry, error) {
	var rows [][]string
	err := s.withRetry(ctx, "list_rows", func() error {
		var ferr error
		rows, ferr = s.client.ListRows(ctx, worksheet)
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch worksheet %q: %w", worksheet, err)
	}

	idx := names.NewIndex()
	applicants := make([]model.Applicant, 0, len(rows))
	for i, row := range rows {
		a, perr := model.ParseRow(i, row)
		if perr != nil {
			s.log.Warn(ctx, "skipping unreadable row",
				logger.String("worksheet", worksheet),
				logger.Int("row", i),
				logger.Error(perr),
			)
			continue
		}
		a.Score = scoring.Recorded(a.Ratings)
		if idx.Record(a.Name, a.RowIndex) {
			// Duplicate names make positional writes ambiguous; keep the
			// row visible but warn. Writes will address the first one.
			s.log.Warn(ctx, "duplicate applicant name in worksheet",
				logger.String("worksheet", worksheet),
				logger.String("applicant", a.Name),
			)
		}
		applicants = append(applicants, a)
	}

	e := &entry{applicants: applicants, index: idx, fetchedAt: s.clock()}
	s.entries[worksheet] = e
	s.lastSync = e.fetchedAt
	metrics.UpdateApplicantCount(worksheet, len(applicants))
	metrics.UpdateLastSync(e.fetchedAt)
	return e, nil
}

// invalidate drops one worksheet's cache entry. Callers must hold s.mu.
func (s *CachedStore) invalidate(worksheet string) {
	if _, ok := s.entries[worksheet]; ok {
		delete(s.entries, worksheet)
		metrics.RecordCacheInvalidation(worksheet)
	}
}

// withRetry runs fn, retrying connectivity failures with jittered
// exponential backoff up to the configured attempt budget.
func (s *CachedStore) withRetry(ctx context.Context, op string, fn func() error) error {
	delay := s.baseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, sheets.ErrConnectivity) || attempt >= s.maxAttempts {
			return err
		}
		metrics.RecordSheetRetry(op)
		s.log.Warn(ctx, "transient backend failure, backing off",
			logger.String("op", op),
			logger.Int("attempt", attempt),
			logger.Error(err),
		)
		jitter := time.Duration(s.rng.Int63n(int64(delay)/2 + 1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay + jitter):
		}
		delay *= 2
	}
}
