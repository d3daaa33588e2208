// Package app provides the core business service that implements
// the dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/LeifStrom/hiring/internal/adapters/repository"
	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/internal/domain/types"
	"github.com/LeifStrom/hiring/pkg/logger"
)

// Service implements the API dependencies for the hiring dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	client sheets.Client
	store  repository.Store

	// Configuration
	spreadsheetID   string
	credentialsFile string
	worksheets      []string
	cacheTTL        time.Duration
	retryAttempts   int
	retryBaseDelay  time.Duration
	ratePerSecond   float64
	rateBurst       int
	topNDefault     int
	maxTopLimit     int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSpreadsheet sets the backing spreadsheet id and credentials file.
func WithSpreadsheet(id, credentialsFile string) Option {
	return func(s *Service) {
		s.spreadsheetID = id
		s.credentialsFile = credentialsFile
	}
}

// WithWorksheets sets the worksheet titles, active first.
func WithWorksheets(titles ...string) Option {
	return func(s *Service) {
		if len(titles) > 0 {
			s.worksheets = titles
		}
	}
}

// WithCacheTTL sets the snapshot cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRetryPolicy bounds connectivity retries in the store.
func WithRetryPolicy(attempts int, baseDelay time.Duration) Option {
	return func(s *Service) {
		if attempts > 0 {
			s.retryAttempts = attempts
		}
		if baseDelay > 0 {
			s.retryBaseDelay = baseDelay
		}
	}
}

// WithRateLimit throttles outbound Sheets API calls.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Service) {
		if perSecond > 0 && burst > 0 {
			s.ratePerSecond = perSecond
			s.rateBurst = burst
		}
	}
}

// WithTopLimits sets the default and maximum top-N sizes.
func WithTopLimits(def, max int) Option {
	return func(s *Service) {
		if def > 0 {
			s.topNDefault = def
		}
		if max >= def {
			s.maxTopLimit = max
		}
	}
}

// WithClient injects a remote table client, bypassing Google wiring.
// Used by tests and local development against the in-memory backend.
func WithClient(client sheets.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		worksheets:     []string{"active", "denied", "hired"},
		cacheTTL:       30 * time.Second,
		retryAttempts:  3,
		retryBaseDelay: 500 * time.Millisecond,
		ratePerSecond:  1,
		rateBurst:      4,
		topNDefault:    5,
		maxTopLimit:    100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start connects to the backend, makes sure every worksheet exists, and
// builds the cached store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("app")
	}

	if s.client == nil {
		client, err := sheets.NewGoogleClient(ctx, s.spreadsheetID, s.credentialsFile,
			sheets.WithHeader(model.Header()),
			sheets.WithRateLimit(s.ratePerSecond, s.rateBurst),
		)
		if err != nil {
			return fmt.Errorf("connect to spreadsheet: %w", err)
		}
		s.client = client
	}

	header := model.Header()
	for _, ws := range s.worksheets {
		if err := s.client.EnsureWorksheet(ctx, ws, header); err != nil {
			return fmt.Errorf("ensure worksheet %q: %w", ws, err)
		}
	}

	s.store = repository.NewCachedStore(s.client,
		repository.WithTTL(s.cacheTTL),
		repository.WithRetry(s.retryAttempts, s.retryBaseDelay),
		repository.WithLogger(s.logger.Named("store")),
	)

	s.started = true
	s.logger.Info(ctx, "hiring dashboard service started",
		logger.Any("worksheets", s.worksheets),
		logger.String("cacheTTL", s.cacheTTL.String()),
	)
	return nil
}

// Stop shuts the service down. The store holds no remote resources; this
// only flips state so a stopped service refuses work.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "hiring dashboard service stopped")
}

// Worksheets returns the configured worksheet titles, active first.
func (s *Service) Worksheets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.worksheets))
	copy(out, s.worksheets)
	return out
}

// checkWorksheet rejects titles outside the configured set before they
// reach the remote backend.
func (s *Service) checkWorksheet(name string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ws := range s.worksheets {
		if ws == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", sheets.ErrWorksheetNotFound, name)
}

// Applicants returns the worksheet snapshot.
func (s *Service) Applicants(ctx context.Context, worksheet string) ([]model.Applicant, error) {
	if err := s.checkWorksheet(worksheet); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, worksheet)
}

// SaveRatings validates and persists one applicant's ratings.
func (s *Service) SaveRatings(ctx context.Context, worksheet, name string, r model.Ratings) error {
	if err := s.checkWorksheet(worksheet); err != nil {
		return err
	}
	return s.store.SaveRatings(ctx, worksheet, name, r)
}

// Move relocates an applicant between two configured worksheets.
func (s *Service) Move(ctx context.Context, from, to, name string) error {
	if err := s.checkWorksheet(from); err != nil {
		return err
	}
	if err := s.checkWorksheet(to); err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("%w: source and destination are both %q", sheets.ErrValidation, from)
	}
	return s.store.Move(ctx, from, to, name)
}

// TopN returns the n highest-scored applicants of a worksheet.
func (s *Service) TopN(ctx context.Context, worksheet string, n int) ([]types.Entry, error) {
	if err := s.checkWorksheet(worksheet); err != nil {
		return nil, err
	}
	return s.store.TopN(ctx, worksheet, n)
}

// Refresh drops all cached snapshots.
func (s *Service) Refresh(ctx context.Context) {
	s.store.Refresh(ctx)
}

// TopNDefault returns the side-panel size.
func (s *Service) TopNDefault() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topNDefault
}

// MaxTopLimit returns the cap for ?limit.
func (s *Service) MaxTopLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxTopLimit
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"worksheets":  s.worksheets,
		"cacheTTLSec": int(s.cacheTTL.Seconds()),
	}
	if s.store != nil {
		if t := s.store.LastSync(); !t.IsZero() {
			stats["lastSync"] = t.UTC().Format(time.RFC3339)
		}
	}
	return stats
}
