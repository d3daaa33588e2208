package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LeifStrom/hiring/internal/adapters/sheets"
	"github.com/LeifStrom/hiring/internal/domain/model"
	"github.com/LeifStrom/hiring/pkg/logger"
)

// Config drives one seeding run.
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	Worksheet       string
	Count           int
	Seed            int64

	// Client overrides the Google wiring; used by tests.
	Client sheets.Client
}

func (c *Config) validate() error {
	if c.Client == nil && c.SpreadsheetID == "" {
		return errors.New("spreadsheet id is required")
	}
	if c.Worksheet == "" {
		return errors.New("worksheet is required")
	}
	if c.Count < 1 {
		return errors.New("count must be at least 1")
	}
	return nil
}

// Run generates applicants and appends them to the configured worksheet.
func Run(ctx context.Context, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid seed config: %w", err)
	}

	log := logger.Named("seed")
	start := time.Now()

	client := cfg.Client
	if client == nil {
		c, err := sheets.NewGoogleClient(ctx, cfg.SpreadsheetID, cfg.CredentialsFile,
			sheets.WithHeader(model.Header()),
		)
		if err != nil {
			return fmt.Errorf("connect to spreadsheet: %w", err)
		}
		client = c
	}

	if err := client.EnsureWorksheet(ctx, cfg.Worksheet, model.Header()); err != nil {
		return fmt.Errorf("ensure worksheet %q: %w", cfg.Worksheet, err)
	}

	gen := NewGenerator(cfg.Seed)
	for i := 0; i < cfg.Count; i++ {
		a := gen.Next()
		if err := client.AppendRow(ctx, cfg.Worksheet, a.ToRow()); err != nil {
			return fmt.Errorf("append applicant %d of %d: %w", i+1, cfg.Count, err)
		}
	}

	log.Info(ctx, "seeding complete",
		logger.String("worksheet", cfg.Worksheet),
		logger.Int("applicants", cfg.Count),
		logger.String("elapsed", time.Since(start).String()),
	)
	return nil
}
