package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/LeifStrom/hiring/internal/seed"
	"github.com/LeifStrom/hiring/pkg/logger"
)

// Default configuration constants.
const (
	defaultCount   = 50
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		spreadsheetID = flag.String("spreadsheet", os.Getenv("HIRING_SPREADSHEET_ID"), "Spreadsheet id to seed")
		credentials   = flag.String("credentials", "credentials.json", "Service-account JSON key file")
		worksheet     = flag.String("worksheet", "active", "Worksheet to append applicants to")
		count         = flag.Int("count", defaultCount, "Number of applicants to generate")
		seedVal       = flag.Int64("seed", time.Now().UnixNano(), "Random seed for reproducible runs")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &seed.Config{
		SpreadsheetID:   *spreadsheetID,
		CredentialsFile: *credentials,
		Worksheet:       *worksheet,
		Count:           *count,
		Seed:            *seedVal,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
