package sheets

import (
	"golang.org/x/time/rate"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Option applies a configuration option to the GoogleClient.
type Option func(*GoogleClient)

// WithHeader sets the expected column header used to validate row widths on
// writes and to create missing worksheets.
func WithHeader(header []string) Option {
	return func(c *GoogleClient) {
		if len(header) > 0 {
			c.header = append([]string(nil), header...)
		}
	}
}

// WithRateLimit throttles outbound API calls. The Sheets API enforces a
// tight per-minute quota; staying under it client-side avoids burning the
// retry budget on 429s.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *GoogleClient) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithService injects a pre-built Sheets service, bypassing credential
// loading. Useful for tests against a stub HTTP backend.
func WithService(svc *sheetsv4.Service) Option {
	return func(c *GoogleClient) {
		c.svc = svc
	}
}
