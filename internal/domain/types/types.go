// Package types contains common types used across the application
package types

// Entry represents one ranked row in a top-N listing.
type Entry struct {
	Rank  int     `json:"rank"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
