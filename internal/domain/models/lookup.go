package models

import "time"

// Lookup records the outcome of a single quote lookup.
//
// Fields:
//   - Ticker: the ticker exactly as received on the request path.
//   - Success: whether the provider returned data.
//   - LatencyMs: provider round-trip time in milliseconds.
//   - RequestedAt: when the lookup started (UTC).
type Lookup struct {
	Ticker      string
	Success     bool
	LatencyMs   int64
	RequestedAt time.Time
}
