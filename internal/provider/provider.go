package provider

import (
	"context"

	"github.com/guttosm/finny/internal/domain/models"
)

// QuoteProvider fetches quote data for a ticker from an external financial-data service.
//
// Implementations must be safe for concurrent use. The returned result is opaque and is
// handed to clients unchanged.
type QuoteProvider interface {
	QuoteSummary(ctx context.Context, ticker string, modules []string) (models.QuoteResult, error)
}
