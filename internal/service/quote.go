package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/finny/internal/domain/models"
	"github.com/guttosm/finny/internal/logger"
	"github.com/guttosm/finny/internal/provider"
)

// recordTimeout bounds a single lookup-log write.
const recordTimeout = 2 * time.Second

// QuoteService defines the quote lookup use case.
// This decouples HTTP handlers and the CLI from the concrete data provider.
type QuoteService interface {
	GetQuote(ctx context.Context, ticker string) (models.QuoteResult, error)
}

// LookupRecorder persists the outcome of quote lookups.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, lookup models.Lookup) error
}

type quoteService struct {
	provider provider.QuoteProvider
	recorder LookupRecorder
	now      func() time.Time
}

// NewQuoteService builds a QuoteService. recorder may be nil to disable the lookup log.
func NewQuoteService(p provider.QuoteProvider, recorder LookupRecorder) QuoteService {
	return &quoteService{provider: p, recorder: recorder, now: time.Now}
}

// GetQuote requests the summary detail, price and key statistics modules for ticker.
// The ticker is passed through untouched. Lookup-log failures are logged and never
// change the outcome.
func (s *quoteService) GetQuote(ctx context.Context, ticker string) (models.QuoteResult, error) {
	start := s.now()
	res, err := s.provider.QuoteSummary(ctx, ticker, models.QuoteModules)
	latency := s.now().Sub(start)

	if s.recorder != nil {
		s.record(ctx, models.Lookup{
			Ticker:      ticker,
			Success:     err == nil,
			LatencyMs:   latency.Milliseconds(),
			RequestedAt: start.UTC(),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("quote summary for %q: %w", ticker, err)
	}
	return res, nil
}

func (s *quoteService) record(ctx context.Context, lookup models.Lookup) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.recorder.RecordLookup(rctx, lookup); err != nil {
		logger.L().Warn().Err(err).Str("ticker", lookup.Ticker).Msg("lookup log write failed")
	}
}
