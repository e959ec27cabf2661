package service

import (
	"context"
	"sync"

	"github.com/guttosm/finny/internal/domain/models"
	"github.com/guttosm/finny/internal/logger"
)

// AsyncRecorder writes lookups in the background so a slow database never delays
// a quote response. Call Wait before closing the underlying store.
type AsyncRecorder struct {
	next LookupRecorder
	wg   sync.WaitGroup
}

// NewAsyncRecorder wraps next.
func NewAsyncRecorder(next LookupRecorder) *AsyncRecorder {
	return &AsyncRecorder{next: next}
}

// RecordLookup schedules the write and returns immediately. The write runs on a
// context detached from ctx's cancellation, bounded by recordTimeout.
func (a *AsyncRecorder) RecordLookup(ctx context.Context, lookup models.Lookup) error {
	detached := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		rctx, cancel := context.WithTimeout(detached, recordTimeout)
		defer cancel()
		if err := a.next.RecordLookup(rctx, lookup); err != nil {
			logger.L().Warn().Err(err).Str("ticker", lookup.Ticker).Msg("lookup log write failed")
		}
	}()
	return nil
}

// Wait blocks until every scheduled write has finished.
func (a *AsyncRecorder) Wait() {
	a.wg.Wait()
}
