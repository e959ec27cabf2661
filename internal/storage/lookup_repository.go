package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttosm/finny/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrSchemaMissing means the quote_lookups table does not exist (migrations not applied).
var ErrSchemaMissing = errors.New("storage: quote_lookups table missing")

const insertLookupSQL = `INSERT INTO quote_lookups (ticker, success, latency_ms, requested_at) VALUES ($1, $2, $3, $4)`

// LookupRepository defines contract for lookup log persistence.
type LookupRepository interface {
	RecordLookup(ctx context.Context, lookup models.Lookup) error
	Ping(ctx context.Context) error
}

type lookupRepository struct {
	db *sql.DB
}

func NewLookupRepository(db *sql.DB) LookupRepository {
	return &lookupRepository{db: db}
}

// RecordLookup inserts one lookup row.
func (r *lookupRepository) RecordLookup(ctx context.Context, lookup models.Lookup) error {
	_, err := r.db.ExecContext(ctx, insertLookupSQL,
		lookup.Ticker,
		lookup.Success,
		lookup.LatencyMs,
		lookup.RequestedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "undefined_table" {
			return fmt.Errorf("%w: %v", ErrSchemaMissing, err)
		}
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *lookupRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
