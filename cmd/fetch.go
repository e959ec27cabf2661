package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/finny/internal/domain/dto"
	"github.com/guttosm/finny/internal/logger"
	"github.com/guttosm/finny/internal/service"
)

// maxFetchParallel caps concurrent lookups in fetch mode.
const maxFetchParallel = 16

// errFetchFailed is returned when at least one ticker could not be fetched.
var errFetchFailed = errors.New("one or more lookups failed")

// fetchLine is one line of fetch-mode output.
type fetchLine struct {
	Ticker string          `json:"ticker"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// parseTickers splits a comma separated list, dropping blanks. Tickers are not normalized.
func parseTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// runFetch looks up every ticker with at most parallel requests in flight and writes
// one JSON line per ticker to w, in input order.
func runFetch(ctx context.Context, svc service.QuoteService, tickers []string, parallel int, w io.Writer) error {
	if len(tickers) == 0 {
		return errors.New("no tickers given")
	}
	if parallel < 1 {
		parallel = 1
	}
	if parallel > maxFetchParallel {
		parallel = maxFetchParallel
	}

	lines := make([]fetchLine, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, ticker := range tickers {
		g.Go(func() error {
			res, err := svc.GetQuote(gctx, ticker)
			if err != nil {
				logger.L().Error().Err(err).Str("ticker", ticker).Msg("fetch failed")
				lines[i] = fetchLine{Ticker: ticker, Error: dto.MsgQuoteFetchFailed}
				return nil
			}
			lines[i] = fetchLine{Ticker: ticker, Data: json.RawMessage(res)}
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(w)
	failed := 0
	for _, line := range lines {
		if line.Error != "" {
			failed++
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFetchFailed, failed, len(tickers))
	}
	return nil
}
