package app

import (
	"github.com/guttosm/finny/config"
	"github.com/guttosm/finny/internal/provider/yahoo"
	"github.com/guttosm/finny/internal/sec"
	"github.com/guttosm/finny/internal/service"
)

// NewQuoteService builds the quote use case backed by the Yahoo client.
// recorder may be nil to disable the lookup log.
func NewQuoteService(cfg config.Config, recorder service.LookupRecorder) (service.QuoteService, error) {
	client, err := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithCookieURL(cfg.Yahoo.CookieURL),
		yahoo.WithUserAgent(cfg.Yahoo.UserAgent),
		yahoo.WithTimeout(cfg.Yahoo.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return service.NewQuoteService(client, recorder), nil
}

// NewFilingsService builds the SEC filings use case.
func NewFilingsService(cfg config.Config) service.FilingsService {
	src := sec.New(sec.Config{
		BaseURL:   cfg.SEC.BaseURL,
		UserAgent: cfg.SEC.UserAgent,
		Timeout:   cfg.SEC.Timeout,
	}, nil)
	return service.NewFilingsService(src)
}
