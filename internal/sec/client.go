package sec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/guttosm/finny/internal/domain/models"
)

const (
	defaultBaseURL   = "https://www.sec.gov"
	defaultUserAgent = "Mozilla/5.0"
	maxBodyBytes     = 5 << 20
)

// ErrUpstream is returned when EDGAR answers with a non-200 status.
var ErrUpstream = errors.New("sec: upstream error")

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls the EDGAR client.
type Config struct {
	BaseURL   string
	UserAgent string        // EDGAR rejects requests without one
	Timeout   time.Duration // applied to the default HTTP client only
}

// Client scrapes the EDGAR company browse page.
type Client struct {
	cfg        Config
	httpClient HTTPClient
}

// New builds a Client. A nil httpClient gets a default one bounded by cfg.Timeout.
func New(cfg Config, httpClient HTTPClient) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Filings returns the most recent filings listed for ticker on EDGAR.
func (c *Client) Filings(ctx context.Context, ticker string) ([]models.Filing, error) {
	q := url.Values{}
	q.Set("CIK", ticker)
	q.Set("action", "getcompany")
	q.Set("owner", "exclude")
	q.Set("count", "10")

	endpoint := fmt.Sprintf("%s/cgi-bin/browse-edgar?%s", c.cfg.BaseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}

	filings, err := ParseFilings(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing filings page: %w", err)
	}
	return filings, nil
}
