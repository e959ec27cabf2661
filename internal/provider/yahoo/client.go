package yahoo

import (
	"errors"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL   = "https://query2.finance.yahoo.com"
	defaultCookieURL = "https://fc.yahoo.com"
	defaultUserAgent = "Mozilla/5.0"

	// maxBodyBytes caps how much of an upstream body is read.
	maxBodyBytes = 10 << 20
)

var (
	// ErrNotFound is returned when Yahoo has no data for the requested ticker.
	ErrNotFound = errors.New("yahoo: quote not found")
	// ErrUnauthorized is returned when Yahoo rejects the cookie/crumb pair.
	ErrUnauthorized = errors.New("yahoo: unauthorized")
	// ErrProvider is returned for error envelopes and unexpected upstream responses.
	ErrProvider = errors.New("yahoo: provider error")
)

// HTTPClient describes an HTTP client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a Yahoo Finance quoteSummary client.
//
// Yahoo only answers quoteSummary calls that carry a session cookie and a matching crumb.
// The crumb is fetched lazily, cached, and shared by all callers; concurrent callers that
// find no crumb wait on a single fetch.
type Client struct {
	// baseURL is the query host, e.g. https://query2.finance.yahoo.com.
	baseURL string
	// cookieURL is hit once to obtain the session cookie.
	cookieURL string
	// userAgent is sent with every request.
	userAgent string
	// timeout bounds each QuoteSummary call; zero disables it.
	timeout time.Duration
	// httpClient must keep cookies between requests (see NewClient).
	httpClient HTTPClient

	mu    sync.RWMutex
	crumb string
	sf    singleflight.Group
}

// Option is a configuration option for the Yahoo client.
type Option func(*Client)

// WithBaseURL sets the query host.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithCookieURL sets the URL used to obtain the session cookie.
func WithCookieURL(cookieURL string) Option {
	return func(c *Client) {
		if cookieURL != "" {
			c.cookieURL = cookieURL
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds every QuoteSummary call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client. It must preserve cookies across requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a Yahoo client with a pooled transport and an in-memory cookie jar.
func NewClient(options ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   50,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	c := &Client{
		baseURL:    defaultBaseURL,
		cookieURL:  defaultCookieURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Transport: transport, Jar: jar},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}
