package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const crumbKey = "crumb"

// cachedCrumb returns the current crumb, fetching it when none is cached.
// The fetch runs detached from the caller's cancellation so one impatient caller
// cannot fail everyone else waiting on it; each caller still stops waiting on its own ctx.
func (c *Client) cachedCrumb(ctx context.Context) (string, error) {
	c.mu.RLock()
	crumb := c.crumb
	c.mu.RUnlock()
	if crumb != "" {
		return crumb, nil
	}

	ch := c.sf.DoChan(crumbKey, func() (any, error) {
		c.mu.RLock()
		existing := c.crumb
		c.mu.RUnlock()
		if existing != "" {
			return existing, nil
		}

		fctx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.timeout)
			defer cancel()
		}

		fresh, err := c.fetchCrumb(fctx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.crumb = fresh
		c.mu.Unlock()
		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// invalidateCrumb drops the cached crumb if it still equals stale.
func (c *Client) invalidateCrumb(stale string) {
	c.mu.Lock()
	if c.crumb == stale {
		c.crumb = ""
	}
	c.mu.Unlock()
}

// fetchCrumb obtains a session cookie and then the crumb bound to it.
func (c *Client) fetchCrumb(ctx context.Context) (string, error) {
	// The cookie endpoint answers with an error status but still sets the cookie.
	req, err := c.newRequest(ctx, c.cookieURL)
	if err != nil {
		return "", fmt.Errorf("creating cookie request: %w", err)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching session cookie: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
	_ = res.Body.Close()

	req, err = c.newRequest(ctx, c.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", fmt.Errorf("creating crumb request: %w", err)
	}
	res, err = c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching crumb: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: crumb status %d", ErrUnauthorized, res.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(res.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("reading crumb: %w", err)
	}
	crumb := strings.TrimSpace(string(b))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", fmt.Errorf("%w: invalid crumb", ErrUnauthorized)
	}
	return crumb, nil
}

func (c *Client) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	return req, nil
}
