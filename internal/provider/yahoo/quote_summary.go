package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/guttosm/finny/internal/domain/models"
)

// quoteSummaryEnvelope is the outer shape of every quoteSummary response:
//
//	{"quoteSummary": {"result": [{...modules...}], "error": null}}
type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// QuoteSummary fetches the given modules for ticker and returns the first result object
// exactly as Yahoo sent it. The ticker is not validated; it is only path-escaped.
func (c *Client) QuoteSummary(ctx context.Context, ticker string, modules []string) (models.QuoteResult, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	crumb, err := c.cachedCrumb(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("modules", strings.Join(modules, ","))
	query.Set("formatted", "false")
	query.Set("crumb", crumb)

	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(ticker), query.Encode())
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch res.StatusCode {
	case http.StatusOK, http.StatusNotFound:
		// 404 carries an error envelope; decoded below.

	case http.StatusUnauthorized, http.StatusForbidden:
		c.invalidateCrumb(crumb)
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, res.StatusCode)

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: rate limited", ErrProvider)

	default:
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrProvider, res.StatusCode)
	}

	return decodeQuoteSummary(body)
}

func decodeQuoteSummary(body []byte) (models.QuoteResult, error) {
	var env quoteSummaryEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrProvider, err)
	}

	if e := env.QuoteSummary.Error; e != nil {
		if strings.EqualFold(e.Code, "Not Found") {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, e.Description)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrProvider, e.Code, e.Description)
	}

	if len(env.QuoteSummary.Result) == 0 {
		return nil, ErrNotFound
	}
	first := bytes.TrimSpace(env.QuoteSummary.Result[0])
	if len(first) == 0 || bytes.Equal(first, []byte("null")) {
		return nil, ErrNotFound
	}
	return models.QuoteResult(first), nil
}
