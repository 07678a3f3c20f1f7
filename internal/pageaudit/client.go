package pageaudit

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxResponseBody caps how much of the target page is read into memory, so an
// extremely large or infinite response cannot exhaust the process.
const maxResponseBody = 10 << 20

// FetchResult carries the capped body plus the transport facts the report
// records about the primary request.
type FetchResult struct {
	Body        []byte
	StatusCode  int
	ContentType string
	FinalURL    *url.URL
	Latency     time.Duration
	Secure      bool
	HSTS        bool
}

// Fetcher defines how the engine retrieves the target page.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*FetchResult, error)
}

// HTTPClient is the production Fetcher.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient builds the fetcher used for the primary page download: 10s
// overall timeout, the private-address-filtering transport, and the shared
// redirect policy (scheme check, chain limit).
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout:       fetchTimeout,
			Transport:     safeTransport(10),
			CheckRedirect: followRedirects,
		},
	}
}

// Fetch performs a single GET against the target and reads the whole (capped)
// body. Latency runs from request start until the body is fully available,
// which is what the performance estimates derive from. A non-2xx status is
// not an error here; only transport-level failures are.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}

	// resp.Request points at the last request of the redirect chain, so its
	// URL is the effective address the body came from.
	return &FetchResult{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL,
		Latency:     time.Since(start),
		Secure:      resp.Request.URL.Scheme == "https",
		HSTS:        resp.Header.Get("Strict-Transport-Security") != "",
	}, nil
}
