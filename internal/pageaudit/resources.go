package pageaudit

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// ResourceChecker probes the crawler-control files an origin is expected to
// serve.
type ResourceChecker struct {
	client *http.Client
}

// NewResourceChecker returns a ResourceChecker using the shared probe client
// settings.
func NewResourceChecker() *ResourceChecker {
	return newResourceChecker(safeTransport(3))
}

func newResourceChecker(transport http.RoundTripper) *ResourceChecker {
	return &ResourceChecker{client: newProbeClient(transport)}
}

// Check probes the target origin's robots.txt and both conventional sitemap
// locations concurrently. Any probe failure simply means the resource is
// absent; this stage never errors.
func (rc *ResourceChecker) Check(ctx context.Context, target *url.URL) (hasRobots, hasSitemap bool) {
	base := origin(target)
	paths := []string{"/robots.txt", "/sitemap.xml", "/sitemap_index.xml"}
	found := make([]bool, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Go(func() {
			found[i] = rc.exists(ctx, base+path)
		})
	}
	wg.Wait()

	return found[0], found[1] || found[2]
}

// exists issues a GET and treats any 2xx as presence. The body is discarded;
// presence is the only fact recorded.
func (rc *ResourceChecker) exists(ctx context.Context, resourceURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
