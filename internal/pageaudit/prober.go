package pageaudit

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/mahim2022/websiteAuditTool/internal/model"
)

// defaultSampleLimit bounds how many outbound links one audit probes.
const defaultSampleLimit = 3

// LinkProber samples anchors from the page and probes whether they still
// resolve. Sampling keeps a single audit cheap: this is a health signal,
// not a site-wide link check.
type LinkProber struct {
	client      *http.Client
	limit       int
	concurrency int
}

// NewLinkProber returns a LinkProber probing at most limit links with the
// given worker-pool size. Probes are HEAD requests with a 5s timeout that
// follow redirects and refuse private/reserved addresses.
func NewLinkProber(limit, concurrency int) *LinkProber {
	return newLinkProber(limit, concurrency, safeTransport(concurrency))
}

func newLinkProber(limit, concurrency int, transport http.RoundTripper) *LinkProber {
	if limit < 1 {
		limit = defaultSampleLimit
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &LinkProber{
		client:      newProbeClient(transport),
		limit:       limit,
		concurrency: concurrency,
	}
}

// Probe walks the anchor inventory in document order, skips empty and
// fragment-only hrefs, dedupes by raw href, and probes up to the sample
// limit. An attempt counts toward the limit whether or not it surfaces an
// issue. Results keep document order.
func (p *LinkProber) Probe(ctx context.Context, base *url.URL, anchors []string) []model.BrokenLink {
	sample := sampleAnchors(anchors, p.limit)
	if len(sample) == 0 {
		return []model.BrokenLink{}
	}

	results := make([]*model.BrokenLink, len(sample))
	jobs := make(chan int, len(sample))

	var wg sync.WaitGroup
	for range min(len(sample), p.concurrency) {
		wg.Go(func() {
			for i := range jobs {
				results[i] = p.probeOne(ctx, base, sample[i])
			}
		})
	}

	for i := range sample {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	issues := []model.BrokenLink{}
	for _, res := range results {
		if res != nil {
			issues = append(issues, *res)
		}
	}
	return issues
}

// sampleAnchors applies the skip and dedupe rules and returns the first
// limit probe candidates in document order.
func sampleAnchors(anchors []string, limit int) []string {
	seen := make(map[string]struct{}, limit)
	sample := make([]string, 0, limit)

	for _, href := range anchors {
		if href == "" || strings.HasPrefix(href, "#") {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}

		sample = append(sample, href)
		if len(sample) == limit {
			break
		}
	}
	return sample
}

// probeOne issues the existence probe for one href. A nil return means the
// link looks healthy. Probes cut short by context cancellation are not
// counted against the link.
func (p *LinkProber) probeOne(ctx context.Context, base *url.URL, href string) *model.BrokenLink {
	resolved, err := base.Parse(href)
	if err != nil {
		return &model.BrokenLink{URL: truncateRef(href), Broken: true}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, resolved.String(), nil)
	if err != nil {
		return &model.BrokenLink{URL: truncateRef(resolved.String()), Broken: true}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return &model.BrokenLink{URL: truncateRef(resolved.String()), Broken: true}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &model.BrokenLink{URL: truncateRef(resolved.String()), Status: resp.StatusCode, Broken: true}
	}
	return nil
}
