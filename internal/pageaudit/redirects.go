package pageaudit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mahim2022/websiteAuditTool/internal/model"
)

// RedirectChecker verifies that host variants of the target collapse back to
// the canonical origin instead of wandering elsewhere.
type RedirectChecker struct {
	client *http.Client
}

// NewRedirectChecker returns a RedirectChecker using the shared probe client
// settings: 5s timeout, redirect following, private addresses refused.
func NewRedirectChecker() *RedirectChecker {
	return newRedirectChecker(safeTransport(2))
}

func newRedirectChecker(transport http.RoundTripper) *RedirectChecker {
	return &RedirectChecker{client: newProbeClient(transport)}
}

// hostVariants are the alternate spellings of the target a visitor might
// type. Only the www variant is probed today; the bare and insecure forms
// are synthesized so the full variant set is known, but probing them is an
// open extension, not current behavior.
type hostVariants struct {
	www      string
	bare     string
	insecure string
}

func variantsOf(u *url.URL) hostVariants {
	www, bare := *u, *u
	if strings.HasPrefix(u.Host, "www.") {
		bare.Host = strings.TrimPrefix(u.Host, "www.")
	} else {
		www.Host = "www." + u.Host
	}

	insecure := *u
	insecure.Scheme = "http"

	return hostVariants{
		www:      www.String(),
		bare:     bare.String(),
		insecure: insecure.String(),
	}
}

// Check probes the www variant of a target whose host lacks the www prefix
// and reports when it resolves somewhere outside the canonical origin.
// Probe failures are swallowed: an unreachable variant is not a redirect
// inconsistency.
func (rc *RedirectChecker) Check(ctx context.Context, target *url.URL) []model.RedirectIssue {
	issues := []model.RedirectIssue{}

	if strings.HasPrefix(target.Host, "www.") {
		return issues
	}

	wwwURL := variantsOf(target).www
	final, err := rc.finalURL(ctx, wwwURL)
	if err != nil {
		return issues
	}

	if final != wwwURL && !strings.HasPrefix(final, origin(target)) {
		issues = append(issues, model.RedirectIssue{
			Type:    "www",
			Message: fmt.Sprintf("%s resolves to %s, outside the canonical origin", wwwURL, final),
		})
	}
	return issues
}

// finalURL issues a redirect-following GET and reports where it ended up.
func (rc *RedirectChecker) finalURL(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.Request.URL.String(), nil
}
