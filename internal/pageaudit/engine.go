package pageaudit

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"

	"github.com/mahim2022/websiteAuditTool/internal/model"
	"github.com/mahim2022/websiteAuditTool/internal/platform/errs"
)

// User-facing failure descriptions recorded on the report.
const (
	msgInvalidTarget = "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com)."
	msgUnreachable   = "The target URL could not be reached. Check the address."
	msgTimeout       = "The target took too long to respond."
	msgParseFailed   = "Failed to parse the page markup."
)

// linkProber samples and probes outbound links.
type linkProber interface {
	Probe(ctx context.Context, base *url.URL, anchors []string) []model.BrokenLink
}

// redirectChecker verifies host-variant redirect consistency.
type redirectChecker interface {
	Check(ctx context.Context, target *url.URL) []model.RedirectIssue
}

// resourceChecker probes crawler-control resources on the origin.
type resourceChecker interface {
	Check(ctx context.Context, target *url.URL) (hasRobots, hasSitemap bool)
}

// Engine orchestrates the audit pipeline: fetch, markup analysis, auxiliary
// probes, performance estimates, score.
type Engine struct {
	fetcher   Fetcher
	links     linkProber
	redirects redirectChecker
	resources resourceChecker
	logger    *slog.Logger
}

// NewEngine returns an Engine backed by the given collaborators.
func NewEngine(fetcher Fetcher, links linkProber, redirects redirectChecker, resources resourceChecker, logger *slog.Logger) *Engine {
	return &Engine{
		fetcher:   fetcher,
		links:     links,
		redirects: redirects,
		resources: resources,
		logger:    logger,
	}
}

// Audit runs the full pipeline against one URL and always returns a report.
// When the target cannot be fetched or its markup cannot be parsed, the
// report carries the failure in its Error field, every measurable field
// keeps its zero default, and no auxiliary probe fires. Auxiliary failures
// never fail the audit; they degrade into issue entries and absent flags.
func (e *Engine) Audit(ctx context.Context, targetURL string) *model.AuditReport {
	report := model.NewAuditReport(targetURL)

	target, err := url.Parse(targetURL)
	if err != nil {
		report.Error = msgInvalidTarget
		return report
	}

	fetched, err := e.fetcher.Fetch(ctx, targetURL)
	if err != nil {
		failure := classifyFetchFailure(ctx, err)
		e.logger.Warn("fetch failed", "url", targetURL, "kind", failure.Kind, "error", failure.Cause)
		report.Error = failure.Message
		return report
	}

	report.Status = fetched.StatusCode
	report.ResponseTimeMs = fetched.Latency.Milliseconds()
	report.ContentType = fetched.ContentType
	report.IsHTTPS = fetched.Secure
	report.HasHSTS = fetched.HSTS

	page, err := ParsePage(fetched.Body, fetched.FinalURL)
	if err != nil {
		e.logger.Warn("parse failed", "url", targetURL, "kind", errs.ParsingFailed, "error", err)
		report.Error = msgParseFailed
		return report
	}

	report.HTMLVersion = page.HTMLVersion
	report.Title = page.Title
	report.MetaDescription = page.MetaDescription
	report.H1Count = page.H1Count
	report.ImgCount = len(page.Images)
	report.ImgWithoutAlt = CountMissingAlt(page.Images)
	report.LinkCount = page.LinkCount
	report.ExternalLinks = page.ExternalLinks
	report.ScriptCount = page.ScriptCount
	report.InlineStyles = page.InlineStyles
	report.HasViewport = page.HasViewport
	report.IsResponsive = page.HasViewport
	report.HasLoginForm = page.HasLoginForm
	report.HasMixedContent = page.HasMixedContent

	report.ImageIssues = InspectImages(page.Images)

	// The auxiliary probes are independent and each writes its own report
	// fields, so they run concurrently and join before scoring. Link probes
	// resolve against the effective URL the markup came from; the redirect
	// and resource checks address the origin the caller asked about.
	var wg sync.WaitGroup
	wg.Go(func() {
		report.BrokenLinks = e.links.Probe(ctx, fetched.FinalURL, page.Anchors)
	})
	wg.Go(func() {
		report.RedirectIssues = e.redirects.Check(ctx, target)
	})
	wg.Go(func() {
		report.HasRobotsTxt, report.HasSitemap = e.resources.Check(ctx, target)
	})
	wg.Wait()

	perf := EstimatePerformance(fetched.Latency, len(fetched.Body))
	report.TTFBMs = perf.TTFBMs
	report.FCPMs = perf.FCPMs
	report.LCPMs = perf.LCPMs

	report.Score = Score(report)
	return report
}

// classifyFetchFailure distinguishes a slow target from an unreachable one
// for the report's failure description.
func classifyFetchFailure(ctx context.Context, cause error) *errs.AppError {
	if errors.Is(cause, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &errs.AppError{Kind: errs.Timeout, Message: msgTimeout, Cause: cause}
	}
	return &errs.AppError{Kind: errs.Unreachable, Message: msgUnreachable, Cause: cause}
}
