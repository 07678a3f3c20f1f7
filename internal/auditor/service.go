package auditor

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/mahim2022/websiteAuditTool/internal/model"
	"github.com/mahim2022/websiteAuditTool/internal/platform/errs"
	"github.com/mahim2022/websiteAuditTool/internal/platform/requestid"
)

const msgInvalidURL = "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com)."

// Service validates audit requests, delegates to the provider, and logs
// outcomes.
type Service struct {
	provider AuditProvider
	logger   *slog.Logger
}

// NewService wires a Service to its provider.
func NewService(provider AuditProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Audit validates the target URL, runs the audit, and logs the outcome.
// Malformed input is rejected with an InvalidInput AppError before the
// pipeline runs. A target that fails to audit is not an error here: the
// returned report carries the failure.
func (s *Service) Audit(ctx context.Context, targetURL string) (*model.AuditReport, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))

	if err := validateTarget(targetURL); err != nil {
		logger.Warn("rejected audit target", "error", err)
		return nil, err
	}

	report := s.provider.Audit(ctx, targetURL)

	if report.Error != "" {
		logger.Warn("audit did not complete", "reason", report.Error)
		return report, nil
	}

	logger.Info("audit complete",
		"status", report.Status,
		"score", report.Score,
		"latency_ms", report.ResponseTimeMs,
		"broken_links", len(report.BrokenLinks),
		"image_issues", len(report.ImageIssues),
		"redirect_issues", len(report.RedirectIssues),
		"mixed_content", report.HasMixedContent,
	)
	return report, nil
}

// validateTarget enforces that only absolute http(s) URLs reach the pipeline.
func validateTarget(targetURL string) error {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidURL, Cause: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &errs.AppError{Kind: errs.InvalidInput, Message: msgInvalidURL}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &errs.AppError{Kind: errs.InvalidInput, Message: "Only http and https URLs are supported."}
	}
	return nil
}
