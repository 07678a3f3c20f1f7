package pageaudit

import "github.com/mahim2022/websiteAuditTool/internal/model"

// Deduction weights. Each signal deducts independently from a perfect 100.
const (
	insecurePenalty     = 15
	noViewportPenalty   = 10
	maxAltPenalty       = 5
	brokenLinkPenalty   = 2
	maxBrokenPenalty    = 10
	mixedContentPenalty = 10
	slowPagePenalty     = 5

	slowThresholdMs = 3000
)

// Score reduces the report's findings to a single 0-100 figure. Deductions
// are independent and additive; the result is clamped at zero.
func Score(r *model.AuditReport) int {
	score := 100

	if !r.IsHTTPS {
		score -= insecurePenalty
	}
	if !r.HasViewport {
		score -= noViewportPenalty
	}
	score -= min(maxAltPenalty, r.ImgWithoutAlt)
	score -= min(maxBrokenPenalty, brokenLinkPenalty*len(r.BrokenLinks))
	if r.HasMixedContent {
		score -= mixedContentPenalty
	}
	if r.ResponseTimeMs > slowThresholdMs {
		score -= slowPagePenalty
	}

	return max(score, 0)
}
