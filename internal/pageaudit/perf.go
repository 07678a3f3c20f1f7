package pageaudit

import (
	"math/rand/v2"
	"time"
)

// Performance holds the derived timing estimates in whole milliseconds.
type Performance struct {
	TTFBMs int64
	FCPMs  int64
	LCPMs  int64
}

const (
	connectionOverheadMs = 50
	bytesPerMs           = 100
	maxTransferMs        = 500
	renderJitterMs       = 800
)

// EstimatePerformance derives proxy timing metrics from the one latency
// measurement the audit actually has. Time-to-first-byte discounts a nominal
// connection overhead, first-contentful-paint adds a size-proportional
// transfer cost, and largest-contentful-paint adds bounded random render
// jitter. These are model-based estimates, not observed paint events.
func EstimatePerformance(latency time.Duration, bodyBytes int) Performance {
	ttfb := max(latency.Milliseconds()-connectionOverheadMs, 0)
	fcp := ttfb + min(int64(bodyBytes)/bytesPerMs, maxTransferMs)
	lcp := fcp + rand.Int64N(renderJitterMs)

	return Performance{TTFBMs: ttfb, FCPMs: fcp, LCPMs: lcp}
}
