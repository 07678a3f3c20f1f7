package model

// AuditReport holds the complete result of auditing a web page. It is a flat
// value object: one instance per audit, populated stage by stage, serialized
// as-is for the consumer. When Error is set the audit did not complete and
// every measurable field keeps its zero default.
type AuditReport struct {
	URL            string `json:"url"`
	Status         int    `json:"status,omitempty"`
	ResponseTimeMs int64  `json:"responseTimeMs,omitempty"`
	ContentType    string `json:"contentType,omitempty"`
	IsHTTPS        bool   `json:"isHttps"`
	HasHSTS        bool   `json:"hasHsts"`

	HTMLVersion     string `json:"htmlVersion,omitempty"`
	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	H1Count         int    `json:"h1Count"`
	ImgCount        int    `json:"imgCount"`
	ImgWithoutAlt   int    `json:"imgWithoutAlt"`
	LinkCount       int    `json:"linkCount"`
	ExternalLinks   int    `json:"externalLinks"`
	ScriptCount     int    `json:"scriptCount"`
	InlineStyles    int    `json:"inlineStyles"`
	HasViewport     bool   `json:"hasViewport"`
	IsResponsive    bool   `json:"isResponsive"`
	HasRobotsTxt    bool   `json:"hasRobotsTxt"`
	HasSitemap      bool   `json:"hasSitemap"`
	HasLoginForm    bool   `json:"hasLoginForm"`

	ImageIssues     []ImageIssue    `json:"imageIssues"`
	BrokenLinks     []BrokenLink    `json:"brokenLinks"`
	RedirectIssues  []RedirectIssue `json:"redirectIssues"`
	HasMixedContent bool            `json:"hasMixedContent"`

	TTFBMs int64 `json:"ttfbMs"`
	FCPMs  int64 `json:"fcpMs"`
	LCPMs  int64 `json:"lcpMs"`

	Score int    `json:"score"`
	Error string `json:"error,omitempty"`
}

// NewAuditReport returns a report for the given URL with issue collections
// initialized, so they serialize as empty arrays rather than null.
func NewAuditReport(targetURL string) *AuditReport {
	return &AuditReport{
		URL:            targetURL,
		ImageIssues:    []ImageIssue{},
		BrokenLinks:    []BrokenLink{},
		RedirectIssues: []RedirectIssue{},
	}
}

// ImageIssue describes one flagged image, in document order.
type ImageIssue struct {
	Src                 string `json:"src"`
	MissingAlt          bool   `json:"missingAlt"`
	MissingModernFormat bool   `json:"missingModernFormat"`
	Oversized           bool   `json:"oversized"`
}

// BrokenLink describes one failed link probe. Status is zero when the probe
// never got an HTTP response.
type BrokenLink struct {
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Broken bool   `json:"broken"`
}

// RedirectIssue describes a host variant that resolves somewhere unexpected.
type RedirectIssue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON shape returned on request-level failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}
