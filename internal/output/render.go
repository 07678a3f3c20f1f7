package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/mahim2022/websiteAuditTool/internal/model"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
)

// scoreColor picks the render color for a score: 90 and up green, 70 and up
// yellow, below that red.
func scoreColor(score int) *color.Color {
	switch {
	case score >= 90:
		return good
	case score >= 70:
		return warn
	default:
		return bad
	}
}

// statusColor follows the usual HTTP coloring: 2xx green, 3xx yellow, the
// rest red.
func statusColor(status int) *color.Color {
	switch {
	case status >= 200 && status < 300:
		return good
	case status >= 300 && status < 400:
		return warn
	default:
		return bad
	}
}

// mark renders a yes/no fact, green when ok is the healthy answer.
func mark(ok bool) string {
	if ok {
		return good.Sprint("yes")
	}
	return bad.Sprint("no")
}

// PrintReport writes a human-readable audit report to w.
func PrintReport(w io.Writer, r *model.AuditReport) {
	heading.Fprintf(w, "Audit of %s\n", r.URL)
	fmt.Fprintln(w)

	if r.Error != "" {
		bad.Fprintf(w, "audit failed: %s\n", r.Error)
		return
	}

	heading.Fprintln(w, "Transport")
	fmt.Fprintf(w, "  status %s  latency %dms  content-type %s\n",
		statusColor(r.Status).Sprint(r.Status), r.ResponseTimeMs, r.ContentType)
	fmt.Fprintf(w, "  https %s  hsts %s  mixed content %s\n",
		mark(r.IsHTTPS), mark(r.HasHSTS), mark(!r.HasMixedContent))

	heading.Fprintln(w, "Content")
	fmt.Fprintf(w, "  title %q  html %s\n", r.Title, r.HTMLVersion)
	fmt.Fprintf(w, "  h1 %d  images %d (%d without alt)  links %d (%d external)\n",
		r.H1Count, r.ImgCount, r.ImgWithoutAlt, r.LinkCount, r.ExternalLinks)
	fmt.Fprintf(w, "  scripts %d  inline styles %d  viewport %s  login form %s\n",
		r.ScriptCount, r.InlineStyles, mark(r.HasViewport), mark(!r.HasLoginForm))
	fmt.Fprintf(w, "  robots.txt %s  sitemap %s\n", mark(r.HasRobotsTxt), mark(r.HasSitemap))

	heading.Fprintln(w, "Performance (estimated)")
	fmt.Fprintf(w, "  ttfb %dms  fcp %dms  lcp %dms\n", r.TTFBMs, r.FCPMs, r.LCPMs)

	printIssues(w, r)

	heading.Fprintln(w, "Score")
	scoreColor(r.Score).Fprintf(w, "  %d / 100\n", r.Score)
}

func printIssues(w io.Writer, r *model.AuditReport) {
	if len(r.ImageIssues)+len(r.BrokenLinks)+len(r.RedirectIssues) == 0 {
		return
	}

	heading.Fprintln(w, "Issues")
	for _, img := range r.ImageIssues {
		fmt.Fprintf(w, "  image %s:%s\n", img.Src, imageFlags(img))
	}
	for _, link := range r.BrokenLinks {
		if link.Status != 0 {
			fmt.Fprintf(w, "  broken link %s (%s)\n", link.URL, statusColor(link.Status).Sprint(link.Status))
			continue
		}
		fmt.Fprintf(w, "  broken link %s (%s)\n", link.URL, bad.Sprint("unreachable"))
	}
	for _, issue := range r.RedirectIssues {
		fmt.Fprintf(w, "  redirect [%s] %s\n", issue.Type, issue.Message)
	}
}

func imageFlags(img model.ImageIssue) string {
	flags := ""
	if img.MissingAlt {
		flags += " missing-alt"
	}
	if img.MissingModernFormat {
		flags += " no-webp"
	}
	if img.Oversized {
		flags += " oversized"
	}
	return flags
}
