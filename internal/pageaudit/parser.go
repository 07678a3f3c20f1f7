package pageaudit

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Image is one img element in document order.
type Image struct {
	Src    string
	Alt    string
	HasAlt bool
}

// Page holds everything extracted from the fetched markup.
type Page struct {
	HTMLVersion     string
	Title           string
	MetaDescription string
	H1Count         int
	Images          []Image
	Anchors         []string
	LinkCount       int
	ExternalLinks   int
	ScriptCount     int
	InlineStyles    int
	HasViewport     bool
	HasLoginForm    bool
	HasMixedContent bool
}

// ParsePage builds the structural inventory of a page from its raw markup.
// The base URL is the effective (post-redirect) address of the page; anchor
// hrefs resolve against it, and an anchor counts as external when its
// resolved origin differs from the base origin. Anchors whose hrefs cannot
// be parsed are excluded from both counts.
func ParsePage(body []byte, base *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &Page{
		HTMLVersion:     detectHTMLVersion(body),
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		H1Count:         doc.Find("h1").Length(),
		ScriptCount:     doc.Find("script").Length(),
		InlineStyles:    doc.Find("[style]").Length(),
		HasViewport:     doc.Find(`meta[name="viewport"]`).Length() > 0,
		HasLoginForm:    doc.Find(`input[type="password"]`).Length() > 0,
		HasMixedContent: scanMixedContent(body),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		page.MetaDescription = strings.TrimSpace(desc)
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, hasAlt := s.Attr("alt")
		page.Images = append(page.Images, Image{Src: src, Alt: alt, HasAlt: hasAlt})
	})

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		page.Anchors = append(page.Anchors, href)

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		page.LinkCount++
		if !strings.EqualFold(origin(resolved), origin(base)) {
			page.ExternalLinks++
		}
	})

	return page, nil
}

// origin reduces a URL to its scheme://host identity, port included, which
// is how anchors are classified as internal or external.
func origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// scanMixedContent reports whether the raw markup references any plain
// http:// URL, ignoring localhost. A textual heuristic, not a resource-load
// observation.
func scanMixedContent(body []byte) bool {
	s := string(body)
	for {
		i := strings.Index(s, "http://")
		if i < 0 {
			return false
		}
		rest := s[i+len("http://"):]
		if !strings.HasPrefix(rest, "localhost") {
			return true
		}
		s = rest
	}
}

// detectHTMLVersion runs a cheap tokenizer pass looking for the doctype.
// Content arriving before any doctype means there is none to find.
func detectHTMLVersion(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "Unknown"
		case html.DoctypeToken:
			return versionFromDoctype(z.Token().Data)
		case html.StartTagToken, html.SelfClosingTagToken:
			return "Unknown"
		}
	}
}

// versionFromDoctype maps a doctype declaration to a version label.
// HTML5's doctype has no PUBLIC identifier; legacy doctypes carry one.
// https://www.w3.org/QA/2002/04/valid-dtd-list.html
func versionFromDoctype(data string) string {
	data = strings.ToLower(data)

	if !strings.Contains(data, "public") {
		return "HTML5"
	}

	switch {
	case strings.Contains(data, "xhtml 1.1") || strings.Contains(data, "xhtml basic 1.1"):
		return "XHTML 1.1"
	case strings.Contains(data, "xhtml 1.0"):
		return "XHTML 1.0"
	case strings.Contains(data, "html 4.01"):
		return "HTML 4.01"
	default:
		return "Unknown"
	}
}
