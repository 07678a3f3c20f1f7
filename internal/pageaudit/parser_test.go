package pageaudit

import (
	"net/url"
	"testing"
)

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func parseFixture(t *testing.T, html string) *Page {
	t.Helper()
	page, err := ParsePage([]byte(html), mustParseURL("https://example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return page
}

func TestParsePage_HTMLVersion(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "HTML5 lowercase",
			html:     `<!DOCTYPE html><html><head><title>Test</title></head><body></body></html>`,
			expected: "HTML5",
		},
		{
			name:     "HTML5 uppercase",
			html:     `<!DOCTYPE HTML><html><head><title>Test</title></head><body></body></html>`,
			expected: "HTML5",
		},
		{
			name:     "HTML 4.01 Strict",
			html:     `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><html><head><title>Test</title></head><body></body></html>`,
			expected: "HTML 4.01",
		},
		{
			name:     "HTML 4.01 Transitional",
			html:     `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd"><html><head><title>Test</title></head><body></body></html>`,
			expected: "HTML 4.01",
		},
		{
			name:     "XHTML 1.0 Strict",
			html:     `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd"><html><head><title>Test</title></head><body></body></html>`,
			expected: "XHTML 1.0",
		},
		{
			name:     "XHTML 1.1",
			html:     `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd"><html><head><title>Test</title></head><body></body></html>`,
			expected: "XHTML 1.1",
		},
		{
			name:     "XHTML Basic 1.1",
			html:     `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML Basic 1.1//EN" "http://www.w3.org/TR/xhtml-basic/xhtml-basic11.dtd"><html><head><title>Test</title></head><body></body></html>`,
			expected: "XHTML 1.1",
		},
		{
			name:     "no doctype",
			html:     `<html><head><title>Test</title></head><body></body></html>`,
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parseFixture(t, tt.html)
			if page.HTMLVersion != tt.expected {
				t.Errorf("HTMLVersion = %q, want %q", page.HTMLVersion, tt.expected)
			}
		})
	}
}

func TestParsePage_Title(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name:     "simple title",
			html:     `<!DOCTYPE html><html><head><title>Hello World</title></head><body></body></html>`,
			expected: "Hello World",
		},
		{
			name:     "whitespace trimmed",
			html:     "<!DOCTYPE html><html><head><title>\n  Spaced Out \t</title></head><body></body></html>",
			expected: "Spaced Out",
		},
		{
			name:     "missing title",
			html:     `<!DOCTYPE html><html><head></head><body></body></html>`,
			expected: "",
		},
		{
			name:     "empty title",
			html:     `<!DOCTYPE html><html><head><title></title></head><body></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parseFixture(t, tt.html)
			if page.Title != tt.expected {
				t.Errorf("Title = %q, want %q", page.Title, tt.expected)
			}
		})
	}
}

func TestParsePage_MetaDescription(t *testing.T) {
	html := `<!DOCTYPE html><html><head>
	<title>T</title>
	<meta name="description" content=" A fine page. ">
	</head><body></body></html>`

	page := parseFixture(t, html)
	if page.MetaDescription != "A fine page." {
		t.Errorf("MetaDescription = %q, want %q", page.MetaDescription, "A fine page.")
	}

	bare := parseFixture(t, `<!DOCTYPE html><html><head><title>T</title></head><body></body></html>`)
	if bare.MetaDescription != "" {
		t.Errorf("MetaDescription = %q, want empty", bare.MetaDescription)
	}
}

func TestParsePage_Counts(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>T</title>
	<script src="/app.js"></script>
	</head><body>
	<h1>One</h1><h1>Two</h1><h2>Sub</h2>
	<p style="color:red">styled</p>
	<div style="margin:0"><span>plain</span></div>
	<script>console.log("inline")</script>
	</body></html>`

	page := parseFixture(t, html)
	if page.H1Count != 2 {
		t.Errorf("H1Count = %d, want 2", page.H1Count)
	}
	if page.ScriptCount != 2 {
		t.Errorf("ScriptCount = %d, want 2", page.ScriptCount)
	}
	if page.InlineStyles != 2 {
		t.Errorf("InlineStyles = %d, want 2", page.InlineStyles)
	}
}

func TestParsePage_Images(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>T</title></head><body>
	<img src="first.jpg" alt="First">
	<img src="second.png">
	<img src="third.webp" alt="">
	</body></html>`

	page := parseFixture(t, html)
	if len(page.Images) != 3 {
		t.Fatalf("len(Images) = %d, want 3", len(page.Images))
	}

	if page.Images[0].Src != "first.jpg" || !page.Images[0].HasAlt || page.Images[0].Alt != "First" {
		t.Errorf("Images[0] = %+v, want src first.jpg with alt First", page.Images[0])
	}
	if page.Images[1].HasAlt {
		t.Errorf("Images[1].HasAlt = true, want false")
	}
	if !page.Images[2].HasAlt || page.Images[2].Alt != "" {
		t.Errorf("Images[2] = %+v, want present but empty alt", page.Images[2])
	}
}

func TestParsePage_Links(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>T</title></head><body>
	<a href="/about">About</a>
	<a href="https://example.com/contact">Contact</a>
	<a href="https://other.com/page">Other</a>
	<a href="https://www.example.com/home">Subdomain</a>
	<a href="#section">Fragment</a>
	<a href="://bad">Broken</a>
	</body></html>`

	page := parseFixture(t, html)

	// The raw anchor inventory keeps everything, resolvable or not.
	if len(page.Anchors) != 6 {
		t.Errorf("len(Anchors) = %d, want 6", len(page.Anchors))
	}

	// "://bad" does not resolve and is excluded from both counts.
	if page.LinkCount != 5 {
		t.Errorf("LinkCount = %d, want 5", page.LinkCount)
	}

	// other.com and www.example.com are foreign origins; /about, /contact
	// and the fragment resolve back to the base origin.
	if page.ExternalLinks != 2 {
		t.Errorf("ExternalLinks = %d, want 2", page.ExternalLinks)
	}
}

func TestParsePage_MailtoCountsAsExternal(t *testing.T) {
	html := `<!DOCTYPE html><html><head><title>T</title></head><body>
	<a href="mailto:team@example.com">Email</a>
	</body></html>`

	page := parseFixture(t, html)
	if page.LinkCount != 1 {
		t.Errorf("LinkCount = %d, want 1", page.LinkCount)
	}
	if page.ExternalLinks != 1 {
		t.Errorf("ExternalLinks = %d, want 1", page.ExternalLinks)
	}
}

func TestParsePage_Viewport(t *testing.T) {
	withViewport := `<!DOCTYPE html><html><head><title>T</title>
	<meta name="viewport" content="width=device-width, initial-scale=1">
	</head><body></body></html>`

	if !parseFixture(t, withViewport).HasViewport {
		t.Error("HasViewport = false, want true")
	}

	without := `<!DOCTYPE html><html><head><title>T</title></head><body></body></html>`
	if parseFixture(t, without).HasViewport {
		t.Error("HasViewport = true, want false")
	}
}

func TestParsePage_LoginForm(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected bool
	}{
		{
			name:     "has password input",
			html:     `<!DOCTYPE html><html><head><title>T</title></head><body><form><input type="password"></form></body></html>`,
			expected: true,
		},
		{
			name:     "no password input",
			html:     `<!DOCTYPE html><html><head><title>T</title></head><body><form><input type="text"></form></body></html>`,
			expected: false,
		},
		{
			name:     "no form at all",
			html:     `<!DOCTYPE html><html><head><title>T</title></head><body><p>Hello</p></body></html>`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parseFixture(t, tt.html)
			if page.HasLoginForm != tt.expected {
				t.Errorf("HasLoginForm = %v, want %v", page.HasLoginForm, tt.expected)
			}
		})
	}
}

func TestParsePage_MixedContent(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected bool
	}{
		{
			name:     "insecure image source",
			html:     `<!DOCTYPE html><html><body><img src="http://cdn.example.net/a.jpg"></body></html>`,
			expected: true,
		},
		{
			name:     "insecure reference in text",
			html:     `<!DOCTYPE html><html><body><p>visit http://example.org for more</p></body></html>`,
			expected: true,
		},
		{
			name:     "localhost is ignored",
			html:     `<!DOCTYPE html><html><body><img src="http://localhost:3000/dev.png"></body></html>`,
			expected: false,
		},
		{
			name:     "insecure reference after a localhost one",
			html:     `<!DOCTYPE html><html><body><img src="http://localhost/a.png"><img src="http://evil.example/b.png"></body></html>`,
			expected: true,
		},
		{
			name:     "all https",
			html:     `<!DOCTYPE html><html><body><img src="https://cdn.example.net/a.jpg"></body></html>`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := parseFixture(t, tt.html)
			if page.HasMixedContent != tt.expected {
				t.Errorf("HasMixedContent = %v, want %v", page.HasMixedContent, tt.expected)
			}
		})
	}
}
