package crawler

import (
	"strings"
	"testing"
)

func TestParser(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and links", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>  Docs Home </title></head><body>
<a href="/guide">Guide</a>
<a href="https://example.com/api">API</a>
<a href="https://other.example/away">Away</a>
</body></html>`

		parser, err := NewParser("https://example.com/")
		if err != nil {
			t.Fatalf("NewParser() error = %v", err)
		}
		result, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if result.Title != "Docs Home" {
			t.Errorf("Title = %q, want %q", result.Title, "Docs Home")
		}
		if len(result.Links) != 3 {
			t.Errorf("len(Links) = %d, want 3", len(result.Links))
		}
		wantInternal := []string{"https://example.com/guide", "https://example.com/api"}
		if len(result.InternalLinks) != 2 {
			t.Fatalf("InternalLinks = %v, want %v", result.InternalLinks, wantInternal)
		}
		for i, want := range wantInternal {
			if result.InternalLinks[i] != want {
				t.Errorf("InternalLinks[%d] = %q, want %q", i, result.InternalLinks[i], want)
			}
		}
		if len(result.ExternalLinks) != 1 || result.ExternalLinks[0] != "https://other.example/away" {
			t.Errorf("ExternalLinks = %v", result.ExternalLinks)
		}
	})

	t.Run("skips non-navigational schemes", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<a href="javascript:void(0)">js</a>
<a href="mailto:a@example.com">mail</a>
<a href="tel:+123">tel</a>
<a href="data:text/plain,x">data</a>
<a href="#section">fragment</a>
<a href="/real">real</a>
</body>`

		parser, err := NewParser("https://example.com/")
		if err != nil {
			t.Fatalf("NewParser() error = %v", err)
		}
		result, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if len(result.Links) != 1 || result.Links[0] != "https://example.com/real" {
			t.Errorf("Links = %v, want only the real link", result.Links)
		}
	})

	t.Run("different port is external", func(t *testing.T) {
		t.Parallel()

		html := `<body><a href="https://example.com:8443/admin">admin</a></body>`

		parser, err := NewParser("https://example.com/")
		if err != nil {
			t.Fatalf("NewParser() error = %v", err)
		}
		result, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if len(result.InternalLinks) != 0 {
			t.Errorf("InternalLinks = %v, want none", result.InternalLinks)
		}
		if len(result.ExternalLinks) != 1 {
			t.Errorf("ExternalLinks = %v, want one", result.ExternalLinks)
		}
	})

	t.Run("relative links resolve against page URL", func(t *testing.T) {
		t.Parallel()

		html := `<body><a href="sibling">next</a></body>`

		parser, err := NewParser("https://example.com/docs/intro")
		if err != nil {
			t.Fatalf("NewParser() error = %v", err)
		}
		result, err := parser.Parse(strings.NewReader(html))
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if len(result.Links) != 1 || result.Links[0] != "https://example.com/docs/sibling" {
			t.Errorf("Links = %v, want resolved sibling", result.Links)
		}
	})
}
