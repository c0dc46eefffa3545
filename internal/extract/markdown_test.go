package extract

import (
	"strings"
	"testing"
)

func TestToMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("empty input yields empty output", func(t *testing.T) {
		t.Parallel()

		got, err := ToMarkdown("  \n ")
		if err != nil {
			t.Fatalf("ToMarkdown() error = %v", err)
		}
		if got != "" {
			t.Errorf("ToMarkdown(whitespace) = %q, want empty", got)
		}
	})

	t.Run("preserves structure", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Title</h1><p>Intro.</p><ul><li>one</li><li>two</li></ul><pre><code>ls -la</code></pre><a href="https://example.com">link</a>`
		got, err := ToMarkdown(html)
		if err != nil {
			t.Fatalf("ToMarkdown() error = %v", err)
		}

		if !strings.Contains(got, "# Title") {
			t.Errorf("expected ATX heading, got %q", got)
		}
		if !strings.Contains(got, "- one") {
			t.Errorf("expected dash bullet, got %q", got)
		}
		if !strings.Contains(got, "```") {
			t.Errorf("expected fenced code block, got %q", got)
		}
		if !strings.Contains(got, "[link](https://example.com)") {
			t.Errorf("expected markdown link, got %q", got)
		}
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>`
		got, err := ToMarkdown(html)
		if err != nil {
			t.Fatalf("ToMarkdown() error = %v", err)
		}
		if !strings.Contains(got, "| a | b |") {
			t.Errorf("expected markdown table, got %q", got)
		}
	})

	t.Run("exactly one trailing newline", func(t *testing.T) {
		t.Parallel()

		got, err := ToMarkdown("<p>text</p>")
		if err != nil {
			t.Fatalf("ToMarkdown() error = %v", err)
		}
		if !strings.HasSuffix(got, "\n") {
			t.Errorf("expected trailing newline, got %q", got)
		}
		if strings.HasSuffix(got, "\n\n") {
			t.Errorf("expected a single trailing newline, got %q", got)
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "three blank lines collapse to two",
			in:   "a\n\n\n\nb",
			want: "a\n\n\nb\n",
		},
		{
			name: "many blank lines collapse to two",
			in:   "a\n\n\n\n\n\n\nb",
			want: "a\n\n\nb\n",
		},
		{
			name: "two blank lines stay",
			in:   "a\n\n\nb",
			want: "a\n\n\nb\n",
		},
		{
			name: "one blank line stays",
			in:   "a\n\nb",
			want: "a\n\nb\n",
		},
		{
			name: "empty stays empty",
			in:   "   \n\n  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalize(tt.in); got != tt.want {
				t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarkdownFromHTML(t *testing.T) {
	t.Parallel()

	html := page(`<nav>menu</nav><main><h1>Guide</h1><p>` +
		strings.Repeat("Useful words. ", 10) +
		`</p><script>track()</script></main>`)

	got, err := MarkdownFromHTML(html, nil)
	if err != nil {
		t.Fatalf("MarkdownFromHTML() error = %v", err)
	}
	if !strings.Contains(got, "# Guide") {
		t.Errorf("expected heading in markdown, got %q", got)
	}
	if strings.Contains(got, "menu") {
		t.Errorf("expected nav stripped, got %q", got)
	}
	if strings.Contains(got, "track()") {
		t.Errorf("expected script stripped, got %q", got)
	}
}
