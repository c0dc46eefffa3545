package model

import "testing"

// TestPageScoreWeight tests depth-based aggregation weights.
func TestPageScoreWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "homepage has depth 0", url: "https://example.com/", want: 3},
		{name: "no path at all", url: "https://example.com", want: 3},
		{name: "single segment has depth 1", url: "https://example.com/blog", want: 3},
		{name: "trailing slash does not add depth", url: "https://example.com/blog/", want: 3},
		{name: "two segments have depth 2", url: "https://example.com/blog/post", want: 2},
		{name: "three segments have depth 3", url: "https://example.com/blog/2026/post", want: 1},
		{name: "deeper paths stay at weight 1", url: "https://example.com/a/b/c/d/e", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := PageScore{URL: tt.url}
			if got := p.Weight(); got != tt.want {
				t.Errorf("Weight(%q) = %d, want %d", tt.url, got, tt.want)
			}
		})
	}
}

// TestPageScoreSuccessful tests the "successful page" predicate used by
// aggregation.
func TestPageScoreSuccessful(t *testing.T) {
	t.Parallel()

	t.Run("no errors is successful", func(t *testing.T) {
		t.Parallel()

		p := PageScore{URL: "https://example.com/"}
		if !p.Successful() {
			t.Error("expected page without errors to be successful")
		}
	})

	t.Run("error with zero words is not successful", func(t *testing.T) {
		t.Parallel()

		p := PageScore{
			URL:    "https://example.com/broken",
			Errors: []string{"connection refused"},
		}
		if p.Successful() {
			t.Error("expected errored page without content to be unsuccessful")
		}
	})

	t.Run("error with partial content is still successful", func(t *testing.T) {
		t.Parallel()

		// Pages carrying both an error and usable words count toward
		// aggregation. This is intentional behavior.
		p := PageScore{
			URL:     "https://example.com/partial",
			Content: ContentReport{WordCount: 120},
			Errors:  []string{"truncated response"},
		}
		if !p.Successful() {
			t.Error("expected errored page with words to be successful")
		}
	})
}
