package checks

import (
	"reflect"
	"testing"
)

func TestCheckSchema(t *testing.T) {
	t.Parallel()

	t.Run("empty HTML", func(t *testing.T) {
		t.Parallel()

		report := CheckSchema("")
		if report.BlocksFound != 0 {
			t.Errorf("BlocksFound = %d, want 0", report.BlocksFound)
		}
		if report.Detail != "No HTML to analyze" {
			t.Errorf("Detail = %q", report.Detail)
		}
	})

	t.Run("single article block", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Article","headline":"Hi","author":"Ann"}
</script>
</head><body></body></html>`

		report := CheckSchema(html)
		if report.BlocksFound != 1 {
			t.Fatalf("BlocksFound = %d, want 1", report.BlocksFound)
		}
		block := report.Blocks[0]
		if block.Type != "Article" {
			t.Errorf("Type = %q, want Article", block.Type)
		}
		if want := []string{"author", "headline"}; !reflect.DeepEqual(block.Properties, want) {
			t.Errorf("Properties = %v, want %v", block.Properties, want)
		}
		if report.Score != 13 {
			t.Errorf("Score = %v, want 13 (base 8 + high value 5)", report.Score)
		}
		if report.Detail != "1 JSON-LD block(s) found" {
			t.Errorf("Detail = %q", report.Detail)
		}
	})

	t.Run("array payload flattens to multiple blocks", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
[{"@type":"FAQPage","mainEntity":[]},{"@type":"WebSite","name":"Example"}]
</script>`

		report := CheckSchema(html)
		if report.BlocksFound != 2 {
			t.Fatalf("BlocksFound = %d, want 2", report.BlocksFound)
		}
		if report.Blocks[0].Type != "FAQPage" || report.Blocks[1].Type != "WebSite" {
			t.Errorf("Blocks = %+v", report.Blocks)
		}
		// base 8 + FAQPage 5 + WebSite 3
		if report.Score != 16 {
			t.Errorf("Score = %v, want 16", report.Score)
		}
	})

	t.Run("list valued type joins", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type":["Organization","Brand"]}</script>`

		report := CheckSchema(html)
		if report.BlocksFound != 1 {
			t.Fatalf("BlocksFound = %d, want 1", report.BlocksFound)
		}
		if got, want := report.Blocks[0].Type, "Organization, Brand"; got != want {
			t.Errorf("Type = %q, want %q", got, want)
		}
	})

	t.Run("missing type is Unknown", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"name":"no type"}</script>`

		report := CheckSchema(html)
		if report.BlocksFound != 1 {
			t.Fatalf("BlocksFound = %d, want 1", report.BlocksFound)
		}
		if report.Blocks[0].Type != "Unknown" {
			t.Errorf("Type = %q, want Unknown", report.Blocks[0].Type)
		}
	})

	t.Run("malformed block skipped, valid block kept", func(t *testing.T) {
		t.Parallel()

		html := `
<script type="application/ld+json">{not json at all</script>
<script type="application/ld+json">{"@type":"Product","name":"Widget"}</script>`

		report := CheckSchema(html)
		if report.BlocksFound != 1 {
			t.Fatalf("BlocksFound = %d, want 1", report.BlocksFound)
		}
		if report.Blocks[0].Type != "Product" {
			t.Errorf("Type = %q, want Product", report.Blocks[0].Type)
		}
	})

	t.Run("no structured data", func(t *testing.T) {
		t.Parallel()

		report := CheckSchema("<html><body><p>plain page</p></body></html>")
		if report.BlocksFound != 0 {
			t.Errorf("BlocksFound = %d, want 0", report.BlocksFound)
		}
		if report.Score != 0 {
			t.Errorf("Score = %v, want 0", report.Score)
		}
		if report.Detail != "No JSON-LD found" {
			t.Errorf("Detail = %q", report.Detail)
		}
	})
}
