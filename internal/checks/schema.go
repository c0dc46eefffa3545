package checks

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// CheckSchema extracts and scores JSON-LD structured data embedded in the
// page HTML. Malformed script blocks are skipped rather than failing the
// whole check; real pages routinely carry one broken block next to valid
// ones.
func CheckSchema(html string) model.SchemaReport {
	if html == "" {
		return model.SchemaReport{Detail: "No HTML to analyze"}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.SchemaReport{Detail: fmt.Sprintf("Failed to parse HTML: %v", err)}
	}

	var blocks []model.SchemaBlock
	doc.Find(`script[type='application/ld+json']`).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, parseLinkedData(s.Text())...)
	})

	report := model.SchemaReport{
		BlocksFound: len(blocks),
		Blocks:      blocks,
	}

	types := make([]string, 0, len(blocks))
	for _, b := range blocks {
		types = append(types, b.Type)
	}
	report.Score = scoring.ScoreSchema(types)

	if report.BlocksFound > 0 {
		report.Detail = fmt.Sprintf("%d JSON-LD block(s) found", report.BlocksFound)
	} else {
		report.Detail = "No JSON-LD found"
	}

	return report
}

// parseLinkedData parses one script payload into schema blocks. A payload
// may be a single object or an array of objects; non-object entries and
// unparseable payloads are dropped.
func parseLinkedData(payload string) []model.SchemaBlock {
	var raw any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil
	}

	items, ok := raw.([]any)
	if !ok {
		items = []any{raw}
	}

	var blocks []model.SchemaBlock
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		blocks = append(blocks, model.SchemaBlock{
			Type:       schemaType(obj),
			Properties: schemaProperties(obj),
		})
	}
	return blocks
}

// schemaType extracts the declared @type. List-valued types are joined
// with ", "; a missing type becomes "Unknown".
func schemaType(obj map[string]any) string {
	switch typ := obj["@type"].(type) {
	case string:
		return typ
	case []any:
		parts := make([]string, 0, len(typ))
		for _, t := range typ {
			if s, ok := t.(string); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	return "Unknown"
}

// schemaProperties returns the top-level keys that are not @-prefixed
// metadata. Keys are sorted because map iteration order would otherwise
// make reports non-deterministic.
func schemaProperties(obj map[string]any) []string {
	props := make([]string, 0, len(obj))
	for k := range obj {
		if !strings.HasPrefix(k, "@") {
			props = append(props, k)
		}
	}
	sort.Strings(props)
	return props
}
