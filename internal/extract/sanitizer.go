package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultStripSelectors are the elements removed before markdown
// conversion. They carry chrome and boilerplate rather than content:
// scripts, styles, navigation, page furniture, forms, and embeds.
var DefaultStripSelectors = []string{
	"script",
	"style",
	"noscript",
	"nav",
	"header",
	"footer",
	"aside",
	"form",
	"iframe",
	"[role='navigation']",
	"[role='banner']",
	"[role='contentinfo']",
	"[aria-hidden='true']",
}

// Sanitize removes boilerplate elements from an HTML fragment. The
// selector list is configurable; nil means DefaultStripSelectors.
// Unparseable input is returned unchanged so a downstream converter can
// still make an attempt.
func Sanitize(fragment string, stripSelectors []string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	if stripSelectors == nil {
		stripSelectors = DefaultStripSelectors
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	for _, sel := range stripSelectors {
		doc.Find(sel).Remove()
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return out
}
