package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Extraction thresholds. The readability rung demands more text than the
// semantic rungs because its output is already boilerplate-free; a short
// readability result usually means the algorithm latched onto a sidebar.
// Both thresholds are strict: exactly the threshold length fails.
const (
	readabilityMinChars = 100
	semanticMinChars    = 50
)

// MainContent extracts the main content region from raw HTML.
//
// Strategy, in order of preference:
//  1. Readability extraction (best quality)
//  2. The <main> element
//  3. The largest <article> element
//  4. The element with role="main"
//  5. The <body> element
//  6. The input unchanged if nothing above matched
//
// The returned string is an HTML fragment containing only the chosen
// region. Empty or whitespace-only input returns "".
func MainContent(rawHTML string) string {
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	if content := readabilityContent(rawHTML); content != "" {
		return content
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	if content := semanticContent(doc.Find("main").First()); content != "" {
		return content
	}

	if content := largestArticle(doc); content != "" {
		return content
	}

	if content := semanticContent(doc.Find(`[role='main']`).First()); content != "" {
		return content
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		if content, err := goquery.OuterHtml(body); err == nil {
			return content
		}
	}

	return rawHTML
}

// readabilityContent runs the readability algorithm and returns the
// extracted region as HTML, or "" if extraction failed or produced too
// little text to trust.
func readabilityContent(rawHTML string) string {
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{})
	if err != nil || result == nil {
		return ""
	}
	if len(strings.TrimSpace(result.ContentText)) <= readabilityMinChars {
		return ""
	}
	if result.ContentNode == nil {
		return ""
	}

	var sb strings.Builder
	if err := html.Render(&sb, result.ContentNode); err != nil {
		return ""
	}
	return sb.String()
}

// semanticContent returns the selection's outer HTML if it carries enough
// text, or "" otherwise.
func semanticContent(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	if len(strings.TrimSpace(sel.Text())) <= semanticMinChars {
		return ""
	}
	content, err := goquery.OuterHtml(sel)
	if err != nil {
		return ""
	}
	return content
}

// largestArticle picks the <article> with the most text. Ties keep the
// earliest in document order because Each visits in order and replacement
// requires a strictly larger candidate.
func largestArticle(doc *goquery.Document) string {
	var largest *goquery.Selection
	largestLen := -1

	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		textLen := len(strings.TrimSpace(s.Text()))
		if textLen > largestLen {
			largest = s
			largestLen = textLen
		}
	})

	if largest == nil || largestLen <= semanticMinChars {
		return ""
	}
	content, err := goquery.OuterHtml(largest)
	if err != nil {
		return ""
	}
	return content
}
