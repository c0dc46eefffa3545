package extract

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// excessBlankLines matches runs of three or more consecutive blank lines.
// Conversion keeps at most one blank line between blocks, so two in the
// normalized output always came from intentional spacing.
var excessBlankLines = regexp.MustCompile(`\n{4,}`)

// ToMarkdown converts an HTML fragment to GitHub Flavored Markdown.
// Structure is preserved: ATX headings, dash bullets, fenced code blocks,
// links, and tables. The output is normalized so runs of three or more
// blank lines collapse to two and non-empty output ends with exactly one
// newline. Empty input yields "".
func ToMarkdown(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	conv := md.NewConverter("", true, nil)
	conv.Use(plugin.GitHubFlavored())

	out, err := conv.ConvertString(fragment)
	if err != nil {
		return "", err
	}

	return normalize(out), nil
}

// MarkdownFromHTML runs the full pipeline on raw page HTML: extract the
// main content, strip boilerplate, and convert to markdown. A nil selector
// list means DefaultStripSelectors.
func MarkdownFromHTML(rawHTML string, stripSelectors []string) (string, error) {
	content := MainContent(rawHTML)
	sanitized := Sanitize(content, stripSelectors)
	return ToMarkdown(sanitized)
}

// normalize collapses excessive blank lines and enforces exactly one
// trailing newline on non-empty output.
func normalize(markdown string) string {
	markdown = excessBlankLines.ReplaceAllString(markdown, "\n\n\n")
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}
	return markdown + "\n"
}
