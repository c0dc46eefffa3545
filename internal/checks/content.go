package checks

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// Markdown structure patterns. These run against extracted markdown, not
// raw HTML, so the simple line-anchored forms are reliable.
var (
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s`)
	listPattern    = regexp.MustCompile(`(?m)^[\s]*[-*+]\s`)
)

// CheckContent analyzes the density and structure of extracted markdown.
// Word count drives the base score; headings, lists, and fenced code
// blocks add bonuses because they survive the HTML-to-text conversion
// that answer engines apply.
func CheckContent(markdown string) model.ContentReport {
	if markdown == "" {
		return model.ContentReport{Detail: "No content extracted"}
	}

	wordCount := len(strings.Fields(markdown))
	report := model.ContentReport{
		WordCount:     wordCount,
		CharCount:     len(markdown),
		HasHeadings:   headingPattern.MatchString(markdown),
		HasLists:      listPattern.MatchString(markdown),
		HasCodeBlocks: strings.Contains(markdown, "```"),
	}
	report.Score = scoring.ScoreContent(report.WordCount, report.HasHeadings, report.HasLists, report.HasCodeBlocks)

	detail := fmt.Sprintf("%d words", report.WordCount)
	if report.HasHeadings {
		detail += ", has headings"
	}
	if report.HasLists {
		detail += ", has lists"
	}
	if report.HasCodeBlocks {
		detail += ", has code blocks"
	}
	report.Detail = detail

	return report
}
