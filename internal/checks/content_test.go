package checks

import (
	"strings"
	"testing"
)

func TestCheckContent(t *testing.T) {
	t.Parallel()

	t.Run("empty markdown", func(t *testing.T) {
		t.Parallel()

		report := CheckContent("")
		if report.WordCount != 0 {
			t.Errorf("WordCount = %d, want 0", report.WordCount)
		}
		if report.Detail != "No content extracted" {
			t.Errorf("Detail = %q", report.Detail)
		}
	})

	t.Run("counts words and characters", func(t *testing.T) {
		t.Parallel()

		md := "one two three four five"
		report := CheckContent(md)
		if report.WordCount != 5 {
			t.Errorf("WordCount = %d, want 5", report.WordCount)
		}
		if report.CharCount != len(md) {
			t.Errorf("CharCount = %d, want %d", report.CharCount, len(md))
		}
	})

	t.Run("detects structure", func(t *testing.T) {
		t.Parallel()

		md := "# Title\n\nIntro text.\n\n- first item\n- second item\n\n```go\nfmt.Println()\n```\n"
		report := CheckContent(md)
		if !report.HasHeadings {
			t.Error("HasHeadings = false, want true")
		}
		if !report.HasLists {
			t.Error("HasLists = false, want true")
		}
		if !report.HasCodeBlocks {
			t.Error("HasCodeBlocks = false, want true")
		}
	})

	t.Run("inline hash is not a heading", func(t *testing.T) {
		t.Parallel()

		report := CheckContent("this line mentions #hashtag mid sentence")
		if report.HasHeadings {
			t.Error("HasHeadings = true, want false for inline hash")
		}
	})

	t.Run("indented list marker detected", func(t *testing.T) {
		t.Parallel()

		report := CheckContent("  - nested item\n")
		if !report.HasLists {
			t.Error("HasLists = false, want true for indented marker")
		}
	})

	t.Run("substantial structured page scores high", func(t *testing.T) {
		t.Parallel()

		md := "# Guide\n\n" + strings.Repeat("word ", 1500) + "\n- a\n- b\n\n```sh\nls\n```\n"
		report := CheckContent(md)
		if report.Score != 40 {
			t.Errorf("Score = %v, want 40", report.Score)
		}
		if !strings.Contains(report.Detail, "words, has headings, has lists, has code blocks") {
			t.Errorf("Detail = %q", report.Detail)
		}
	})

	t.Run("thin page scores zero base", func(t *testing.T) {
		t.Parallel()

		report := CheckContent("just a few words here")
		if report.Score != 0 {
			t.Errorf("Score = %v, want 0", report.Score)
		}
	})
}
