package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestTruncatingHandler_TruncatesLongValues tests that oversized string
// attributes are shortened.
func TestTruncatingHandler_TruncatesLongValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	long := strings.Repeat("x", MaxAttrValueLen+100)
	logger.Debug("page fetched", "body", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("expected long value to be truncated, found full value in output")
	}
	if !strings.Contains(out, "truncated") {
		t.Errorf("expected truncation marker in output, got %q", out)
	}
}

// TestTruncatingHandler_KeepsShortValues tests that values under the limit
// pass through unchanged.
func TestTruncatingHandler_KeepsShortValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.Debug("page fetched", "url", "https://example.com/docs")

	out := buf.String()
	if !strings.Contains(out, "https://example.com/docs") {
		t.Errorf("expected short value unchanged, got %q", out)
	}
	if strings.Contains(out, "truncated") {
		t.Errorf("unexpected truncation marker in output: %q", out)
	}
}

// TestTruncatingHandler_HandlesGroups tests recursive truncation in groups.
func TestTruncatingHandler_HandlesGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	long := strings.Repeat("y", MaxAttrValueLen*2)
	logger.Debug("crawl step", slog.Group("page", "html", long, "status", 200))

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("expected grouped long value to be truncated")
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("expected non-string group attr preserved, got %q", out)
	}
}

// TestTruncatingHandler_WithAttrs tests that pre-bound attributes are truncated.
func TestTruncatingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	long := strings.Repeat("z", MaxAttrValueLen+1)
	logger := base.With("payload", long)
	logger.Debug("bound attrs")

	if strings.Contains(buf.String(), long) {
		t.Error("expected bound long value to be truncated")
	}
}

// TestNewLogger_LevelSelection tests verbose flag behavior.
func TestNewLogger_LevelSelection(t *testing.T) {
	t.Parallel()

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)
		logger.Debug("visible")
		if !strings.Contains(buf.String(), "visible") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("non-verbose suppresses info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)
		logger.Info("hidden")
		if buf.Len() != 0 {
			t.Errorf("expected no output for info at warn level, got %q", buf.String())
		}
	})
}
