package checks

import (
	"context"
	"net/http"
	"strings"

	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// Well-known context file paths, probed in order. The bare path is tried
// before the .well-known variant because it is by far the more common
// deployment.
var (
	contextFilePaths     = []string{"/llms.txt", "/.well-known/llms.txt"}
	contextFileFullPaths = []string{"/llms-full.txt", "/.well-known/llms-full.txt"}
)

// CheckContextFile probes the well-known llms.txt paths at the site origin.
// Both the short and full variants are checked; either one earns the full
// pillar score. A 200 response with an empty body does not count as found.
func CheckContextFile(ctx context.Context, client *fetch.Client, origin string) model.ContextFileReport {
	shortURL := probeFirst(ctx, client, origin, contextFilePaths)
	fullURL := probeFirst(ctx, client, origin, contextFileFullPaths)

	report := model.ContextFileReport{
		Found:     shortURL != "",
		URL:       shortURL,
		FullFound: fullURL != "",
		FullURL:   fullURL,
	}
	report.Score = scoring.ScoreContextFile(report.Found, report.FullFound)

	var parts []string
	if report.Found {
		parts = append(parts, "llms.txt at "+shortURL)
	}
	if report.FullFound {
		parts = append(parts, "llms-full.txt at "+fullURL)
	}
	if len(parts) > 0 {
		report.Detail = "Found: " + strings.Join(parts, ", ")
	} else {
		report.Detail = "llms.txt not found"
	}

	return report
}

// probeFirst returns the first probed URL that answers 200 with non-empty
// content, or empty string if none does. Fetch errors on one path do not
// stop the probe of the next.
func probeFirst(ctx context.Context, client *fetch.Client, origin string, paths []string) string {
	for _, path := range paths {
		probeURL := origin + path
		resp, err := client.Get(ctx, probeURL)
		if err != nil {
			continue
		}
		if resp.StatusCode == http.StatusOK && len(strings.TrimSpace(string(resp.Body))) > 0 {
			return probeURL
		}
	}
	return ""
}
