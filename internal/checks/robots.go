package checks

import (
	"context"
	"fmt"
	"net/http"

	"github.com/temoto/robotstxt"

	"github.com/hanselhansel/agentlens/internal/fetch"
	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// DefaultAgents is the list of AI crawler user-agents checked against
// robots.txt. It covers the major LLM training and answer-engine bots.
var DefaultAgents = []string{
	"GPTBot",
	"ChatGPT-User",
	"Google-Extended",
	"ClaudeBot",
	"PerplexityBot",
	"Amazonbot",
	"OAI-SearchBot",
	"DeepSeek-AI",
	"Grok",
	"Meta-ExternalAgent",
	"cohere-ai",
	"AI2Bot",
	"ByteSpider",
}

// CheckRobots fetches the site's robots.txt and evaluates root-path access
// for each agent. It returns the report plus the raw robots.txt text so
// discovery can reuse it for URL filtering without a second fetch.
//
// A missing or unfetchable robots.txt yields Found=false with a zero score.
// That is deliberate: a site that never published robots.txt has made no
// statement about AI access, so it earns nothing on this pillar.
func CheckRobots(ctx context.Context, client *fetch.Client, origin string, agents []string) (model.RobotsReport, string) {
	if len(agents) == 0 {
		agents = DefaultAgents
	}

	robotsURL := origin + "/robots.txt"
	resp, err := client.Get(ctx, robotsURL)
	if err != nil {
		return model.RobotsReport{
			Found:  false,
			Detail: fmt.Sprintf("Failed to fetch robots.txt: %v", err),
		}, ""
	}
	if resp.StatusCode != http.StatusOK {
		return model.RobotsReport{
			Found:  false,
			Detail: fmt.Sprintf("robots.txt returned HTTP %d", resp.StatusCode),
		}, ""
	}

	rawText := string(resp.Body)
	data, err := robotstxt.FromString(rawText)
	if err != nil {
		return model.RobotsReport{
			Found:  false,
			Detail: fmt.Sprintf("Failed to parse robots.txt: %v", err),
		}, ""
	}

	access := make([]model.AgentAccess, 0, len(agents))
	for _, agent := range agents {
		allowed := data.TestAgent("/", agent)
		detail := "Allowed"
		if !allowed {
			detail = "Blocked by robots.txt"
		}
		access = append(access, model.AgentAccess{
			Agent:   agent,
			Allowed: allowed,
			Detail:  detail,
		})
	}

	report := model.RobotsReport{
		Found:  true,
		Agents: access,
	}
	allowed := report.AllowedCount()
	report.Score = scoring.ScoreRobots(allowed, len(agents))
	report.Detail = fmt.Sprintf("%d/%d AI agents allowed", allowed, len(agents))

	return report, rawText
}
