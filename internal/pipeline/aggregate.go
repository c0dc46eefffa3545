package pipeline

import (
	"fmt"

	"github.com/hanselhansel/agentlens/internal/model"
	"github.com/hanselhansel/agentlens/internal/scoring"
)

// Aggregate folds per-page scores into site-level schema and content
// pillars and computes the overall score.
//
// Schema and content use weighted averages: shallower pages weigh more
// because they represent the site better (see model.PageScore.Weight).
// Word and character counts stay simple averages. Robots and context file
// are site-wide and enter the overall sum as-is.
//
// When no page audited successfully, the aggregate pillars are zero and
// the overall score is just the two site-wide pillars.
func Aggregate(pages []model.PageScore, robots model.RobotsReport, contextFile model.ContextFileReport) (model.SchemaReport, model.ContentReport, float64) {
	successful := make([]model.PageScore, 0, len(pages))
	for _, p := range pages {
		if p.Successful() {
			successful = append(successful, p)
		}
	}

	if len(successful) == 0 {
		schema := model.SchemaReport{Detail: "No pages audited successfully"}
		content := model.ContentReport{Detail: "No pages audited successfully"}
		return schema, content, scoring.Round1(robots.Score + contextFile.Score)
	}

	totalWeight := 0
	for _, p := range successful {
		totalWeight += p.Weight()
	}

	// Schema: collect all blocks, weighted-average the score
	var allBlocks []model.SchemaBlock
	totalBlocks := 0
	schemaScoreSum := 0.0
	for _, p := range successful {
		allBlocks = append(allBlocks, p.Schema.Blocks...)
		totalBlocks += p.Schema.BlocksFound
		schemaScoreSum += p.Schema.Score * float64(p.Weight())
	}
	avgSchemaScore := scoring.Round1(schemaScoreSum / float64(totalWeight))
	schema := model.SchemaReport{
		BlocksFound: totalBlocks,
		Blocks:      allBlocks,
		Score:       avgSchemaScore,
		Detail: fmt.Sprintf("%d JSON-LD block(s) across %d pages (weighted avg score %v)",
			totalBlocks, len(successful), avgSchemaScore),
	}

	// Content: weighted-average score, simple-average metrics
	contentScoreSum := 0.0
	wordSum, charSum := 0, 0
	var anyHeadings, anyLists, anyCode bool
	for _, p := range successful {
		contentScoreSum += p.Content.Score * float64(p.Weight())
		wordSum += p.Content.WordCount
		charSum += p.Content.CharCount
		anyHeadings = anyHeadings || p.Content.HasHeadings
		anyLists = anyLists || p.Content.HasLists
		anyCode = anyCode || p.Content.HasCodeBlocks
	}

	n := len(successful)
	avgContentScore := scoring.Round1(contentScoreSum / float64(totalWeight))
	avgWords := wordSum / n
	content := model.ContentReport{
		WordCount:     avgWords,
		CharCount:     charSum / n,
		HasHeadings:   anyHeadings,
		HasLists:      anyLists,
		HasCodeBlocks: anyCode,
		Score:         avgContentScore,
		Detail: fmt.Sprintf("avg %d words across %d pages (weighted avg score %v)",
			avgWords, n, avgContentScore),
	}

	overall := scoring.Overall(robots.Score, contextFile.Score, avgSchemaScore, avgContentScore)
	return schema, content, overall
}
