package scoring

import "math"

// Pillar maximums. The four pillars sum to 100.
const (
	// MaxRobotsScore is the ceiling of the robots.txt pillar.
	MaxRobotsScore = 25.0

	// MaxContextFileScore is the ceiling of the llms.txt pillar.
	MaxContextFileScore = 10.0

	// MaxSchemaScore is the ceiling of the structured data pillar.
	MaxSchemaScore = 25.0

	// MaxContentScore is the ceiling of the content quality pillar.
	MaxContentScore = 40.0

	// MaxOverallScore is the ceiling of the combined score.
	MaxOverallScore = 100.0
)

// Schema scoring constants.
const (
	// schemaBaseScore is awarded for having any valid JSON-LD at all.
	schemaBaseScore = 8.0

	// schemaHighValueBonus is awarded per unique high-value block type.
	schemaHighValueBonus = 5.0

	// schemaStandardBonus is awarded per unique standard block type.
	schemaStandardBonus = 3.0
)

// highValueSchemaTypes are the JSON-LD types AI answer engines consume most
// directly. They earn a larger per-type bonus than generic markup.
var highValueSchemaTypes = map[string]bool{
	"FAQPage": true,
	"HowTo":   true,
	"Article": true,
	"Product": true,
	"Recipe":  true,
}

// Content word count tiers. Substantial pages earn the full base score;
// thin pages earn progressively less.
const (
	contentTier1Words = 1500
	contentTier1Score = 25.0

	contentTier2Words = 800
	contentTier2Score = 20.0

	contentTier3Words = 400
	contentTier3Score = 15.0

	contentTier4Words = 150
	contentTier4Score = 8.0
)

// Content structure bonuses. Headings matter most because they drive
// chunking in retrieval pipelines.
const (
	headingsBonus = 7.0
	listsBonus    = 5.0
	codeBonus     = 3.0
)

// ScoreRobots scores the robots.txt pillar from agent access results.
// The score is proportional to the fraction of checked AI agents that are
// allowed to fetch the site root, rounded to one decimal. A site with no
// agents checked scores zero.
func ScoreRobots(allowed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(MaxRobotsScore * float64(allowed) / float64(total))
}

// ScoreContextFile scores the llms.txt pillar. Either variant of the
// context file earns the full score; the pillar rewards presence, not
// content quality.
func ScoreContextFile(found, fullFound bool) float64 {
	if found || fullFound {
		return MaxContextFileScore
	}
	return 0
}

// ScoreSchema scores the structured data pillar from the unique JSON-LD
// block types found on a page. Any valid block earns the base score;
// each unique type adds a bonus, larger for the types answer engines
// consume directly. The result is capped at MaxSchemaScore.
func ScoreSchema(types []string) float64 {
	if len(types) == 0 {
		return 0
	}

	score := schemaBaseScore
	seen := make(map[string]bool, len(types))
	for _, typ := range types {
		if typ == "" || seen[typ] {
			continue
		}
		seen[typ] = true

		if highValueSchemaTypes[typ] {
			score += schemaHighValueBonus
		} else {
			score += schemaStandardBonus
		}
	}

	return math.Min(score, MaxSchemaScore)
}

// ScoreContent scores the content quality pillar from extracted markdown
// metrics. Word count sets the base via tiers; structural elements add
// bonuses. The result is capped at MaxContentScore.
func ScoreContent(wordCount int, hasHeadings, hasLists, hasCode bool) float64 {
	var score float64
	switch {
	case wordCount >= contentTier1Words:
		score = contentTier1Score
	case wordCount >= contentTier2Words:
		score = contentTier2Score
	case wordCount >= contentTier3Words:
		score = contentTier3Score
	case wordCount >= contentTier4Words:
		score = contentTier4Score
	}

	if hasHeadings {
		score += headingsBonus
	}
	if hasLists {
		score += listsBonus
	}
	if hasCode {
		score += codeBonus
	}

	return math.Min(score, MaxContentScore)
}

// Overall combines the four pillar scores into the readiness score,
// capped at MaxOverallScore and rounded to one decimal.
func Overall(robots, contextFile, schema, content float64) float64 {
	return round1(math.Min(robots+contextFile+schema+content, MaxOverallScore))
}

// Round1 rounds a score to one decimal place. Exported because report
// aggregation applies the same rounding to weighted averages.
func Round1(v float64) float64 {
	return round1(v)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
