package model

// Pillar is the common surface of the four scored dimensions.
// Each pillar keeps its own evidence shape; formatters that only need
// "score + summary" work through this interface.
//
// Design decision: One type per pillar rather than a single report struct
// with optional fields. The pillars carry structurally different evidence
// (per-agent decisions, type/property pairs, word counts) and a god-object
// would force every consumer to know which fields are meaningful.
type Pillar interface {
	// PillarScore returns the bounded score earned by this pillar.
	PillarScore() float64

	// Summary returns a one-line human-readable description.
	Summary() string
}

// AgentAccess records the robots.txt decision for a single AI agent.
type AgentAccess struct {
	// Agent is the user-agent identifier, e.g. "GPTBot".
	Agent string `json:"agent"`

	// Allowed reports whether the agent may fetch the root path.
	Allowed bool `json:"allowed"`

	// Detail explains the decision.
	Detail string `json:"detail"`
}

// RobotsReport is the crawler-access pillar: robots.txt presence and
// per-agent allow/deny decisions for the root path.
type RobotsReport struct {
	// Found reports whether robots.txt was fetched and parsed.
	Found bool `json:"found"`

	// Agents holds one decision per checked AI agent.
	Agents []AgentAccess `json:"agents,omitempty"`

	// Score is the earned score, at most scoring.MaxRobotsScore.
	Score float64 `json:"score"`

	// Detail is a human-readable summary.
	Detail string `json:"detail"`
}

// PillarScore implements Pillar.
func (r RobotsReport) PillarScore() float64 { return r.Score }

// Summary implements Pillar.
func (r RobotsReport) Summary() string { return r.Detail }

// AllowedCount returns the number of agents allowed to fetch the root path.
func (r RobotsReport) AllowedCount() int {
	n := 0
	for _, a := range r.Agents {
		if a.Allowed {
			n++
		}
	}
	return n
}

// ContextFileReport is the context-file pillar: presence of a
// machine-readable descriptor at the well-known llms.txt paths.
type ContextFileReport struct {
	// Found reports whether llms.txt exists at a well-known path.
	Found bool `json:"found"`

	// URL is the location where the file was found.
	URL string `json:"url,omitempty"`

	// FullFound reports whether the llms-full.txt variant exists.
	// Informational only; it earns the same binary score.
	FullFound bool `json:"full_found"`

	// FullURL is the location of the full variant, if any.
	FullURL string `json:"full_url,omitempty"`

	// Score is the earned score, at most scoring.MaxContextFileScore.
	Score float64 `json:"score"`

	// Detail is a human-readable summary.
	Detail string `json:"detail"`
}

// PillarScore implements Pillar.
func (c ContextFileReport) PillarScore() float64 { return c.Score }

// Summary implements Pillar.
func (c ContextFileReport) Summary() string { return c.Detail }

// SchemaBlock is one parsed linked-data object from an embedded
// application/ld+json script.
type SchemaBlock struct {
	// Type is the declared @type. List-valued types are joined with ", ".
	Type string `json:"type"`

	// Properties are the top-level keys that are not @-prefixed metadata.
	Properties []string `json:"properties,omitempty"`
}

// SchemaReport is the structured-data pillar: embedded JSON-LD blocks and
// their declared types.
type SchemaReport struct {
	// BlocksFound is the number of successfully parsed linked-data objects.
	BlocksFound int `json:"blocks_found"`

	// Blocks holds the parsed objects in document order.
	Blocks []SchemaBlock `json:"blocks,omitempty"`

	// Score is the earned score, at most scoring.MaxSchemaScore.
	Score float64 `json:"score"`

	// Detail is a human-readable summary.
	Detail string `json:"detail"`
}

// PillarScore implements Pillar.
func (s SchemaReport) PillarScore() float64 { return s.Score }

// Summary implements Pillar.
func (s SchemaReport) Summary() string { return s.Detail }

// ContentReport is the content-density pillar: word/char counts and
// structure flags computed from the extracted text.
type ContentReport struct {
	// WordCount is the whitespace-separated word count.
	WordCount int `json:"word_count"`

	// CharCount is the total character count of the extracted text.
	CharCount int `json:"char_count"`

	// HasHeadings reports whether any markdown heading is present.
	HasHeadings bool `json:"has_headings"`

	// HasLists reports whether any bullet list marker is present.
	HasLists bool `json:"has_lists"`

	// HasCodeBlocks reports whether any fenced code block is present.
	HasCodeBlocks bool `json:"has_code_blocks"`

	// Score is the earned score, at most scoring.MaxContentScore.
	Score float64 `json:"score"`

	// Detail is a human-readable summary.
	Detail string `json:"detail"`
}

// PillarScore implements Pillar.
func (c ContentReport) PillarScore() float64 { return c.Score }

// Summary implements Pillar.
func (c ContentReport) Summary() string { return c.Detail }
