package scoring

import "testing"

func TestScoreRobots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed int
		total   int
		want    float64
	}{
		{name: "all agents allowed", allowed: 13, total: 13, want: 25},
		{name: "no agents allowed", allowed: 0, total: 13, want: 0},
		{name: "10 of 13 allowed", allowed: 10, total: 13, want: 19.2},
		{name: "half allowed", allowed: 1, total: 2, want: 12.5},
		{name: "zero total scores zero", allowed: 0, total: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ScoreRobots(tt.allowed, tt.total); got != tt.want {
				t.Errorf("ScoreRobots(%d, %d) = %v, want %v", tt.allowed, tt.total, got, tt.want)
			}
		})
	}
}

func TestScoreContextFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		found     bool
		fullFound bool
		want      float64
	}{
		{name: "neither variant", found: false, fullFound: false, want: 0},
		{name: "short variant only", found: true, fullFound: false, want: 10},
		{name: "full variant only", found: false, fullFound: true, want: 10},
		{name: "both variants", found: true, fullFound: true, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ScoreContextFile(tt.found, tt.fullFound); got != tt.want {
				t.Errorf("ScoreContextFile(%v, %v) = %v, want %v", tt.found, tt.fullFound, got, tt.want)
			}
		})
	}
}

func TestScoreSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		types []string
		want  float64
	}{
		{name: "no blocks", types: nil, want: 0},
		{name: "single standard type", types: []string{"WebSite"}, want: 11},
		{name: "single high value type", types: []string{"FAQPage"}, want: 13},
		{name: "duplicate types count once", types: []string{"Article", "Article"}, want: 13},
		{name: "mixed types", types: []string{"FAQPage", "WebSite"}, want: 16},
		{
			name:  "many types cap at maximum",
			types: []string{"FAQPage", "HowTo", "Article", "Product", "Recipe"},
			want:  25,
		},
		{name: "empty type string ignored", types: []string{""}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ScoreSchema(tt.types); got != tt.want {
				t.Errorf("ScoreSchema(%v) = %v, want %v", tt.types, got, tt.want)
			}
		})
	}
}

func TestScoreContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		wordCount   int
		hasHeadings bool
		hasLists    bool
		hasCode     bool
		want        float64
	}{
		{name: "empty page", wordCount: 0, want: 0},
		{name: "below lowest tier", wordCount: 149, want: 0},
		{name: "lowest tier boundary", wordCount: 150, want: 8},
		{name: "second tier boundary", wordCount: 400, want: 15},
		{name: "third tier boundary", wordCount: 800, want: 20},
		{name: "top tier boundary", wordCount: 1500, want: 25},
		{
			name:        "headings bonus",
			wordCount:   400,
			hasHeadings: true,
			want:        22,
		},
		{
			name:        "all bonuses at top tier cap at maximum",
			wordCount:   2000,
			hasHeadings: true,
			hasLists:    true,
			hasCode:     true,
			want:        40,
		},
		{
			name:     "bonuses without words",
			hasLists: true,
			hasCode:  true,
			want:     8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ScoreContent(tt.wordCount, tt.hasHeadings, tt.hasLists, tt.hasCode)
			if got != tt.want {
				t.Errorf("ScoreContent(%d, %v, %v, %v) = %v, want %v",
					tt.wordCount, tt.hasHeadings, tt.hasLists, tt.hasCode, got, tt.want)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	t.Parallel()

	t.Run("sums pillar scores", func(t *testing.T) {
		t.Parallel()

		if got := Overall(19.2, 10, 16, 22); got != 67.2 {
			t.Errorf("Overall() = %v, want 67.2", got)
		}
	})

	t.Run("perfect site", func(t *testing.T) {
		t.Parallel()

		if got := Overall(25, 10, 25, 40); got != 100 {
			t.Errorf("Overall() = %v, want 100", got)
		}
	})

	t.Run("caps at maximum", func(t *testing.T) {
		t.Parallel()

		if got := Overall(26, 11, 26, 41); got != 100 {
			t.Errorf("Overall() = %v, want 100", got)
		}
	})
}
