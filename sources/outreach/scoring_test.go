package outreach

import (
	"taskprovision/sources/persistence/entities"
	"testing"
	"time"
)

func TestCalculateLeadScore(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		lead entities.Lead
		want float64
	}{
		{
			name: "ideal lead maxes out",
			lead: entities.Lead{
				Stars:             150,
				LastActivity:      now.AddDate(0, 0, -2),
				ContributorsCount: 8,
				AIRelated:         true,
				OpenIssues:        12,
			},
			want: 100,
		},
		{
			name: "small quiet project",
			lead: entities.Lead{
				Stars:             12,
				LastActivity:      now.AddDate(0, 0, -120),
				ContributorsCount: 2,
				OpenIssues:        0,
			},
			want: 30,
		},
		{
			name: "mid tier without ai relevance",
			lead: entities.Lead{
				Stars:             60,
				LastActivity:      now.AddDate(0, 0, -20),
				ContributorsCount: 4,
				OpenIssues:        8,
			},
			want: 75,
		},
		{
			name: "zero across the board",
			lead: entities.Lead{
				Stars:        3,
				LastActivity: now.AddDate(-1, 0, 0),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateLeadScore(&tt.lead); got != tt.want {
				t.Errorf("CalculateLeadScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "high"},
		{80, "high"},
		{79, "medium"},
		{60, "medium"},
		{59, "low"},
		{0, "low"},
	}

	for _, tt := range tests {
		if got := PriorityFor(tt.score); got != tt.want {
			t.Errorf("PriorityFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestCheckAIRelevance(t *testing.T) {
	tests := []struct {
		name        string
		repoName    string
		description string
		topics      []string
		want        bool
	}{
		{"keyword in description", "webstore", "a chatbot for support", nil, true},
		{"keyword in name", "llm-toolkit", "", nil, true},
		{"ai topic", "webstore", "online shop", []string{"machine-learning"}, true},
		{"unrelated", "webstore", "online shop", []string{"ecommerce"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckAIRelevance(tt.repoName, tt.description, tt.topics); got != tt.want {
				t.Errorf("CheckAIRelevance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerivePainPoints(t *testing.T) {
	lead := &entities.Lead{
		OpenIssues: 42,
		Languages:  []string{"JavaScript", "HTML"},
		AIRelated:  true,
	}

	points := DerivePainPoints(lead)
	if len(points) != 3 {
		t.Fatalf("DerivePainPoints() returned %d points, want 3: %v", len(points), points)
	}
	if points[0] != "42 open issues suggest technical debt" {
		t.Errorf("unexpected first pain point: %q", points[0])
	}

	clean := &entities.Lead{
		OpenIssues: 3,
		Languages:  []string{"JavaScript", "TypeScript"},
	}
	if points := DerivePainPoints(clean); len(points) != 0 {
		t.Errorf("DerivePainPoints() = %v, want none", points)
	}
}

func TestHasLanguageOverlap(t *testing.T) {
	targets := []string{"Python", "JavaScript", "TypeScript", "Go", "Rust"}

	if !hasLanguageOverlap([]string{"HTML", "Python"}, targets) {
		t.Error("expected overlap for Python")
	}
	if hasLanguageOverlap([]string{"PHP", "Perl"}, targets) {
		t.Error("expected no overlap for PHP/Perl")
	}
	if hasLanguageOverlap(nil, targets) {
		t.Error("expected no overlap for empty language list")
	}
}

func TestParseLastPageLinkHeader(t *testing.T) {
	header := `<https://api.github.com/repositories/1/contributors?per_page=1&page=2>; rel="next", <https://api.github.com/repositories/1/contributors?per_page=1&page=37>; rel="last"`

	count, ok := ParseLastPage(header)
	if !ok || count != 37 {
		t.Errorf("ParseLastPage() = %d, %v; want 37, true", count, ok)
	}

	if _, ok := ParseLastPage(""); ok {
		t.Error("ParseLastPage(\"\") should not match")
	}
}
