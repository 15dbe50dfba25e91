package outreach

import (
	"fmt"
	"slices"
	"strings"
	"taskprovision/sources/persistence/entities"
	"time"
)

// Leads below this score are not worth contacting.
const MinQualityScore = 50

var aiKeywords = []string{
	"machine learning", "artificial intelligence", "deep learning",
	"neural network", "tensorflow", "pytorch", "scikit-learn",
	"nlp", "computer vision", "data science", "llm", "transformer",
	"automation", "ai", "ml", "chatbot", "recommendation",
}

var aiTopics = map[string]bool{
	"machine-learning":        true,
	"artificial-intelligence": true,
	"deep-learning":           true,
	"neural-networks":         true,
	"ai":                      true,
	"ml":                      true,
	"nlp":                     true,
	"computer-vision":         true,
}

// CheckAIRelevance flags repositories in the AI/ML space, the primary
// audience for automated development tooling.
func CheckAIRelevance(name string, description string, topics []string) bool {
	text := strings.ToLower(description + " " + name)
	for _, keyword := range aiKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}

	for _, topic := range topics {
		if aiTopics[topic] {
			return true
		}
	}

	return false
}

// CalculateLeadScore rates a lead from 0 to 100: stars up to 30 points,
// recent activity up to 25, team size up to 20, AI relevance 15 and open
// issues up to 10.
func CalculateLeadScore(lead *entities.Lead) float64 {
	score := 0.0

	switch {
	case lead.Stars >= 100:
		score += 30
	case lead.Stars >= 50:
		score += 25
	case lead.Stars >= 20:
		score += 20
	case lead.Stars >= 10:
		score += 15
	}

	daysAgo := int(time.Since(lead.LastActivity).Hours() / 24)
	switch {
	case daysAgo <= 7:
		score += 25
	case daysAgo <= 30:
		score += 20
	case daysAgo <= 90:
		score += 15
	}

	switch {
	case lead.ContributorsCount >= 3 && lead.ContributorsCount <= 15:
		score += 20
	case lead.ContributorsCount >= 2 && lead.ContributorsCount <= 25:
		score += 15
	case lead.ContributorsCount >= 2:
		score += 10
	}

	if lead.AIRelated {
		score += 15
	}

	switch {
	case lead.OpenIssues >= 5 && lead.OpenIssues <= 50:
		score += 10
	case lead.OpenIssues >= 1 && lead.OpenIssues <= 100:
		score += 5
	}

	if score > 100 {
		score = 100
	}

	return score
}

// DerivePainPoints names the automation angles worth mentioning when
// reaching out to a lead.
func DerivePainPoints(lead *entities.Lead) []string {
	var points []string

	if lead.OpenIssues > 20 {
		points = append(points, fmt.Sprintf("%d open issues suggest technical debt", lead.OpenIssues))
	}

	languages := []string(lead.Languages)
	if slices.Contains(languages, "JavaScript") && !slices.Contains(languages, "TypeScript") {
		points = append(points, "JavaScript project could benefit from TypeScript migration")
	}

	if lead.AIRelated {
		points = append(points, "AI/ML project could benefit from automated code quality")
	}

	return points
}

func PriorityFor(score float64) string {
	switch {
	case score >= 80:
		return "high"
	case score >= 60:
		return "medium"
	default:
		return "low"
	}
}
