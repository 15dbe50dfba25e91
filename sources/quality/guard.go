package quality

import (
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
)

// Guard scores code before it is delivered to a caller. The score starts at
// 100, every issue deducts by severity and good habits earn bonuses back.
type Guard struct {
	config *configuration.Config
	log    *tracing.Logger
}

func NewGuard(config *configuration.Config, log *tracing.Logger) *Guard {
	return &Guard{config: config, log: log}
}

func (x *Guard) Check(logger *tracing.Logger, code string, language string) *Report {
	defer tracing.ProfilePoint(logger, "Quality check completed", "quality.guard.check", tracing.Language, language)()

	var issues []Issue
	if strings.EqualFold(language, "go") {
		issues = x.analyzeGo(code)
	} else {
		issues = x.analyzeGeneric(code, language)
	}

	score := x.score(code, language, issues)
	report := &Report{
		Score:       score,
		Level:       levelFor(score),
		Issues:      issues,
		Suggestions: suggestionsFor(issues),
	}

	logger.I("Code quality evaluated", tracing.QualityScore, report.Score, tracing.QualityLevel, report.Level)
	return report
}

func (x *Guard) score(code string, language string, issues []Issue) float64 {
	// Unparsable code is worthless regardless of bonuses.
	for _, issue := range issues {
		if issue.Rule == "syntax-error" {
			return 0
		}
	}

	score := 100.0

	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			score -= 20
		case SeverityMajor:
			score -= 10
		case SeverityMinor:
			score -= 3
		}
	}

	if hasDocumentation(code, language) {
		score += 5
	}
	if hasTypeAnnotations(code, language) {
		score += 5
	}
	if hasTests(code, language) {
		score += 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}

func levelFor(score float64) string {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGood
	case score >= 50:
		return LevelFair
	default:
		return LevelPoor
	}
}

func suggestionsFor(issues []Issue) []string {
	seen := make(map[string]bool)
	var suggestions []string
	for _, issue := range issues {
		suggestion, ok := ruleSuggestions[issue.Rule]
		if !ok || seen[suggestion] {
			continue
		}
		seen[suggestion] = true
		suggestions = append(suggestions, suggestion)
	}
	return suggestions
}

var ruleSuggestions = map[string]string{
	"syntax-error":      "Fix syntax errors before anything else",
	"function-length":   "Split long functions into smaller, focused ones",
	"parameter-count":   "Group related parameters into a struct or object",
	"complexity":        "Reduce branching by extracting helper functions",
	"missing-doc":       "Document exported identifiers",
	"line-length":       "Wrap long lines for readability",
	"file-length":       "Split large files into cohesive modules",
	"bare-except":       "Catch specific exception types instead of bare except",
	"eval-usage":        "Avoid eval, it executes arbitrary code",
	"loose-equality":    "Use strict equality comparisons",
	"legacy-var":        "Prefer const or let over var",
	"none-comparison":   "Compare with None using 'is' rather than '=='",
	"empty-code":        "The submission contains no code",
	"hardcoded-secret":  "Use environment variables or secure configuration",
	"forbidden-pattern": "Remove or replace forbidden patterns with safer alternatives",
}

func hasDocumentation(code string, language string) bool {
	switch strings.ToLower(language) {
	case "python":
		return strings.Contains(code, `"""`) || strings.Contains(code, "'''")
	case "go":
		return strings.Contains(code, "// ")
	default:
		return strings.Contains(code, "/**") || strings.Contains(code, "// ")
	}
}

func hasTypeAnnotations(code string, language string) bool {
	switch strings.ToLower(language) {
	case "python":
		return strings.Contains(code, "->") || strings.Contains(code, ": int") ||
			strings.Contains(code, ": str") || strings.Contains(code, ": float") ||
			strings.Contains(code, ": bool") || strings.Contains(code, ": list") ||
			strings.Contains(code, ": dict")
	case "javascript":
		return false
	default:
		// Statically typed languages carry annotations by construction.
		return true
	}
}

func hasTests(code string, language string) bool {
	markers := []string{"def test_", "func Test", "it(", "describe(", "#[test]", "@Test"}
	for _, marker := range markers {
		if strings.Contains(code, marker) {
			return true
		}
	}
	return false
}
