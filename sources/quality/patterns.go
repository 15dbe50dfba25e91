package quality

import (
	"fmt"
	"regexp"
	"strings"
)

// Hardcoded credentials are always critical, debug leftovers are major.
var (
	securityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)password\s*[:=]\s*["'][^"']*["']`),
		regexp.MustCompile(`(?i)api_key\s*[:=]\s*["'][^"']*["']`),
		regexp.MustCompile(`(?i)secret\s*[:=]\s*["'][^"']*["']`),
		regexp.MustCompile(`(?i)token\s*[:=]\s*["'][^"']*["']`),
	}

	forbiddenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)(#|//)\s*TODO\b`),
		regexp.MustCompile(`(?m)(#|//)\s*FIXME\b`),
		regexp.MustCompile(`console\.log\s*\(`),
		regexp.MustCompile(`debugger;`),
		regexp.MustCompile(`\bprint\s*\(`),
		regexp.MustCompile(`\bexec\s*\(`),
		regexp.MustCompile(`os\.system\s*\(`),
	}
)

// checkPatterns applies the language independent security and forbidden
// pattern families.
func checkPatterns(code string) []Issue {
	var issues []Issue

	for _, pattern := range securityPatterns {
		for _, match := range pattern.FindAllStringIndex(code, -1) {
			issues = append(issues, Issue{
				Severity: SeverityCritical,
				Rule:     "hardcoded-secret",
				Message:  "potential security issue: hardcoded sensitive data",
				Line:     lineOf(code, match[0]),
			})
		}
	}

	for _, pattern := range forbiddenPatterns {
		for _, match := range pattern.FindAllStringIndex(code, -1) {
			issues = append(issues, Issue{
				Severity: SeverityMajor,
				Rule:     "forbidden-pattern",
				Message:  fmt.Sprintf("forbidden pattern found: %s", strings.TrimSpace(code[match[0]:match[1]])),
				Line:     lineOf(code, match[0]),
			})
		}
	}

	return issues
}

func lineOf(code string, offset int) int {
	return strings.Count(code[:offset], "\n") + 1
}
