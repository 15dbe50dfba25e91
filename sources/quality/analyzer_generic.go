package quality

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bareExcept     = regexp.MustCompile(`(?m)^\s*except\s*:`)
	evalCall       = regexp.MustCompile(`\beval\s*\(`)
	noneEquality   = regexp.MustCompile(`[=!]=\s*None\b`)
	looseEquality  = regexp.MustCompile(`[^=!<>]==[^=]`)
	legacyVar      = regexp.MustCompile(`(?m)^\s*var\s+\w`)
	pythonFunction = regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(([^)]*)\)`)
)

// analyzeGeneric covers languages the Go parser cannot read. The checks are
// line and pattern based rather than syntactic.
func (x *Guard) analyzeGeneric(code string, language string) []Issue {
	issues := x.analyzeLines(code, x.config.Quality.MaxGeneralLineLength, x.config.Quality.MaxGeneralFileLength)
	issues = append(issues, checkPatterns(code)...)

	if strings.TrimSpace(code) == "" {
		return append(issues, Issue{
			Severity: SeverityCritical,
			Rule:     "empty-code",
			Message:  "submission contains no code",
		})
	}

	switch strings.ToLower(language) {
	case "python":
		if bareExcept.MatchString(code) {
			issues = append(issues, Issue{
				Severity: SeverityMajor,
				Rule:     "bare-except",
				Message:  "bare except swallows every exception including KeyboardInterrupt",
			})
		}
		if noneEquality.MatchString(code) {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "none-comparison",
				Message:  "comparison with None should use 'is' or 'is not'",
			})
		}
		issues = append(issues, x.checkPythonParameters(code)...)
	case "javascript", "typescript":
		if legacyVar.MatchString(code) {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "legacy-var",
				Message:  "var declarations are function scoped, prefer const or let",
			})
		}
		if strings.ToLower(language) == "javascript" && looseEquality.MatchString(code) {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "loose-equality",
				Message:  "loose equality coerces types, use === instead",
			})
		}
	}

	if evalCall.MatchString(code) {
		issues = append(issues, Issue{
			Severity: SeverityCritical,
			Rule:     "eval-usage",
			Message:  "eval executes arbitrary code and must not appear in generated output",
		})
	}

	return issues
}

func (x *Guard) checkPythonParameters(code string) []Issue {
	var issues []Issue
	for _, match := range pythonFunction.FindAllStringSubmatch(code, -1) {
		params := strings.TrimSpace(match[1])
		if params == "" {
			continue
		}
		count := len(strings.Split(params, ","))
		if count > x.config.Quality.MaxParameters {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "parameter-count",
				Message:  fmt.Sprintf("function takes %d parameters (max %d)", count, x.config.Quality.MaxParameters),
			})
		}
	}
	return issues
}

// analyzeLines applies the language independent line and file size limits.
func (x *Guard) analyzeLines(code string, maxLineLength int, maxFileLength int) []Issue {
	var issues []Issue

	lines := strings.Split(code, "\n")
	if maxFileLength > 0 && len(lines) > maxFileLength {
		issues = append(issues, Issue{
			Severity: SeverityMinor,
			Rule:     "file-length",
			Message:  fmt.Sprintf("submission is %d lines long (max %d)", len(lines), maxFileLength),
		})
	}

	for i, line := range lines {
		if maxLineLength > 0 && len(line) > maxLineLength {
			issues = append(issues, Issue{
				Severity: SeverityMinor,
				Rule:     "line-length",
				Message:  fmt.Sprintf("line exceeds %d characters", maxLineLength),
				Line:     i + 1,
			})
		}
	}

	return issues
}
