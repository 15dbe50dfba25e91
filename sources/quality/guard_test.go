package quality

import (
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"
	"testing"
)

func newTestGuard() (*Guard, *tracing.Logger) {
	config := &configuration.Config{}
	config.Quality.MaxFunctionLength = 50
	config.Quality.MaxFileLength = 1000
	config.Quality.MaxGeneralFileLength = 2000
	config.Quality.MaxComplexity = 10
	config.Quality.MaxParameters = 5
	config.Quality.MaxLineLength = 120
	config.Quality.MaxGeneralLineLength = 120
	config.Quality.RequireDocComments = true

	log := tracing.NewConsoleLogger()
	return NewGuard(config, log), log
}

func TestCheckCleanGoCode(t *testing.T) {
	guard, log := newTestGuard()

	code := "package snippet\n\n// Add returns the sum of a and b.\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"
	report := guard.Check(log, code, "go")

	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %v", report.Issues)
	}
	if report.Score != 100 {
		t.Errorf("Score = %v, want 100", report.Score)
	}
	if report.Level != LevelExcellent {
		t.Errorf("Level = %q, want %q", report.Level, LevelExcellent)
	}
}

func TestCheckGoSyntaxError(t *testing.T) {
	guard, log := newTestGuard()

	report := guard.Check(log, "func broken( {", "go")

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "syntax-error" && issue.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a critical syntax-error issue, got %v", report.Issues)
	}
	if !report.HasBlockingIssues() {
		t.Error("HasBlockingIssues() = false, want true")
	}

	// Bonuses never rescue code that does not parse.
	if report.Score != 0 {
		t.Errorf("Score = %v, want 0", report.Score)
	}
	if report.Level != LevelPoor {
		t.Errorf("Level = %q, want %q", report.Level, LevelPoor)
	}
}

func TestCheckHardcodedSecrets(t *testing.T) {
	guard, log := newTestGuard()

	code := "password = \"hunter2\"\napi_key = \"sk-123\"\n# TODO: remove\nprint(password)\n"
	report := guard.Check(log, code, "python")

	criticals := 0
	majors := 0
	for _, issue := range report.Issues {
		switch {
		case issue.Rule == "hardcoded-secret" && issue.Severity == SeverityCritical:
			criticals++
		case issue.Rule == "forbidden-pattern" && issue.Severity == SeverityMajor:
			majors++
		}
	}

	if criticals != 2 {
		t.Errorf("hardcoded-secret criticals = %d, want 2: %v", criticals, report.Issues)
	}
	if majors != 2 {
		t.Errorf("forbidden-pattern majors = %d, want 2: %v", majors, report.Issues)
	}

	// Two criticals and two majors, no bonuses.
	if report.Score != 40 {
		t.Errorf("Score = %v, want 40", report.Score)
	}
	if !report.HasBlockingIssues() {
		t.Error("HasBlockingIssues() = false, want true")
	}
}

func TestCheckDebugLeftovers(t *testing.T) {
	guard, log := newTestGuard()

	code := "function run() {\n  console.log(\"here\");\n  debugger;\n}\n// FIXME: remove before release\n"
	report := guard.Check(log, code, "javascript")

	rules := make(map[string]int)
	for _, issue := range report.Issues {
		rules[issue.Rule]++
	}

	if rules["forbidden-pattern"] != 3 {
		t.Errorf("forbidden-pattern count = %d, want 3: %v", rules["forbidden-pattern"], report.Issues)
	}
}

func TestCheckGoTooManyParameters(t *testing.T) {
	guard, log := newTestGuard()

	code := "// Mix combines its inputs.\nfunc Mix(a, b, c, d, e, f int) int {\n\treturn a + b + c + d + e + f\n}\n"
	report := guard.Check(log, code, "go")

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "parameter-count" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a parameter-count issue, got %v", report.Issues)
	}
}

func TestCheckGoMissingDocComment(t *testing.T) {
	guard, log := newTestGuard()

	code := "package snippet\n\nfunc Exported() int {\n\treturn 1\n}\n"
	report := guard.Check(log, code, "go")

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "missing-doc" && issue.Severity == SeverityMinor {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing-doc issue, got %v", report.Issues)
	}
}

func TestCheckPythonBareExcept(t *testing.T) {
	guard, log := newTestGuard()

	code := "try:\n    risky()\nexcept:\n    pass\nif value == None:\n    pass\n"
	report := guard.Check(log, code, "python")

	rules := make(map[string]bool)
	for _, issue := range report.Issues {
		rules[issue.Rule] = true
	}
	if !rules["bare-except"] {
		t.Errorf("expected bare-except issue, got %v", report.Issues)
	}
	if !rules["none-comparison"] {
		t.Errorf("expected none-comparison issue, got %v", report.Issues)
	}

	// One major and one minor deduction, no bonuses.
	if report.Score != 87 {
		t.Errorf("Score = %v, want 87", report.Score)
	}
	if report.Level != LevelGood {
		t.Errorf("Level = %q, want %q", report.Level, LevelGood)
	}
}

func TestCheckEvalIsCritical(t *testing.T) {
	guard, log := newTestGuard()

	report := guard.Check(log, "result = eval(user_input)\n", "python")

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "eval-usage" && issue.Severity == SeverityCritical {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a critical eval-usage issue, got %v", report.Issues)
	}
}

func TestCheckEmptyCode(t *testing.T) {
	guard, log := newTestGuard()

	report := guard.Check(log, "   \n\t\n", "python")

	if len(report.Issues) != 1 || report.Issues[0].Rule != "empty-code" {
		t.Fatalf("expected a single empty-code issue, got %v", report.Issues)
	}
}

func TestScoreBonuses(t *testing.T) {
	guard, log := newTestGuard()

	code := "def add(a: int, b: int) -> int:\n" +
		"    \"\"\"Add two numbers.\"\"\"\n" +
		"    return a + b\n\n" +
		"def test_add():\n" +
		"    assert add(1, 2) == 3\n"
	report := guard.Check(log, code, "python")

	if report.Score != 100 {
		t.Errorf("Score = %v, want 100 after bonuses and clamping", report.Score)
	}
}

func TestScoreFloorsAtZero(t *testing.T) {
	guard, _ := newTestGuard()

	issues := make([]Issue, 0, 10)
	for i := 0; i < 10; i++ {
		issues = append(issues, Issue{Severity: SeverityCritical, Rule: "syntax-error"})
	}

	if score := guard.score("x", "javascript", issues); score != 0 {
		t.Errorf("score = %v, want 0", score)
	}
}

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89.9, LevelGood},
		{75, LevelGood},
		{74, LevelFair},
		{50, LevelFair},
		{49, LevelPoor},
		{0, LevelPoor},
	}

	for _, tt := range tests {
		if got := levelFor(tt.score); got != tt.want {
			t.Errorf("levelFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSuggestionsDeduplicated(t *testing.T) {
	issues := []Issue{
		{Rule: "line-length"},
		{Rule: "line-length"},
		{Rule: "complexity"},
	}

	suggestions := suggestionsFor(issues)
	if len(suggestions) != 2 {
		t.Fatalf("len(suggestions) = %d, want 2: %v", len(suggestions), suggestions)
	}
}

func TestCheckLongLines(t *testing.T) {
	guard, log := newTestGuard()

	code := "package snippet\n\n// Pad is padding.\nvar Pad = \"" + strings.Repeat("a", 200) + "\"\n"
	report := guard.Check(log, code, "go")

	found := false
	for _, issue := range report.Issues {
		if issue.Rule == "line-length" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a line-length issue, got %v", report.Issues)
	}
}
