package artificial

import (
	"strings"
	"testing"
)

func TestGenerationPromptOptionalSections(t *testing.T) {
	minimal := generationPrompt(CodeRequest{Language: "python", Description: "parse a csv file"})
	if !strings.Contains(minimal, "parse a csv file") {
		t.Error("prompt does not carry the task description")
	}
	if strings.Contains(minimal, "Context:") || strings.Contains(minimal, "Existing code") {
		t.Errorf("optional sections leaked into a minimal prompt:\n%s", minimal)
	}

	full := generationPrompt(CodeRequest{
		Language:     "python",
		Description:  "parse a csv file",
		Context:      "Runs inside a billing pipeline.",
		Requirements: []string{"stream rows", "skip blank lines"},
		ExistingCode: "def parse(path):\n    pass",
	})

	for _, want := range []string{
		"Context:\nRuns inside a billing pipeline.",
		"Requirements:\n- stream rows\n- skip blank lines",
		"Existing code to modify or extend:\n```python\ndef parse(path):\n    pass\n```",
	} {
		if !strings.Contains(full, want) {
			t.Errorf("prompt is missing section %q:\n%s", want, full)
		}
	}
}

func TestGenerationPromptLanguageGuidance(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"python", "type hints"},
		{"javascript", "strict equality"},
		{"typescript", "any type"},
		{"go", "errors explicitly"},
		{"rust", "unwrap"},
		{"bash", "pipefail"},
		{"sql", "Parameterize"},
		{"cobol", "simple and readable"},
	}

	for _, tt := range tests {
		prompt := generationPrompt(CodeRequest{Language: tt.language, Description: "x"})
		if !strings.Contains(prompt, tt.want) {
			t.Errorf("guidance for %q is missing %q", tt.language, tt.want)
		}
	}
}
