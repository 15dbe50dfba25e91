package artificial

import (
	"fmt"
	"strings"
)

const (
	generationPromptTemplate = `You are an expert %s developer. Write clean, production quality %s code for the task below.

Task:
%s

Rules:
- Respond with a single fenced code block and nothing else.
- Follow the idioms of the language.
- Handle errors and edge cases.
%s`

	improvementPromptTemplate = `You are an expert %s developer. The following code was reviewed and issues were found.

Code:
%s

Issues:
%s

Rewrite the code fixing every issue. Respond with a single fenced code block and nothing else.`

	testsPromptTemplate = `You are an expert %s developer. Write unit tests for the following code.

%s

Rules:
- Use the standard testing tools of the language.
- Cover the main path and at least one edge case.
- Respond with a single fenced code block and nothing else.`

	documentationPromptTemplate = `You are a technical writer. Write concise reference documentation in Markdown for the following %s code. Describe what it does, its inputs and outputs, and give one usage example.

%s`

	refactorPromptTemplate = `You are an expert %s developer. Refactor the following code according to the instructions, preserving its behavior.

Code:
%s

Instructions:
%s

Respond with a single fenced code block and nothing else.`

	analysisPromptTemplate = `You are a senior %s code reviewer. Analyze the following code and report, in Markdown:
- what the code does
- potential bugs or edge cases
- concrete improvement suggestions

%s`

	complexityPromptTemplate = `You are an experienced engineering lead. Estimate the implementation complexity of the task below on a scale from 1 (trivial) to 10 (very hard). Answer with the number on the first line, then a one paragraph justification.

Title: %s

Description:
%s`
)

// Per-language guidance appended to the generation prompt. Unknown languages
// fall back to generic rules.
var languageGuidance = map[string]string{
	"python":     "- Use type hints and docstrings.\n- Follow PEP 8.",
	"javascript": "- Use const and let, never var.\n- Use strict equality.",
	"typescript": "- Type every public function.\n- Avoid the any type.",
	"go":         "- Return errors explicitly.\n- Document exported identifiers.",
	"rust":       "- Avoid unwrap in library code.\n- Use Result for fallible operations.",
	"bash":       "- Start with set -euo pipefail.\n- Quote every variable expansion.",
	"sql":        "- Use explicit column lists, never select star.\n- Parameterize all values.",
}

func generationPrompt(req CodeRequest) string {
	guidance, ok := languageGuidance[strings.ToLower(req.Language)]
	if !ok {
		guidance = "- Keep the solution simple and readable."
	}

	prompt := fmt.Sprintf(generationPromptTemplate, req.Language, req.Language, req.Description, guidance)

	if req.Context != "" {
		prompt += "\n\nContext:\n" + req.Context
	}
	if len(req.Requirements) > 0 {
		prompt += "\n\nRequirements:\n- " + strings.Join(req.Requirements, "\n- ")
	}
	if req.ExistingCode != "" {
		prompt += fmt.Sprintf("\n\nExisting code to modify or extend:\n```%s\n%s\n```", strings.ToLower(req.Language), req.ExistingCode)
	}

	return prompt
}

func improvementPrompt(language string, code string, issues []string) string {
	return fmt.Sprintf(improvementPromptTemplate, language, code, "- "+strings.Join(issues, "\n- "))
}

func testsPrompt(language string, code string) string {
	return fmt.Sprintf(testsPromptTemplate, language, code)
}

func documentationPrompt(language string, code string) string {
	return fmt.Sprintf(documentationPromptTemplate, language, code)
}

func refactorPrompt(language string, code string, instructions string) string {
	return fmt.Sprintf(refactorPromptTemplate, language, code, instructions)
}

func analysisPrompt(language string, code string) string {
	return fmt.Sprintf(analysisPromptTemplate, language, code)
}

func complexityPrompt(title string, description string) string {
	return fmt.Sprintf(complexityPromptTemplate, title, description)
}
