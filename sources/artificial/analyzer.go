package artificial

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/quality"
	"taskprovision/sources/tracing"
)

var ErrUnparsableEstimate = errors.New("model answer contains no complexity estimate")

var leadingNumber = regexp.MustCompile(`\d+(\.\d+)?`)

// Analyzer answers read-only questions about code and tasks. It shares the
// generator's retry and accounting machinery.
type Analyzer struct {
	generator *Generator
	guard     *quality.Guard
}

func NewAnalyzer(generator *Generator, guard *quality.Guard) *Analyzer {
	return &Analyzer{generator: generator, guard: guard}
}

type CodeAnalysis struct {
	Summary string          `json:"summary"`
	Report  *quality.Report `json:"report"`
}

func (x *Analyzer) AnalyzeCode(log *tracing.Logger, account *entities.Account, language string, code string) (*CodeAnalysis, error) {
	defer tracing.ProfilePoint(log, "Code analysis completed", "artificial.analyzer.code", tracing.Language, language)()

	if err := x.generator.checkLimits(log, account, UsageKindAnalysis); err != nil {
		return nil, err
	}

	completion, err := x.generator.completeWithRetry(log, analysisPrompt(language, code))
	if err != nil {
		return nil, err
	}

	x.generator.recordUsage(log, account, UsageKindAnalysis, completion.Model, completion.PromptTokens+completion.CompletionTokens, completion.Cost)

	return &CodeAnalysis{
		Summary: strings.TrimSpace(completion.Text),
		Report:  x.guard.Check(log, code, language),
	}, nil
}

type ComplexityEstimate struct {
	Complexity float64 `json:"complexity"`
	Reasoning  string  `json:"reasoning"`
}

func (x *Analyzer) AnalyzeTaskComplexity(log *tracing.Logger, account *entities.Account, title string, description string) (*ComplexityEstimate, error) {
	defer tracing.ProfilePoint(log, "Task complexity analysis completed", "artificial.analyzer.complexity")()

	if err := x.generator.checkLimits(log, account, UsageKindAnalysis); err != nil {
		return nil, err
	}

	completion, err := x.generator.completeWithRetry(log, complexityPrompt(title, description))
	if err != nil {
		return nil, err
	}

	x.generator.recordUsage(log, account, UsageKindAnalysis, completion.Model, completion.PromptTokens+completion.CompletionTokens, completion.Cost)

	estimate, reasoning, err := parseComplexity(completion.Text)
	if err != nil {
		log.E("Failed to parse complexity estimate", tracing.InnerError, err)
		return nil, err
	}

	return &ComplexityEstimate{Complexity: estimate, Reasoning: reasoning}, nil
}

// parseComplexity reads the number off the first line and clamps it to 1..10.
func parseComplexity(answer string) (float64, string, error) {
	lines := strings.SplitN(strings.TrimSpace(answer), "\n", 2)

	match := leadingNumber.FindString(lines[0])
	if match == "" {
		return 0, "", ErrUnparsableEstimate
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, "", ErrUnparsableEstimate
	}
	if value < 1 {
		value = 1
	}
	if value > 10 {
		value = 10
	}

	reasoning := ""
	if len(lines) > 1 {
		reasoning = strings.TrimSpace(lines[1])
	}

	return value, reasoning, nil
}
