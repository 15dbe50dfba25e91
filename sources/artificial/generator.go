package artificial

import (
	"context"
	"errors"
	"taskprovision/sources/balancer"
	"taskprovision/sources/configuration"
	"taskprovision/sources/features"
	"taskprovision/sources/metrics"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/quality"
	"taskprovision/sources/repository"
	"taskprovision/sources/texting"
	"taskprovision/sources/texting/tokenizer"
	"taskprovision/sources/texting/transform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrUsageLimitExceeded = errors.New("usage limit exceeded")
	ErrEmptyGeneration    = errors.New("model produced no code")
)

const systemPersona = "You are TaskProvision, an automated senior software engineer. You deliver working, idiomatic code."

// Good enough to ship, no further improvement iterations needed.
const targetScore = 90

type Generator struct {
	config      *configuration.Config
	balancer    *balancer.AIBalancer
	guard       *quality.Guard
	features    *features.FeatureManager
	metrics     *metrics.MetricsService
	generations *repository.GenerationsRepository
	usage       *repository.UsageRepository
	limiter     *UsageLimiter
	spending    *SpendingLimiter
}

func NewGenerator(
	config *configuration.Config,
	balancer *balancer.AIBalancer,
	guard *quality.Guard,
	features *features.FeatureManager,
	metrics *metrics.MetricsService,
	generations *repository.GenerationsRepository,
	usage *repository.UsageRepository,
	limiter *UsageLimiter,
	spending *SpendingLimiter,
) *Generator {
	return &Generator{
		config:      config,
		balancer:    balancer,
		guard:       guard,
		features:    features,
		metrics:     metrics,
		generations: generations,
		usage:       usage,
		limiter:     limiter,
		spending:    spending,
	}
}

type GenerationResult struct {
	Generation *entities.Generation
	Report     *quality.Report
}

// CodeRequest describes a generation job. Context, Requirements and
// ExistingCode are optional and only extend the prompt when set.
type CodeRequest struct {
	Language     string
	Description  string
	Context      string
	Requirements []string
	ExistingCode string
}

func (x *Generator) GenerateCode(log *tracing.Logger, account *entities.Account, req CodeRequest) (*GenerationResult, error) {
	defer tracing.ProfilePoint(log, "Code generation completed", "artificial.generator.generate", tracing.Language, req.Language)()
	start := time.Now()
	language := req.Language

	if err := x.checkLimits(log, account, UsageKindGeneration); err != nil {
		return nil, err
	}

	req.Description = x.budgetPrompt(log, req.Description)

	code, report, iterations, model, tokens, cost, err := x.generateWithImprovement(log, req)
	if err != nil {
		x.metrics.RecordGeneration(language, "failed")
		return nil, err
	}

	generation := &entities.Generation{
		AccountID:     account.ID,
		Language:      language,
		Description:   req.Description,
		GeneratedCode: code,
		QualityScore:  decimal.NewFromFloat(report.Score),
		Iterations:    iterations,
	}

	if x.features.IsEnabledDefault(features.FeatureTestGeneration, true) {
		if tests, completion, err := x.completeAndExtract(log, testsPrompt(language, code)); err != nil {
			log.W("Test generation failed, delivering without tests", tracing.InnerError, err)
		} else {
			generation.Tests = platform.StringPtr(tests)
			tokens += completion.PromptTokens + completion.CompletionTokens
			cost = cost.Add(completion.Cost)
		}
	}

	if x.features.IsEnabledDefault(features.FeatureDocGeneration, true) {
		if completion, err := x.completeWithRetry(log, documentationPrompt(language, code)); err != nil {
			log.W("Documentation generation failed, delivering without docs", tracing.InnerError, err)
		} else {
			generation.Documentation = platform.StringPtr(completion.Text)
			tokens += completion.PromptTokens + completion.CompletionTokens
			cost = cost.Add(completion.Cost)
		}
	}

	generation.DurationMs = time.Since(start).Milliseconds()

	if _, err := x.generations.SaveGeneration(log, generation); err != nil {
		log.E("Failed to persist generation", tracing.InnerError, err)
	}
	x.recordUsage(log, account, UsageKindGeneration, model, tokens, cost)

	x.metrics.RecordGeneration(language, "completed")
	x.metrics.RecordGenerationDuration(language, time.Since(start))
	x.metrics.RecordQualityScore(report.Score)

	return &GenerationResult{Generation: generation, Report: report}, nil
}

func (x *Generator) RefactorCode(log *tracing.Logger, account *entities.Account, language string, code string, instructions string) (string, *quality.Report, error) {
	defer tracing.ProfilePoint(log, "Code refactoring completed", "artificial.generator.refactor", tracing.Language, language)()

	if err := x.checkLimits(log, account, UsageKindGeneration); err != nil {
		return "", nil, err
	}

	refactored, completion, err := x.completeAndExtract(log, refactorPrompt(language, code, instructions))
	if err != nil {
		return "", nil, err
	}

	x.recordUsage(log, account, UsageKindGeneration, completion.Model, completion.PromptTokens+completion.CompletionTokens, completion.Cost)

	report := x.guard.Check(log, refactored, language)
	return refactored, report, nil
}

// generateWithImprovement runs the generate-review-improve loop and keeps the
// best scoring candidate seen.
func (x *Generator) generateWithImprovement(log *tracing.Logger, req CodeRequest) (string, *quality.Report, int, string, int, decimal.Decimal, error) {
	language := req.Language

	code, completion, err := x.completeAndExtract(log, generationPrompt(req))
	if err != nil {
		return "", nil, 0, "", 0, decimal.Zero, err
	}

	model := completion.Model
	tokens := completion.PromptTokens + completion.CompletionTokens
	cost := completion.Cost

	report := x.guard.Check(log, code, language)
	bestCode, bestReport := code, report
	iterations := 1

	if !x.features.IsEnabledDefault(features.FeatureQualityEnforce, true) {
		return bestCode, bestReport, iterations, model, tokens, cost, nil
	}

	for iterations < x.config.AI.ImprovementIterations {
		if report.Score >= targetScore || len(report.Issues) == 0 {
			break
		}

		issues := make([]string, 0, len(report.Issues))
		for _, issue := range report.Issues {
			issues = append(issues, issue.Message)
		}

		improved, completion, err := x.completeAndExtract(log, improvementPrompt(language, code, issues))
		if err != nil {
			log.W("Improvement iteration failed, keeping best candidate", tracing.InnerError, err)
			break
		}
		iterations++
		tokens += completion.PromptTokens + completion.CompletionTokens
		cost = cost.Add(completion.Cost)

		code = improved
		report = x.guard.Check(log, code, language)
		if report.Score > bestReport.Score {
			bestCode, bestReport = code, report
		}
	}

	return bestCode, bestReport, iterations, model, tokens, cost, nil
}

// completeAndExtract requests a completion and pulls the code block out of it.
func (x *Generator) completeAndExtract(log *tracing.Logger, prompt string) (string, *balancer.Completion, error) {
	completion, err := x.completeWithRetry(log, prompt)
	if err != nil {
		return "", nil, err
	}

	code := texting.ExtractCode(completion.Text)
	if code == "" {
		return "", nil, ErrEmptyGeneration
	}
	if len(code) > x.config.AI.MaxCodeLength {
		code = transform.SmartTruncate(code, x.config.AI.MaxCodeLength)
	}

	return code, completion, nil
}

// completeWithRetry retries transient provider failures with linear backoff.
// When every attempt fails it falls through to the configured cloud providers,
// unless the cloud-fallback toggle is off.
func (x *Generator) completeWithRetry(log *tracing.Logger, prompt string) (*balancer.Completion, error) {
	var lastErr error
	var lastProvider string

	for attempt := 1; attempt <= x.config.AI.RetryAttempts; attempt++ {
		ctx, cancel := platform.ContextTimeoutVal(context.Background(), x.config.AI.GenerationTimeout)
		provider := x.balancer.GetNeuroProvider()
		completion, err := provider.Complete(ctx, log, systemPersona, prompt)
		cancel()

		if err == nil {
			return completion, nil
		}

		lastErr = err
		lastProvider = provider.Name()
		backoff := time.Duration(attempt) * time.Second
		log.W("Completion attempt failed",
			tracing.AiProvider, provider.Name(),
			tracing.AiAttempt, attempt,
			tracing.AiBackoff, backoff.String(),
			tracing.InnerError, err,
		)

		if attempt < x.config.AI.RetryAttempts {
			time.Sleep(backoff)
		}
	}

	if !x.features.IsEnabledDefault(features.FeatureCloudFallback, true) {
		return nil, lastErr
	}

	for _, name := range cloudFallbackNames(x.config, lastProvider) {
		provider := x.balancer.GetNeuroProviderByName(name)
		if provider == nil {
			continue
		}

		log.W("Falling back to cloud provider", tracing.AiProvider, name)

		ctx, cancel := platform.ContextTimeoutVal(context.Background(), x.config.AI.GenerationTimeout)
		completion, err := provider.Complete(ctx, log, systemPersona, prompt)
		cancel()

		if err == nil {
			return completion, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// cloudFallbackNames lists the cloud providers with credentials configured,
// skipping the provider whose attempts just failed.
func cloudFallbackNames(config *configuration.Config, failed string) []string {
	var names []string
	if config.AI.OpenAIToken != "" && failed != "openai" {
		names = append(names, "openai")
	}
	if config.AI.OpenRouterToken != "" && failed != "openrouter" {
		names = append(names, "openrouter")
	}
	return names
}

func (x *Generator) checkLimits(log *tracing.Logger, account *entities.Account, kind UsageKind) error {
	if err := x.spending.CheckSpendingLimits(log, account); err != nil {
		return err
	}

	result, err := x.limiter.CheckAndIncrement(log, account, kind)
	if err != nil {
		return err
	}
	if result.Exceeded {
		return ErrUsageLimitExceeded
	}

	return nil
}

func (x *Generator) recordUsage(log *tracing.Logger, account *entities.Account, kind UsageKind, model string, tokens int, cost decimal.Decimal) {
	record := &entities.UsageRecord{
		AccountID: account.ID,
		Kind:      string(kind),
		Model:     model,
		Tokens:    int64(tokens),
		Cost:      cost,
	}

	if err := x.usage.SaveUsage(log, record); err != nil {
		log.E("Failed to record usage", tracing.InnerError, err)
	}

	x.metrics.RecordUsage(tokens, cost.InexactFloat64(), model, string(kind))
}

// budgetPrompt keeps request bodies inside the prompt token budget. The
// truncation length assumes roughly four characters per token.
func (x *Generator) budgetPrompt(log *tracing.Logger, description string) string {
	if tokenizer.Tokens(log, description) <= x.config.AI.MaxPromptTokens {
		return description
	}

	log.W("Description over token budget, truncating", tracing.AiTokens, x.config.AI.MaxPromptTokens)
	return transform.SmartTruncate(description, x.config.AI.MaxPromptTokens*4)
}
