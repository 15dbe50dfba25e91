package artificial

import (
	"context"
	"errors"
	"net/http"
	"taskprovision/sources/balancer"
	"taskprovision/sources/configuration"
	"taskprovision/sources/metrics"
	"taskprovision/sources/tracing"
	"time"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

var ErrEmptyCompletion = errors.New("provider returned no choices")

// Per-1K-token prices for models reached through the plain OpenAI client.
// OpenRouter reports cost in the response, Ollama runs locally for free.
var openAIPricing = map[string]struct{ In, Out float64 }{
	"gpt-4o":      {In: 0.0025, Out: 0.01},
	"gpt-4o-mini": {In: 0.00015, Out: 0.0006},
}

type OllamaProvider struct {
	client  *openai.Client
	config  *configuration.Config
	metrics *metrics.MetricsService
}

func NewOllamaProvider(httpClient *http.Client, config *configuration.Config, metrics *metrics.MetricsService) *OllamaProvider {
	return &OllamaProvider{client: newOllamaClient(httpClient, config), config: config, metrics: metrics}
}

func (x *OllamaProvider) Name() string { return "ollama" }

func (x *OllamaProvider) Complete(ctx context.Context, log *tracing.Logger, system string, user string) (*balancer.Completion, error) {
	model := x.config.AI.OllamaModel
	log = log.With(tracing.AiKind, "ollama", tracing.AiModel, model)

	start := time.Now()
	response, err := x.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	x.metrics.RecordAIRequestDuration(time.Since(start), model)

	if err != nil {
		log.E("Ollama completion failed", tracing.InnerError, err)
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	log.I("ai completed", tracing.AiTokens, response.Usage.TotalTokens)

	return &balancer.Completion{
		Text:             response.Choices[0].Message.Content,
		Model:            model,
		Provider:         x.Name(),
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
		Cost:             decimal.Zero,
	}, nil
}

type OpenAIProvider struct {
	client  *openai.Client
	config  *configuration.Config
	metrics *metrics.MetricsService
}

func NewOpenAIProvider(httpClient *http.Client, config *configuration.Config, metrics *metrics.MetricsService) *OpenAIProvider {
	return &OpenAIProvider{client: newOpenAIClient(httpClient, config), config: config, metrics: metrics}
}

func (x *OpenAIProvider) Name() string { return "openai" }

func (x *OpenAIProvider) Complete(ctx context.Context, log *tracing.Logger, system string, user string) (*balancer.Completion, error) {
	model := x.config.AI.OpenAIModel
	log = log.With(tracing.AiKind, "openai", tracing.AiModel, model)

	start := time.Now()
	response, err := x.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	x.metrics.RecordAIRequestDuration(time.Since(start), model)

	if err != nil {
		log.E("OpenAI completion failed", tracing.InnerError, err)
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	cost := openAICost(model, response.Usage.PromptTokens, response.Usage.CompletionTokens)
	log.I("ai completed", tracing.AiCost, cost.String(), tracing.AiTokens, response.Usage.TotalTokens)

	return &balancer.Completion{
		Text:             response.Choices[0].Message.Content,
		Model:            model,
		Provider:         x.Name(),
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
		Cost:             cost,
	}, nil
}

func openAICost(model string, promptTokens int, completionTokens int) decimal.Decimal {
	pricing, ok := openAIPricing[model]
	if !ok {
		return decimal.Zero
	}

	in := decimal.NewFromFloat(pricing.In).Mul(decimal.NewFromInt(int64(promptTokens))).Div(decimal.NewFromInt(1000))
	out := decimal.NewFromFloat(pricing.Out).Mul(decimal.NewFromInt(int64(completionTokens))).Div(decimal.NewFromInt(1000))
	return in.Add(out)
}

type OpenRouterProvider struct {
	client  *openrouter.Client
	config  *configuration.Config
	metrics *metrics.MetricsService
}

func NewOpenRouterProvider(httpClient *http.Client, config *configuration.Config, metrics *metrics.MetricsService) *OpenRouterProvider {
	return &OpenRouterProvider{client: newOpenRouterClient(httpClient, config), config: config, metrics: metrics}
}

func (x *OpenRouterProvider) Name() string { return "openrouter" }

func (x *OpenRouterProvider) Complete(ctx context.Context, log *tracing.Logger, system string, user string) (*balancer.Completion, error) {
	model := x.config.AI.OpenRouterModel
	log = log.With(tracing.AiKind, "openrouter", tracing.AiModel, model)

	start := time.Now()
	response, err := x.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model: model,
		Messages: []openrouter.ChatCompletionMessage{
			{Role: openrouter.ChatMessageRoleSystem, Content: openrouter.Content{Text: system}},
			{Role: openrouter.ChatMessageRoleUser, Content: openrouter.Content{Text: user}},
		},
		Usage: &openrouter.IncludeUsage{Include: true},
	})
	x.metrics.RecordAIRequestDuration(time.Since(start), model)

	if err != nil {
		log.E("OpenRouter completion failed", tracing.InnerError, err)
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, ErrEmptyCompletion
	}

	cost := decimal.NewFromFloat(response.Usage.Cost)
	log.I("ai completed", tracing.AiCost, cost.String(), tracing.AiTokens, response.Usage.TotalTokens)

	return &balancer.Completion{
		Text:             response.Choices[0].Message.Content.Text,
		Model:            model,
		Provider:         x.Name(),
		PromptTokens:     response.Usage.PromptTokens,
		CompletionTokens: response.Usage.CompletionTokens,
		Cost:             cost,
	}, nil
}

func NewProviders(ollama *OllamaProvider, openAI *OpenAIProvider, openRouter *OpenRouterProvider) map[string]balancer.NeuroProvider {
	return map[string]balancer.NeuroProvider{
		ollama.Name():     ollama,
		openAI.Name():     openAI,
		openRouter.Name(): openRouter,
	}
}
