package artificial

import (
	"net/http"
	"strings"
	"taskprovision/sources/configuration"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/sashabaranov/go-openai"
)

func newOpenAIClient(client *http.Client, config *configuration.Config) *openai.Client {
	openaiConfig := openai.DefaultConfig(config.AI.OpenAIToken)
	openaiConfig.HTTPClient = client
	return openai.NewClientWithConfig(openaiConfig)
}

// newOllamaClient talks to a local Ollama daemon through its OpenAI
// compatible endpoint, so the same client library serves both.
func newOllamaClient(client *http.Client, config *configuration.Config) *openai.Client {
	ollamaConfig := openai.DefaultConfig("ollama")
	ollamaConfig.BaseURL = strings.TrimSuffix(config.AI.OllamaBaseURL, "/") + "/v1"
	ollamaConfig.HTTPClient = client
	return openai.NewClientWithConfig(ollamaConfig)
}

func newOpenRouterClient(client *http.Client, config *configuration.Config) *openrouter.Client {
	clientConfig := openrouter.DefaultConfig(config.AI.OpenRouterToken)
	clientConfig.HTTPClient = client
	clientConfig.XTitle = "TaskProvision"
	clientConfig.HttpReferer = "https://taskprovision.dev"

	return openrouter.NewClientWithConfig(*clientConfig)
}
