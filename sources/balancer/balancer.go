package balancer

import (
	"context"
	"taskprovision/sources/configuration"
	"taskprovision/sources/tracing"

	"github.com/mr-karan/balance"
	"github.com/shopspring/decimal"
)

// Completion is a single model answer with its accounting data.
type Completion struct {
	Text             string
	Model            string
	Provider         string
	PromptTokens     int
	CompletionTokens int
	Cost             decimal.Decimal
}

type NeuroProvider interface {
	Name() string
	Complete(ctx context.Context, log *tracing.Logger, system string, user string) (*Completion, error)
}

// AIBalancer spreads completions over the configured providers by weight.
// Zero-weight providers stay registered so they can be addressed by name.
type AIBalancer struct {
	balancer  *balance.Balance
	providers map[string]NeuroProvider
}

func NewAIBalancer(config *configuration.Config, providers map[string]NeuroProvider) *AIBalancer {
	b := balance.NewBalance()

	for provider, weight := range config.AI.ProviderWeights {
		if weight > 0 {
			b.Add(provider, weight)
		}
	}

	return &AIBalancer{balancer: b, providers: providers}
}

func (x *AIBalancer) GetNeuroProvider() NeuroProvider {
	return x.GetNeuroProviderByName(x.balancer.Get())
}

func (x *AIBalancer) GetNeuroProviderByName(name string) NeuroProvider {
	return x.providers[name]
}

func (x *AIBalancer) Providers() map[string]NeuroProvider {
	return x.providers
}
