package artificial

import "go.uber.org/fx"

var Module = fx.Module(
	"artificial",
	fx.Provide(
		NewOllamaProvider,
		NewOpenAIProvider,
		NewOpenRouterProvider,
		NewProviders,
		NewUsageLimiter,
		NewSpendingLimiter,
		NewGenerator,
		NewAnalyzer,
	),
)
