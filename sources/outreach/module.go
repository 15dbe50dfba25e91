package outreach

import "go.uber.org/fx"

var Module = fx.Module("outreach",
	fx.Provide(
		NewGitHubClient,
		NewMiner,
		NewMailer,
		NewDispatcher,
	),
	fx.Invoke(func(*Miner, *Dispatcher) {}),
)
