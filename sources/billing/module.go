package billing

import "go.uber.org/fx"

var Module = fx.Module("billing",
	fx.Provide(
		NewBillingService,
		NewUpsellAdvisor,
		NewPlanSeeder,
	),
	fx.Invoke(func(*PlanSeeder) {}),
)
