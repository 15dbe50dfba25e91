package billing

import (
	"context"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// DefaultPlans is the catalog seeded into an empty installation. Prices are
// monthly, a negative project limit means unlimited.
func DefaultPlans() []*entities.Plan {
	return []*entities.Plan{
		{
			Key:                    platform.PlanStarter,
			DisplayName:            "Starter",
			MonthlyPrice:           decimal.NewFromInt(29),
			ProjectLimit:           3,
			UsageGenerationDaily:   50,
			UsageGenerationMonthly: 1000,
			UsageAnalysisDaily:     100,
			UsageAnalysisMonthly:   2000,
			SpendingDailyLimit:     decimal.NewFromInt(5),
			SpendingMonthlyLimit:   decimal.NewFromInt(50),
		},
		{
			Key:                    platform.PlanProfessional,
			DisplayName:            "Professional",
			MonthlyPrice:           decimal.NewFromInt(79),
			ProjectLimit:           -1,
			UsageGenerationDaily:   200,
			UsageGenerationMonthly: 5000,
			UsageAnalysisDaily:     500,
			UsageAnalysisMonthly:   10000,
			SpendingDailyLimit:     decimal.NewFromInt(25),
			SpendingMonthlyLimit:   decimal.NewFromInt(250),
		},
		{
			Key:                    platform.PlanEnterprise,
			DisplayName:            "Enterprise",
			MonthlyPrice:           decimal.NewFromInt(199),
			ProjectLimit:           -1,
			UsageGenerationDaily:   1000,
			UsageGenerationMonthly: 25000,
			UsageAnalysisDaily:     2000,
			UsageAnalysisMonthly:   50000,
			SpendingDailyLimit:     decimal.NewFromInt(100),
			SpendingMonthlyLimit:   decimal.NewFromInt(1000),
		},
	}
}

type PlanSeeder struct {
	log   *tracing.Logger
	plans *repository.PlansRepository
}

func NewPlanSeeder(lc fx.Lifecycle, log *tracing.Logger, plans *repository.PlansRepository) *PlanSeeder {
	x := &PlanSeeder{log: log, plans: plans}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return x.plans.SeedPlans(x.log, DefaultPlans())
		},
	})

	return x
}
