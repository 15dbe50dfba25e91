package billing

import (
	"fmt"
	"taskprovision/sources/features"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/texting/format"
	"taskprovision/sources/tracing"
)

// Thresholds that trip an upgrade suggestion.
const (
	upsellUsageShare      = 0.8
	upsellMonthlyAPICalls = 1000
)

type UpsellSuggestion struct {
	CurrentPlan   platform.PlanKey `json:"current_plan"`
	SuggestedPlan platform.PlanKey `json:"suggested_plan"`
	Reason        string           `json:"reason"`
}

// UpsellAdvisor watches per-account usage and recommends the next plan when
// the current one is close to exhausted.
type UpsellAdvisor struct {
	plans    *repository.PlansRepository
	projects *repository.ProjectsRepository
	usage    *repository.UsageRepository
	features *features.FeatureManager
}

func NewUpsellAdvisor(
	plans *repository.PlansRepository,
	projects *repository.ProjectsRepository,
	usage *repository.UsageRepository,
	features *features.FeatureManager,
) *UpsellAdvisor {
	return &UpsellAdvisor{plans: plans, projects: projects, usage: usage, features: features}
}

// CheckUpsell returns a plan upgrade suggestion or nil when the account fits
// its current plan.
func (x *UpsellAdvisor) CheckUpsell(log *tracing.Logger, account *entities.Account) (*UpsellSuggestion, error) {
	defer tracing.ProfilePoint(log, "Upsell check completed", "billing.upsell.check", tracing.AccountId, account.ID)()

	if !x.features.IsEnabledDefault(features.FeatureUsageUpsell, true) {
		return nil, nil
	}

	next := nextPlan(account.PlanKey)
	if next == "" {
		return nil, nil
	}

	plan, err := x.plans.GetActualPlan(log, account.PlanKey)
	if err != nil {
		return nil, err
	}

	if plan.ProjectLimit > 0 {
		count, err := x.projects.GetProjectsCountByAccount(log, account.ID)
		if err != nil {
			return nil, err
		}
		if float64(count) > upsellUsageShare*float64(plan.ProjectLimit) {
			log.I("Upsell triggered by project usage", tracing.AccountId, account.ID, tracing.PlanKey, next)
			return &UpsellSuggestion{
				CurrentPlan:   account.PlanKey,
				SuggestedPlan: next,
				Reason:        fmt.Sprintf("project count is above 80%% of the %s project plan limit", format.Numberify(int64(plan.ProjectLimit))),
			}, nil
		}
	}

	if plan.UsageGenerationMonthly > 0 {
		generations, err := x.usage.GetUsageCounter(log, "generation", "month", account.ID)
		if err != nil {
			return nil, err
		}
		if float64(generations) > upsellUsageShare*float64(plan.UsageGenerationMonthly) {
			log.I("Upsell triggered by generation volume", tracing.AccountId, account.ID, tracing.PlanKey, next)
			return &UpsellSuggestion{
				CurrentPlan:   account.PlanKey,
				SuggestedPlan: next,
				Reason:        fmt.Sprintf("monthly generation count is above 80%% of the %s generation quota", format.Numberify(int64(plan.UsageGenerationMonthly))),
			}, nil
		}
	}

	calls, err := x.usage.GetMonthlyAPICallsCount(log, account.ID)
	if err != nil {
		return nil, err
	}
	if calls > upsellMonthlyAPICalls {
		log.I("Upsell triggered by api call volume", tracing.AccountId, account.ID, tracing.PlanKey, next)
		return &UpsellSuggestion{
			CurrentPlan:   account.PlanKey,
			SuggestedPlan: next,
			Reason:        fmt.Sprintf("%s api calls this month exceed the plan allowance", format.Numberify(calls)),
		}, nil
	}

	return nil, nil
}

func nextPlan(current platform.PlanKey) platform.PlanKey {
	switch current {
	case platform.PlanStarter:
		return platform.PlanProfessional
	case platform.PlanProfessional:
		return platform.PlanEnterprise
	}
	return ""
}
