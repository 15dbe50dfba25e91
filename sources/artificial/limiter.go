package artificial

import (
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"
)

type UsageKind string

const (
	UsageKindGeneration UsageKind = "generation"
	UsageKindAnalysis   UsageKind = "analysis"
)

type LimitCheckResult struct {
	Exceeded bool
	IsDaily  bool
}

// UsageLimiter enforces the per-plan daily and monthly operation quotas.
type UsageLimiter struct {
	plans *repository.PlansRepository
	usage *repository.UsageRepository
}

func NewUsageLimiter(plans *repository.PlansRepository, usage *repository.UsageRepository) *UsageLimiter {
	return &UsageLimiter{plans: plans, usage: usage}
}

func (x *UsageLimiter) CheckAndIncrement(logger *tracing.Logger, account *entities.Account, kind UsageKind) (*LimitCheckResult, error) {
	plan, err := x.plans.GetActualPlan(logger, account.PlanKey)
	if err != nil {
		logger.E("Failed to get plan for usage limits", tracing.InnerError, err)
		return nil, err
	}

	dailyLimit, monthlyLimit := limitsFor(plan, kind)

	monthlyCount, err := x.usage.GetUsageCounter(logger, string(kind), "month", account.ID)
	if err != nil {
		return nil, err
	}
	if monthlyLimit > 0 && monthlyCount >= int64(monthlyLimit) {
		x.logExceeded(logger, account, kind, "monthly", monthlyCount, monthlyLimit)
		return &LimitCheckResult{Exceeded: true, IsDaily: false}, nil
	}

	dailyCount, err := x.usage.GetUsageCounter(logger, string(kind), "day", account.ID)
	if err != nil {
		return nil, err
	}
	if dailyLimit > 0 && dailyCount >= int64(dailyLimit) {
		x.logExceeded(logger, account, kind, "daily", dailyCount, dailyLimit)
		return &LimitCheckResult{Exceeded: true, IsDaily: true}, nil
	}

	if _, err := x.usage.IncrementUsageCounter(logger, string(kind), "day", account.ID); err != nil {
		return nil, err
	}
	if _, err := x.usage.IncrementUsageCounter(logger, string(kind), "month", account.ID); err != nil {
		return nil, err
	}

	return &LimitCheckResult{Exceeded: false}, nil
}

func (x *UsageLimiter) logExceeded(logger *tracing.Logger, account *entities.Account, kind UsageKind, limitType string, current int64, limit int) {
	logger.I("usage_limit_exceeded",
		tracing.AccountId, account.ID,
		tracing.PlanKey, account.PlanKey,
		tracing.AiKind, kind,
		"limit_type", limitType,
		"current_usage", current,
		"limit", limit,
	)
}

func limitsFor(plan *entities.Plan, kind UsageKind) (int, int) {
	switch kind {
	case UsageKindAnalysis:
		return plan.UsageAnalysisDaily, plan.UsageAnalysisMonthly
	default:
		return plan.UsageGenerationDaily, plan.UsageGenerationMonthly
	}
}
