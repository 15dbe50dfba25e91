package artificial

import (
	"fmt"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/repository"
	"taskprovision/sources/texting/format"
	"taskprovision/sources/tracing"
	"time"
)

type LimitType string

const (
	LimitTypeDaily   LimitType = "daily"
	LimitTypeMonthly LimitType = "monthly"
)

type SpendingLimitExceededError struct {
	PlanKey      string
	LimitType    LimitType
	LimitAmount  string
	CurrentSpend string
}

func (e *SpendingLimitExceededError) Error() string {
	return fmt.Sprintf("Spending limit exceeded: %s %s, current spend: %s, limit: %s", e.LimitType, e.PlanKey, e.CurrentSpend, e.LimitAmount)
}

func IsSpendingLimitExceeded(err error) bool {
	_, ok := err.(*SpendingLimitExceededError)
	return ok
}

// SpendingLimiter caps the AI provider cost an account can accrue per day and
// per month, according to its plan.
type SpendingLimiter struct {
	plans *repository.PlansRepository
	usage *repository.UsageRepository
}

func NewSpendingLimiter(plans *repository.PlansRepository, usage *repository.UsageRepository) *SpendingLimiter {
	return &SpendingLimiter{plans: plans, usage: usage}
}

func (s *SpendingLimiter) CheckSpendingLimits(logger *tracing.Logger, account *entities.Account) error {
	plan, err := s.plans.GetActualPlan(logger, account.PlanKey)
	if err != nil {
		logger.E("Failed to get plan for spending limits", tracing.InnerError, err)
		return err
	}

	now := time.Now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	dailySpent, err := s.usage.GetSpendingSince(logger, account.ID, dayStart)
	if err != nil {
		return err
	}
	if plan.SpendingDailyLimit.IsPositive() && dailySpent.GreaterThanOrEqual(plan.SpendingDailyLimit) {
		return &SpendingLimitExceededError{
			PlanKey:      account.PlanKey,
			LimitType:    LimitTypeDaily,
			LimitAmount:  format.CurrencifyDecimal(plan.SpendingDailyLimit),
			CurrentSpend: format.CurrencifyDecimal(dailySpent),
		}
	}

	monthlySpent, err := s.usage.GetSpendingSince(logger, account.ID, monthStart)
	if err != nil {
		return err
	}
	if plan.SpendingMonthlyLimit.IsPositive() && monthlySpent.GreaterThanOrEqual(plan.SpendingMonthlyLimit) {
		return &SpendingLimitExceededError{
			PlanKey:      account.PlanKey,
			LimitType:    LimitTypeMonthly,
			LimitAmount:  format.CurrencifyDecimal(plan.SpendingMonthlyLimit),
			CurrentSpend: format.CurrencifyDecimal(monthlySpent),
		}
	}

	return nil
}
