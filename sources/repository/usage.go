package repository

import (
	"context"
	"fmt"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UsageRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewUsageRepository(db *gorm.DB, redis *redis.Client) *UsageRepository {
	return &UsageRepository{db: db, redis: redis}
}

func (x *UsageRepository) SaveUsage(logger *tracing.Logger, record *entities.UsageRecord) error {
	defer tracing.ProfilePoint(logger, "Usage save usage completed", "repository.usage.save.usage", tracing.AccountId, record.AccountID, tracing.AiKind, record.Kind)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if err := x.db.WithContext(ctx).Create(record).Error; err != nil {
		logger.E("Failed to save usage record", tracing.InnerError, err)
		return err
	}

	return nil
}

// IncrementUsageCounter bumps the redis counter for the given kind and period
// and returns the new value. Counters expire after 62 days.
func (x *UsageRepository) IncrementUsageCounter(logger *tracing.Logger, kind string, period string, accountID uuid.UUID) (int64, error) {
	defer tracing.ProfilePoint(logger, "Usage increment usage counter completed", "repository.usage.increment.usage.counter", tracing.AiKind, kind)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	key := usageKey(kind, period, accountID)
	value, err := x.redis.Incr(ctx, key).Result()
	if err != nil {
		logger.E("Failed to increment usage counter", tracing.InnerError, err)
		return 0, err
	}
	if value == 1 {
		x.redis.Expire(ctx, key, 62*24*time.Hour)
	}

	return value, nil
}

func (x *UsageRepository) GetUsageCounter(logger *tracing.Logger, kind string, period string, accountID uuid.UUID) (int64, error) {
	defer tracing.ProfilePoint(logger, "Usage get usage counter completed", "repository.usage.get.usage.counter", tracing.AiKind, kind)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	value, err := x.redis.Get(ctx, usageKey(kind, period, accountID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logger.E("Failed to get usage counter", tracing.InnerError, err)
		return 0, err
	}

	return value, nil
}

func (x *UsageRepository) GetSpendingSince(logger *tracing.Logger, accountID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	defer tracing.ProfilePoint(logger, "Usage get spending since completed", "repository.usage.get.spending.since", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var total *decimal.Decimal
	err := x.db.WithContext(ctx).Model(&entities.UsageRecord{}).
		Select("sum(cost)").
		Where("account_id = ?", accountID).
		Where("created_at >= ?", since).
		Scan(&total).Error
	if err != nil {
		logger.E("Failed to get spending since", tracing.InnerError, err)
		return decimal.Zero, err
	}
	if total == nil {
		return decimal.Zero, nil
	}

	return *total, nil
}

func (x *UsageRepository) GetMonthlyAPICallsCount(logger *tracing.Logger, accountID uuid.UUID) (int64, error) {
	defer tracing.ProfilePoint(logger, "Usage get monthly api calls count completed", "repository.usage.get.monthly.api.calls.count", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	monthStart := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -time.Now().UTC().Day()+1)

	var count int64
	err := x.db.WithContext(ctx).Model(&entities.UsageRecord{}).
		Where("account_id = ?", accountID).
		Where("created_at >= ?", monthStart).
		Count(&count).Error
	if err != nil {
		logger.E("Failed to count monthly api calls", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}

func usageKey(kind string, period string, accountID uuid.UUID) string {
	var date string
	switch period {
	case "month":
		date = time.Now().UTC().Format("2006-01")
	default:
		date = time.Now().UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("usage:%s:%s:%s:%s", kind, period, accountID, date)
}
