package repository

import (
	"context"
	"errors"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("plan not found")

type PlansRepository struct {
	db *gorm.DB
}

func NewPlansRepository(db *gorm.DB) *PlansRepository {
	return &PlansRepository{db: db}
}

// GetActualPlan returns the newest revision of the plan with the given key,
// falling back to starter when the key is unknown.
func (x *PlansRepository) GetActualPlan(logger *tracing.Logger, key platform.PlanKey) (*entities.Plan, error) {
	defer tracing.ProfilePoint(logger, "Plans get actual plan completed", "repository.plans.get.actual.plan", tracing.PlanKey, key)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var plan entities.Plan
	err := x.db.WithContext(ctx).Where("key = ?", key).Order("created_at desc").First(&plan).Error
	if err == nil {
		return &plan, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.E("Failed to get actual plan", tracing.InnerError, err)
		return nil, err
	}

	if key == platform.PlanStarter {
		return nil, ErrPlanNotFound
	}

	logger.W("Unknown plan key, falling back to starter", tracing.PlanKey, key)
	return x.GetActualPlan(logger, platform.PlanStarter)
}

func (x *PlansRepository) GetActualPlans(logger *tracing.Logger) ([]*entities.Plan, error) {
	defer tracing.ProfilePoint(logger, "Plans get actual plans completed", "repository.plans.get.actual.plans")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var plans []*entities.Plan
	err := x.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (key) * FROM tp_plans ORDER BY key, created_at DESC`).
		Scan(&plans).Error
	if err != nil {
		logger.E("Failed to get actual plans", tracing.InnerError, err)
		return nil, err
	}

	return plans, nil
}

// SeedPlans inserts the default plan catalog when the table is empty.
func (x *PlansRepository) SeedPlans(logger *tracing.Logger, plans []*entities.Plan) error {
	defer tracing.ProfilePoint(logger, "Plans seed plans completed", "repository.plans.seed.plans")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	if err := x.db.WithContext(ctx).Model(&entities.Plan{}).Count(&count).Error; err != nil {
		logger.E("Failed to count plans before seeding", tracing.InnerError, err)
		return err
	}
	if count > 0 {
		return nil
	}

	if err := x.db.WithContext(ctx).Create(plans).Error; err != nil {
		logger.E("Failed to seed plans", tracing.InnerError, err)
		return err
	}

	logger.I("Seeded default plan catalog")
	return nil
}
