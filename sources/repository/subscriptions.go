package repository

import (
	"context"
	"errors"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionsRepository struct {
	db *gorm.DB
}

func NewSubscriptionsRepository(db *gorm.DB) *SubscriptionsRepository {
	return &SubscriptionsRepository{db: db}
}

func (x *SubscriptionsRepository) CreateSubscription(logger *tracing.Logger, subscription *entities.Subscription) (*entities.Subscription, error) {
	defer tracing.ProfilePoint(logger, "Subscriptions create subscription completed", "repository.subscriptions.create.subscription", tracing.AccountId, subscription.AccountID, tracing.PlanKey, subscription.PlanKey)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if err := x.db.WithContext(ctx).Create(subscription).Error; err != nil {
		logger.E("Failed to create subscription", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Created subscription", tracing.PlanKey, subscription.PlanKey)
	return subscription, nil
}

func (x *SubscriptionsRepository) GetSubscriptionByStripeID(logger *tracing.Logger, stripeSubscriptionID string) (*entities.Subscription, error) {
	defer tracing.ProfilePoint(logger, "Subscriptions get subscription by stripe id completed", "repository.subscriptions.get.subscription.by.stripe.id")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var subscription entities.Subscription
	err := x.db.WithContext(ctx).Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		logger.E("Failed to get subscription by stripe id", tracing.InnerError, err)
		return nil, err
	}

	return &subscription, nil
}

func (x *SubscriptionsRepository) GetActiveSubscriptionByAccount(logger *tracing.Logger, accountID uuid.UUID) (*entities.Subscription, error) {
	defer tracing.ProfilePoint(logger, "Subscriptions get active subscription by account completed", "repository.subscriptions.get.active.subscription.by.account", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var subscription entities.Subscription
	err := x.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Where("status IN ?", []string{"active", "trialing"}).
		Order("created_at desc").
		First(&subscription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		logger.E("Failed to get active subscription by account", tracing.InnerError, err)
		return nil, err
	}

	return &subscription, nil
}

func (x *SubscriptionsRepository) UpdateSubscriptionStatus(logger *tracing.Logger, stripeSubscriptionID string, status string) error {
	defer tracing.ProfilePoint(logger, "Subscriptions update subscription status completed", "repository.subscriptions.update.subscription.status")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	result := x.db.WithContext(ctx).Model(&entities.Subscription{}).
		Where("stripe_subscription_id = ?", stripeSubscriptionID).
		Update("status", status)
	if result.Error != nil {
		logger.E("Failed to update subscription status", tracing.InnerError, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
