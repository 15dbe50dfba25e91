package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"taskprovision/sources/configuration"
	"taskprovision/sources/metrics"
	"taskprovision/sources/outreach"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

var (
	ErrUnknownPlan     = errors.New("unknown plan key")
	ErrBillingDisabled = errors.New("billing is not configured")
)

// BillingService owns the Stripe integration: subscription checkout with a
// free trial, webhook driven status sync and account plan changes.
type BillingService struct {
	log           *tracing.Logger
	config        *configuration.Config
	stripe        *client.API
	accounts      *repository.AccountsRepository
	subscriptions *repository.SubscriptionsRepository
	plans         *repository.PlansRepository
	mailer        *outreach.Mailer
	metrics       *metrics.MetricsService
}

func NewBillingService(
	log *tracing.Logger,
	config *configuration.Config,
	accounts *repository.AccountsRepository,
	subscriptions *repository.SubscriptionsRepository,
	plans *repository.PlansRepository,
	mailer *outreach.Mailer,
	metrics *metrics.MetricsService,
) *BillingService {
	sc := &client.API{}
	sc.Init(config.Stripe.APIKey, nil)

	return &BillingService{
		log:           log,
		config:        config,
		stripe:        sc,
		accounts:      accounts,
		subscriptions: subscriptions,
		plans:         plans,
		mailer:        mailer,
		metrics:       metrics,
	}
}

// Subscribe creates a Stripe customer and a trialing subscription for the
// account, switches the account to the chosen plan and sends the onboarding
// welcome email.
func (x *BillingService) Subscribe(log *tracing.Logger, account *entities.Account, planKey platform.PlanKey) (*entities.Subscription, error) {
	defer tracing.ProfilePoint(log, "Subscription checkout completed", "billing.service.subscribe", tracing.AccountId, account.ID, tracing.PlanKey, planKey)()

	if !platform.KnownPlanKey(planKey) {
		return nil, ErrUnknownPlan
	}
	if x.config.Stripe.APIKey == "" {
		return nil, ErrBillingDisabled
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(account.Email),
		Name:  account.Name,
	}
	customerParams.AddMetadata("source", "taskprovision")
	if account.GithubUsername != nil {
		customerParams.AddMetadata("github", *account.GithubUsername)
	}

	customer, err := x.stripe.Customers.New(customerParams)
	if err != nil {
		log.E("Failed to create stripe customer", tracing.InnerError, err)
		return nil, err
	}

	subscriptionParams := &stripe.SubscriptionParams{
		Customer: stripe.String(customer.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceIDFor(planKey))},
		},
		TrialPeriodDays: stripe.Int64(x.config.Stripe.TrialDays),
	}
	subscriptionParams.AddMetadata("plan", planKey)

	stripeSubscription, err := x.stripe.Subscriptions.New(subscriptionParams)
	if err != nil {
		log.E("Failed to create stripe subscription", tracing.InnerError, err)
		return nil, err
	}

	var trialEndsAt *time.Time
	if stripeSubscription.TrialEnd > 0 {
		trialEnd := time.Unix(stripeSubscription.TrialEnd, 0).UTC()
		trialEndsAt = &trialEnd
	}

	subscription, err := x.subscriptions.CreateSubscription(log, &entities.Subscription{
		AccountID:            account.ID,
		StripeCustomerID:     customer.ID,
		StripeSubscriptionID: stripeSubscription.ID,
		PlanKey:              planKey,
		Status:               string(stripeSubscription.Status),
		TrialEndsAt:          trialEndsAt,
	})
	if err != nil {
		return nil, err
	}

	if err := x.accounts.UpdateAccountPlan(log, account.ID, planKey); err != nil {
		return nil, err
	}

	x.metrics.RecordStripeEvent("subscription.created", "ok")
	x.sendWelcomeEmail(log, account)

	return subscription, nil
}

// HandleWebhook verifies the Stripe signature and applies subscription
// lifecycle events to the local state.
func (x *BillingService) HandleWebhook(log *tracing.Logger, payload []byte, signature string) error {
	defer tracing.ProfilePoint(log, "Stripe webhook handled", "billing.service.handle.webhook")()

	event, err := webhook.ConstructEvent(payload, signature, x.config.Stripe.WebhookSecret)
	if err != nil {
		log.W("Rejected stripe webhook with bad signature", tracing.InnerError, err)
		x.metrics.RecordStripeEvent("unknown", "rejected")
		return err
	}

	switch string(event.Type) {
	case "customer.subscription.updated":
		err = x.applySubscriptionEvent(log, event, "")
	case "customer.subscription.deleted":
		err = x.applySubscriptionEvent(log, event, "canceled")
	case "invoice.payment_failed":
		log.W("Stripe invoice payment failed", tracing.StripeEvent, string(event.Type))
	default:
		log.D("Ignored stripe event", tracing.StripeEvent, string(event.Type))
	}

	status := "ok"
	if err != nil {
		status = "failed"
	}
	x.metrics.RecordStripeEvent(string(event.Type), status)

	return err
}

func (x *BillingService) applySubscriptionEvent(log *tracing.Logger, event stripe.Event, forcedStatus string) error {
	var stripeSubscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &stripeSubscription); err != nil {
		log.E("Failed to decode stripe subscription payload", tracing.InnerError, err)
		return err
	}

	status := string(stripeSubscription.Status)
	if forcedStatus != "" {
		status = forcedStatus
	}

	if err := x.subscriptions.UpdateSubscriptionStatus(log, stripeSubscription.ID, status); err != nil {
		if errors.Is(err, repository.ErrSubscriptionNotFound) {
			log.W("Stripe event for unknown subscription", tracing.StripeEvent, string(event.Type))
			return nil
		}
		return err
	}

	log.I("Applied stripe subscription event", tracing.StripeEvent, string(event.Type))

	if status == "canceled" || status == "unpaid" {
		return x.downgradeAccount(log, stripeSubscription.ID)
	}

	return nil
}

// downgradeAccount drops the account back to starter once its paid
// subscription is gone.
func (x *BillingService) downgradeAccount(log *tracing.Logger, stripeSubscriptionID string) error {
	subscription, err := x.subscriptions.GetSubscriptionByStripeID(log, stripeSubscriptionID)
	if err != nil {
		return err
	}

	if err := x.accounts.UpdateAccountPlan(log, subscription.AccountID, platform.PlanStarter); err != nil {
		return err
	}

	log.I("Downgraded account to starter", tracing.AccountId, subscription.AccountID)
	return nil
}

func (x *BillingService) sendWelcomeEmail(log *tracing.Logger, account *entities.Account) {
	subject, body, err := outreach.RenderStep(outreach.SequenceTrialOnboarding, 0, outreach.TemplateData{
		Name:       platform.StringValue(account.Name, account.Email),
		SenderName: x.config.SMTP.FromName,
	})
	if err != nil {
		log.W("Failed to render welcome email", tracing.InnerError, err)
		return
	}

	if err := x.mailer.Send(log, account.Email, subject, body); err != nil {
		log.W("Failed to send welcome email", tracing.AccountId, account.ID, tracing.InnerError, err)
		return
	}

	x.metrics.RecordEmailSent(outreach.SequenceTrialOnboarding, "sent")
}

func priceIDFor(planKey platform.PlanKey) string {
	return fmt.Sprintf("price_%s", planKey)
}
