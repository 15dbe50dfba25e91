package external

import (
	"io"
	"net/http"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
)

func (x *Router) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := x.plans.GetActualPlans(x.log)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

type subscribeRequest struct {
	PlanKey platform.PlanKey `json:"plan_key"`
}

func (x *Router) handleSubscribe(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req subscribeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}

	subscription, err := x.billing.Subscribe(x.log, account, req.PlanKey)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, subscription)
}

func (x *Router) handleGetSubscription(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	subscription, err := x.subscriptions.GetActiveSubscriptionByAccount(x.log, account.ID)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, subscription)
}

func (x *Router) handleUpsell(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	suggestion, err := x.upsell.CheckUpsell(x.log, account)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	if suggestion == nil {
		writeJSON(w, http.StatusOK, map[string]any{"suggestion": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestion": suggestion})
}

// handleStripeWebhook is authenticated by the Stripe signature, not by an
// account credential.
func (x *Router) handleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(x.log, w, errInvalidBody)
		return
	}

	if err := x.billing.HandleWebhook(x.log, payload, r.Header.Get("Stripe-Signature")); err != nil {
		x.log.W("Stripe webhook rejected", tracing.InnerError, err)
		writeJSON(w, http.StatusBadRequest, apiError{Error: "webhook rejected"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
