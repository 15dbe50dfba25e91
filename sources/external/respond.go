package external

import (
	"encoding/json"
	"errors"
	"net/http"
	"taskprovision/sources/artificial"
	"taskprovision/sources/billing"
	"taskprovision/sources/repository"
	"taskprovision/sources/tasks"
	"taskprovision/sources/tracing"
)

var errInvalidBody = errors.New("invalid request body")

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(log *tracing.Logger, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.E("Request failed", tracing.HttpStatus, status, tracing.InnerError, err)
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrDependencyNotFound),
		errors.Is(err, repository.ErrAccountNotFound),
		errors.Is(err, repository.ErrLeadNotFound),
		errors.Is(err, repository.ErrSubscriptionNotFound),
		errors.Is(err, repository.ErrPlanNotFound),
		errors.Is(err, repository.ErrProjectNotFound),
		errors.Is(err, repository.ErrGenerationNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidBody),
		errors.Is(err, repository.ErrSelfDependency),
		errors.Is(err, repository.ErrInvalidEmail),
		errors.Is(err, tasks.ErrInvalidStatus),
		errors.Is(err, tasks.ErrInvalidPriority),
		errors.Is(err, billing.ErrUnknownPlan):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingCredentials):
		return http.StatusUnauthorized
	case artificial.IsSpendingLimitExceeded(err):
		return http.StatusPaymentRequired
	case errors.Is(err, artificial.ErrUsageLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, tasks.ErrTooBusy), errors.Is(err, billing.ErrBillingDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}
