package external

import (
	"net/http"
	"taskprovision/sources/artificial"
	"taskprovision/sources/configuration"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/repository"
	"taskprovision/sources/tasks"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestIssuer(secret string) *TokenIssuer {
	config := &configuration.Config{}
	config.Security.SecretKey = secret
	config.Security.AccessTokenTTL = 30 * time.Minute
	return NewTokenIssuer(config)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer("test-secret")
	account := &entities.Account{ID: uuid.New()}

	token, expiresAt, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Errorf("token ttl = %v, want about 30m", remaining)
	}

	accountID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if accountID != account.ID {
		t.Errorf("Verify() subject = %s, want %s", accountID, account.ID)
	}
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	token, _, err := newTestIssuer("secret-one").Issue(&entities.Account{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := newTestIssuer("secret-two").Verify(token); err != ErrInvalidToken {
		t.Errorf("Verify() err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := newTestIssuer("secret").Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("Verify() err = %v, want ErrInvalidToken", err)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrTaskNotFound, http.StatusNotFound},
		{repository.ErrAccountNotFound, http.StatusNotFound},
		{repository.ErrProjectNotFound, http.StatusNotFound},
		{errInvalidBody, http.StatusBadRequest},
		{tasks.ErrInvalidStatus, http.StatusBadRequest},
		{ErrInvalidToken, http.StatusUnauthorized},
		{artificial.ErrUsageLimitExceeded, http.StatusTooManyRequests},
		{tasks.ErrTooBusy, http.StatusServiceUnavailable},
		{artificial.ErrEmptyGeneration, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
