package external

import (
	"errors"
	"net/http"
	"strings"
	"taskprovision/sources/configuration"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/tracing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken       = errors.New("invalid access token")
	ErrMissingCredentials = errors.New("missing credentials")
)

// TokenIssuer exchanges API keys for short-lived HS256 access tokens.
type TokenIssuer struct {
	config *configuration.Config
}

func NewTokenIssuer(config *configuration.Config) *TokenIssuer {
	return &TokenIssuer{config: config}
}

func (x *TokenIssuer) Issue(account *entities.Account) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(x.config.Security.AccessTokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   account.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte(x.config.Security.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func (x *TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(x.config.Security.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return accountID, nil
}

// authenticate resolves the caller from a bearer token or a raw API key.
func (x *Router) authenticate(r *http.Request) (*entities.Account, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return nil, ErrInvalidToken
		}

		accountID, err := x.issuer.Verify(tokenString)
		if err != nil {
			return nil, err
		}

		return x.accounts.GetAccountByID(x.log, accountID)
	}

	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return x.accounts.GetAccountByAPIKey(x.log, apiKey)
	}

	return nil, ErrMissingCredentials
}

type registerRequest struct {
	Email          string  `json:"email"`
	Name           *string `json:"name"`
	GithubUsername *string `json:"github_username"`
}

type registerResponse struct {
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
	APIKey  string    `json:"api_key"`
	PlanKey string    `json:"plan_key"`
}

func (x *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}

	account, err := x.accounts.CreateAccount(x.log, req.Email, req.Name, req.GithubUsername)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:      account.ID,
		Email:   account.Email,
		APIKey:  account.APIKey,
		PlanKey: account.PlanKey,
	})
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (x *Router) handleToken(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get("X-API-Key")
	if apiKey == "" {
		writeError(x.log, w, ErrMissingCredentials)
		return
	}

	account, err := x.accounts.GetAccountByAPIKey(x.log, apiKey)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	token, expiresAt, err := x.issuer.Issue(account)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	x.log.I("Issued access token", tracing.AccountId, account.ID)
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt})
}
