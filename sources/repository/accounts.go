package repository

import (
	"context"
	"errors"
	"strings"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrInvalidEmail    = errors.New("invalid email")
)

type AccountsRepository struct {
	db *gorm.DB
}

func NewAccountsRepository(db *gorm.DB) *AccountsRepository {
	return &AccountsRepository{db: db}
}

func (x *AccountsRepository) CreateAccount(logger *tracing.Logger, email string, name *string, githubUsername *string) (*entities.Account, error) {
	defer tracing.ProfilePoint(logger, "Accounts create account completed", "repository.accounts.create.account", tracing.AccountEmail, email)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	account := &entities.Account{
		Email:          email,
		Name:           name,
		GithubUsername: githubUsername,
		APIKey:         strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		PlanKey:        platform.PlanStarter,
		IsActive:       platform.BoolPtr(true),
	}

	if err := x.db.WithContext(ctx).Create(account).Error; err != nil {
		logger.E("Failed to create account", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Created account", tracing.AccountId, account.ID)
	return account, nil
}

func (x *AccountsRepository) GetAccountByID(logger *tracing.Logger, id uuid.UUID) (*entities.Account, error) {
	defer tracing.ProfilePoint(logger, "Accounts get account by id completed", "repository.accounts.get.account.by.id", tracing.AccountId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var account entities.Account
	err := x.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.W("Account not found when expected")
			return nil, ErrAccountNotFound
		}
		logger.E("Failed to get account", tracing.InnerError, err)
		return nil, err
	}

	return &account, nil
}

func (x *AccountsRepository) GetAccountByAPIKey(logger *tracing.Logger, apiKey string) (*entities.Account, error) {
	defer tracing.ProfilePoint(logger, "Accounts get account by api key completed", "repository.accounts.get.account.by.api.key")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var account entities.Account
	err := x.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		logger.E("Failed to get account by api key", tracing.InnerError, err)
		return nil, err
	}

	if !platform.BoolValue(account.IsActive, false) {
		return nil, ErrAccountNotFound
	}

	return &account, nil
}

func (x *AccountsRepository) GetAccountByEmail(logger *tracing.Logger, email string) (*entities.Account, error) {
	defer tracing.ProfilePoint(logger, "Accounts get account by email completed", "repository.accounts.get.account.by.email", tracing.AccountEmail, email)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var account entities.Account
	err := x.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(strings.ToLower(email))).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		logger.E("Failed to get account by email", tracing.InnerError, err)
		return nil, err
	}

	return &account, nil
}

func (x *AccountsRepository) UpdateAccountPlan(logger *tracing.Logger, id uuid.UUID, planKey platform.PlanKey) error {
	defer tracing.ProfilePoint(logger, "Accounts update account plan completed", "repository.accounts.update.account.plan", tracing.AccountId, id, tracing.PlanKey, planKey)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	err := x.db.WithContext(ctx).Model(&entities.Account{}).Where("id = ?", id).Update("plan_key", planKey).Error
	if err != nil {
		logger.E("Failed to update account plan", tracing.InnerError, err)
		return err
	}

	logger.I("Account plan updated")
	return nil
}

func (x *AccountsRepository) GetTotalAccountsCount(logger *tracing.Logger) (int64, error) {
	defer tracing.ProfilePoint(logger, "Accounts get total accounts count completed", "repository.accounts.get.total.accounts.count")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	if err := x.db.WithContext(ctx).Model(&entities.Account{}).Count(&count).Error; err != nil {
		logger.E("Failed to count total accounts", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}
