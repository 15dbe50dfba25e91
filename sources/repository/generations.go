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

var ErrGenerationNotFound = errors.New("generation not found")

type GenerationsRepository struct {
	db *gorm.DB
}

func NewGenerationsRepository(db *gorm.DB) *GenerationsRepository {
	return &GenerationsRepository{db: db}
}

func (x *GenerationsRepository) SaveGeneration(logger *tracing.Logger, generation *entities.Generation) (*entities.Generation, error) {
	defer tracing.ProfilePoint(logger, "Generations save generation completed", "repository.generations.save.generation", tracing.AccountId, generation.AccountID, tracing.Language, generation.Language)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if err := x.db.WithContext(ctx).Create(generation).Error; err != nil {
		logger.E("Failed to save generation", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Saved generation", tracing.GenerationId, generation.ID, tracing.QualityScore, generation.QualityScore)
	return generation, nil
}

func (x *GenerationsRepository) GetGenerationByID(logger *tracing.Logger, id uuid.UUID) (*entities.Generation, error) {
	defer tracing.ProfilePoint(logger, "Generations get generation by id completed", "repository.generations.get.generation.by.id", tracing.GenerationId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var generation entities.Generation
	err := x.db.WithContext(ctx).Where("id = ?", id).First(&generation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		logger.E("Failed to get generation", tracing.InnerError, err)
		return nil, err
	}

	return &generation, nil
}

func (x *GenerationsRepository) GetGenerationsByAccount(logger *tracing.Logger, accountID uuid.UUID, limit int) ([]*entities.Generation, error) {
	defer tracing.ProfilePoint(logger, "Generations get generations by account completed", "repository.generations.get.generations.by.account", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	query := x.db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var generations []*entities.Generation
	if err := query.Find(&generations).Error; err != nil {
		logger.E("Failed to get generations by account", tracing.InnerError, err)
		return nil, err
	}

	return generations, nil
}

func (x *GenerationsRepository) GetTotalGenerationsCount(logger *tracing.Logger) (int64, error) {
	defer tracing.ProfilePoint(logger, "Generations get total generations count completed", "repository.generations.get.total.generations.count")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	if err := x.db.WithContext(ctx).Model(&entities.Generation{}).Count(&count).Error; err != nil {
		logger.E("Failed to count total generations", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}

func (x *GenerationsRepository) GetAverageQualityScore(logger *tracing.Logger) (float64, error) {
	defer tracing.ProfilePoint(logger, "Generations get average quality score completed", "repository.generations.get.average.quality.score")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var average *float64
	err := x.db.WithContext(ctx).Model(&entities.Generation{}).
		Select("avg(quality_score)").
		Scan(&average).Error
	if err != nil {
		logger.E("Failed to get average quality score", tracing.InnerError, err)
		return 0, err
	}
	if average == nil {
		return 0, nil
	}

	return *average, nil
}
