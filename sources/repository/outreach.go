package repository

import (
	"context"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) *OutreachRepository {
	return &OutreachRepository{db: db}
}

func (x *OutreachRepository) CreateOutreachStep(logger *tracing.Logger, leadID uuid.UUID, sequenceKey string, step int, nextSendAt time.Time) (*entities.OutreachStep, error) {
	defer tracing.ProfilePoint(logger, "Outreach create outreach step completed", "repository.outreach.create.outreach.step", tracing.SequenceKey, sequenceKey, tracing.SequenceStep, step)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	record := &entities.OutreachStep{
		LeadID:      leadID,
		SequenceKey: sequenceKey,
		Step:        step,
		NextSendAt:  nextSendAt,
	}

	if err := x.db.WithContext(ctx).Create(record).Error; err != nil {
		logger.E("Failed to create outreach step", tracing.InnerError, err)
		return nil, err
	}

	return record, nil
}

// GetDueOutreachSteps returns unsent steps whose send time has passed, with
// their leads preloaded for template rendering.
func (x *OutreachRepository) GetDueOutreachSteps(logger *tracing.Logger, now time.Time, limit int) ([]*entities.OutreachStep, error) {
	defer tracing.ProfilePoint(logger, "Outreach get due outreach steps completed", "repository.outreach.get.due.outreach.steps")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var steps []*entities.OutreachStep
	err := x.db.WithContext(ctx).
		Preload("Lead").
		Where("sent_at IS NULL").
		Where("next_send_at <= ?", now).
		Order("next_send_at asc").
		Limit(limit).
		Find(&steps).Error
	if err != nil {
		logger.E("Failed to get due outreach steps", tracing.InnerError, err)
		return nil, err
	}

	return steps, nil
}

func (x *OutreachRepository) MarkOutreachStepSent(logger *tracing.Logger, id uuid.UUID, sentAt time.Time) error {
	defer tracing.ProfilePoint(logger, "Outreach mark outreach step sent completed", "repository.outreach.mark.outreach.step.sent")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	err := x.db.WithContext(ctx).Model(&entities.OutreachStep{}).Where("id = ?", id).Update("sent_at", sentAt).Error
	if err != nil {
		logger.E("Failed to mark outreach step sent", tracing.InnerError, err)
		return err
	}

	return nil
}

func (x *OutreachRepository) GetSentStepsCountSince(logger *tracing.Logger, since time.Time) (int64, error) {
	defer tracing.ProfilePoint(logger, "Outreach get sent steps count since completed", "repository.outreach.get.sent.steps.count.since")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	err := x.db.WithContext(ctx).Model(&entities.OutreachStep{}).
		Where("sent_at IS NOT NULL").
		Where("sent_at >= ?", since).
		Count(&count).Error
	if err != nil {
		logger.E("Failed to count sent outreach steps", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}
