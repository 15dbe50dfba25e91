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
	"gorm.io/gorm/clause"
)

var ErrLeadNotFound = errors.New("lead not found")

type LeadsRepository struct {
	db *gorm.DB
}

func NewLeadsRepository(db *gorm.DB) *LeadsRepository {
	return &LeadsRepository{db: db}
}

// UpsertLead inserts or refreshes a lead keyed by owner+repo. Re-mining the
// same repository updates the volatile fields instead of duplicating the row.
func (x *LeadsRepository) UpsertLead(logger *tracing.Logger, lead *entities.Lead) (*entities.Lead, error) {
	defer tracing.ProfilePoint(logger, "Leads upsert lead completed", "repository.leads.upsert.lead", tracing.LeadOwner, lead.Owner, tracing.LeadRepo, lead.Repo)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	err := x.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner"}, {Name: "repo"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "company", "location", "languages", "stars", "open_issues",
			"contributors_count", "last_activity", "ai_related", "score", "priority",
		}),
	}).Create(lead).Error
	if err != nil {
		logger.E("Failed to upsert lead", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Upserted lead", tracing.LeadOwner, lead.Owner, tracing.LeadRepo, lead.Repo, tracing.LeadScore, lead.Score)
	return lead, nil
}

func (x *LeadsRepository) GetLeadByID(logger *tracing.Logger, id uuid.UUID) (*entities.Lead, error) {
	defer tracing.ProfilePoint(logger, "Leads get lead by id completed", "repository.leads.get.lead.by.id")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var lead entities.Lead
	err := x.db.WithContext(ctx).Where("id = ?", id).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		logger.E("Failed to get lead", tracing.InnerError, err)
		return nil, err
	}

	return &lead, nil
}

func (x *LeadsRepository) GetLeads(logger *tracing.Logger, minScore float64, priority string, limit int) ([]*entities.Lead, error) {
	defer tracing.ProfilePoint(logger, "Leads get leads completed", "repository.leads.get.leads")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	query := x.db.WithContext(ctx).Model(&entities.Lead{})
	if minScore > 0 {
		query = query.Where("score >= ?", minScore)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var leads []*entities.Lead
	if err := query.Order("score desc").Find(&leads).Error; err != nil {
		logger.E("Failed to get leads", tracing.InnerError, err)
		return nil, err
	}

	return leads, nil
}

// GetLeadsWithoutOutreach returns scored leads with an email that no outreach
// sequence has been started for yet.
func (x *LeadsRepository) GetLeadsWithoutOutreach(logger *tracing.Logger, minScore float64, limit int) ([]*entities.Lead, error) {
	defer tracing.ProfilePoint(logger, "Leads get leads without outreach completed", "repository.leads.get.leads.without.outreach")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var leads []*entities.Lead
	err := x.db.WithContext(ctx).
		Where("email IS NOT NULL").
		Where("score >= ?", minScore).
		Where("id NOT IN (?)", x.db.Model(&entities.OutreachStep{}).Select("lead_id")).
		Order("score desc").
		Limit(limit).
		Find(&leads).Error
	if err != nil {
		logger.E("Failed to get leads without outreach", tracing.InnerError, err)
		return nil, err
	}

	return leads, nil
}

func (x *LeadsRepository) GetTotalLeadsCount(logger *tracing.Logger) (int64, error) {
	defer tracing.ProfilePoint(logger, "Leads get total leads count completed", "repository.leads.get.total.leads.count")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	if err := x.db.WithContext(ctx).Model(&entities.Lead{}).Count(&count).Error; err != nil {
		logger.E("Failed to count total leads", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}
