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

var ErrProjectNotFound = errors.New("project not found")

type ProjectsRepository struct {
	db *gorm.DB
}

func NewProjectsRepository(db *gorm.DB) *ProjectsRepository {
	return &ProjectsRepository{db: db}
}

func (x *ProjectsRepository) CreateProject(logger *tracing.Logger, accountID uuid.UUID, name string, repoURL *string, language *string) (*entities.Project, error) {
	defer tracing.ProfilePoint(logger, "Projects create project completed", "repository.projects.create.project", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	project := &entities.Project{
		AccountID: accountID,
		Name:      name,
		RepoURL:   repoURL,
		Language:  language,
	}

	if err := x.db.WithContext(ctx).Create(project).Error; err != nil {
		logger.E("Failed to create project", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Created project", tracing.ProjectId, project.ID)
	return project, nil
}

func (x *ProjectsRepository) GetProjectByID(logger *tracing.Logger, id uuid.UUID) (*entities.Project, error) {
	defer tracing.ProfilePoint(logger, "Projects get project by id completed", "repository.projects.get.project.by.id", tracing.ProjectId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var project entities.Project
	err := x.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		logger.E("Failed to get project", tracing.InnerError, err)
		return nil, err
	}

	return &project, nil
}

func (x *ProjectsRepository) GetProjectsByAccount(logger *tracing.Logger, accountID uuid.UUID) ([]*entities.Project, error) {
	defer tracing.ProfilePoint(logger, "Projects get projects by account completed", "repository.projects.get.projects.by.account", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var projects []*entities.Project
	err := x.db.WithContext(ctx).Where("account_id = ?", accountID).Order("created_at desc").Find(&projects).Error
	if err != nil {
		logger.E("Failed to get projects by account", tracing.InnerError, err)
		return nil, err
	}

	return projects, nil
}

func (x *ProjectsRepository) GetProjectsCountByAccount(logger *tracing.Logger, accountID uuid.UUID) (int64, error) {
	defer tracing.ProfilePoint(logger, "Projects get projects count by account completed", "repository.projects.get.projects.count.by.account", tracing.AccountId, accountID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var count int64
	err := x.db.WithContext(ctx).Model(&entities.Project{}).Where("account_id = ?", accountID).Count(&count).Error
	if err != nil {
		logger.E("Failed to count projects by account", tracing.InnerError, err)
		return 0, err
	}

	return count, nil
}
