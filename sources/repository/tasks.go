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

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrDependencyNotFound = errors.New("task dependency not found")
	ErrSelfDependency     = errors.New("task cannot depend on itself")
)

// TaskFilter narrows task listing. Zero values mean "no filter".
type TaskFilter struct {
	Status    string
	Priority  string
	Assignee  string
	ProjectID *uuid.UUID
	Limit     int
	Offset    int
}

type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Assignee    *string
	Tags        []string
	Complexity  *float64
	DueDate     *time.Time
}

type TasksRepository struct {
	db *gorm.DB
}

func NewTasksRepository(db *gorm.DB) *TasksRepository {
	return &TasksRepository{db: db}
}

func (x *TasksRepository) CreateTask(logger *tracing.Logger, task *entities.Task) (*entities.Task, error) {
	defer tracing.ProfilePoint(logger, "Tasks create task completed", "repository.tasks.create.task")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if task.Status == "" {
		task.Status = platform.TaskStatusTodo
	}
	if task.Priority == "" {
		task.Priority = platform.TaskPriorityMedium
	}

	if err := x.db.WithContext(ctx).Create(task).Error; err != nil {
		logger.E("Failed to create task", tracing.InnerError, err)
		return nil, err
	}

	logger.I("Created task", tracing.TaskId, task.ID, tracing.TaskStatus, task.Status, tracing.TaskPriority, task.Priority)
	return task, nil
}

func (x *TasksRepository) GetTaskByID(logger *tracing.Logger, id uuid.UUID) (*entities.Task, error) {
	defer tracing.ProfilePoint(logger, "Tasks get task by id completed", "repository.tasks.get.task.by.id", tracing.TaskId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var task entities.Task
	err := x.db.WithContext(ctx).Preload("Dependencies").Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		logger.E("Failed to get task", tracing.InnerError, err)
		return nil, err
	}

	return &task, nil
}

func (x *TasksRepository) GetTasks(logger *tracing.Logger, filter TaskFilter) ([]*entities.Task, error) {
	defer tracing.ProfilePoint(logger, "Tasks get tasks completed", "repository.tasks.get.tasks")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	query := x.db.WithContext(ctx).Model(&entities.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.Assignee != "" {
		query = query.Where("assignee = ?", filter.Assignee)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var tasks []*entities.Task
	if err := query.Order("created_at desc").Find(&tasks).Error; err != nil {
		logger.E("Failed to get tasks", tracing.InnerError, err)
		return nil, err
	}

	return tasks, nil
}

func (x *TasksRepository) UpdateTask(logger *tracing.Logger, id uuid.UUID, patch TaskPatch) (*entities.Task, error) {
	defer tracing.ProfilePoint(logger, "Tasks update task completed", "repository.tasks.update.task", tracing.TaskId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Assignee != nil {
		updates["assignee"] = *patch.Assignee
	}
	if patch.Tags != nil {
		updates["tags"] = patch.Tags
	}
	if patch.Complexity != nil {
		updates["complexity"] = *patch.Complexity
	}
	if patch.DueDate != nil {
		updates["due_date"] = *patch.DueDate
	}

	result := x.db.WithContext(ctx).Model(&entities.Task{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		logger.E("Failed to update task", tracing.InnerError, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return x.GetTaskByID(logger, id)
}

func (x *TasksRepository) UpdateTaskStatus(logger *tracing.Logger, id uuid.UUID, status platform.TaskStatus) error {
	defer tracing.ProfilePoint(logger, "Tasks update task status completed", "repository.tasks.update.task.status", tracing.TaskId, id, tracing.TaskStatus, status)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	result := x.db.WithContext(ctx).Model(&entities.Task{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		logger.E("Failed to update task status", tracing.InnerError, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (x *TasksRepository) DeleteTask(logger *tracing.Logger, id uuid.UUID) error {
	defer tracing.ProfilePoint(logger, "Tasks delete task completed", "repository.tasks.delete.task", tracing.TaskId, id)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	err := x.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? OR depends_on_id = ?", id, id).Delete(&entities.TaskDependency{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&entities.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}

		return nil
	})
	if err != nil && !errors.Is(err, ErrTaskNotFound) {
		logger.E("Failed to delete task", tracing.InnerError, err)
	}

	return err
}

func (x *TasksRepository) AddTaskDependency(logger *tracing.Logger, taskID, dependsOnID uuid.UUID, required bool, description string) (*entities.TaskDependency, error) {
	defer tracing.ProfilePoint(logger, "Tasks add task dependency completed", "repository.tasks.add.task.dependency", tracing.TaskId, taskID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	if taskID == dependsOnID {
		return nil, ErrSelfDependency
	}

	var count int64
	if err := x.db.WithContext(ctx).Model(&entities.Task{}).Where("id IN ?", []uuid.UUID{taskID, dependsOnID}).Count(&count).Error; err != nil {
		logger.E("Failed to verify dependency tasks", tracing.InnerError, err)
		return nil, err
	}
	if count != 2 {
		return nil, ErrTaskNotFound
	}

	dependency := &entities.TaskDependency{
		TaskID:      taskID,
		DependsOnID: dependsOnID,
		Required:    platform.BoolPtr(required),
		Description: description,
	}

	if err := x.db.WithContext(ctx).Create(dependency).Error; err != nil {
		logger.E("Failed to add task dependency", tracing.InnerError, err)
		return nil, err
	}

	return dependency, nil
}

func (x *TasksRepository) GetTaskDependencies(logger *tracing.Logger, taskID uuid.UUID) ([]*entities.TaskDependency, error) {
	defer tracing.ProfilePoint(logger, "Tasks get task dependencies completed", "repository.tasks.get.task.dependencies", tracing.TaskId, taskID)()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var dependencies []*entities.TaskDependency
	err := x.db.WithContext(ctx).Preload("DependsOn").Where("task_id = ?", taskID).Find(&dependencies).Error
	if err != nil {
		logger.E("Failed to get task dependencies", tracing.InnerError, err)
		return nil, err
	}

	return dependencies, nil
}

// GetTasksWithRequiredDependencies returns every non-terminal task together with
// its required dependencies preloaded, for blocked-status derivation.
func (x *TasksRepository) GetTasksWithRequiredDependencies(logger *tracing.Logger) ([]*entities.Task, error) {
	defer tracing.ProfilePoint(logger, "Tasks get tasks with required dependencies completed", "repository.tasks.get.tasks.with.required.dependencies")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	var tasks []*entities.Task
	err := x.db.WithContext(ctx).
		Preload("Dependencies", "required = ?", true).
		Preload("Dependencies.DependsOn").
		Where("status NOT IN ?", []string{platform.TaskStatusDone, platform.TaskStatusArchived}).
		Find(&tasks).Error
	if err != nil {
		logger.E("Failed to get tasks with required dependencies", tracing.InnerError, err)
		return nil, err
	}

	return tasks, nil
}

func (x *TasksRepository) GetTasksCountByStatus(logger *tracing.Logger) (map[string]int64, error) {
	defer tracing.ProfilePoint(logger, "Tasks get tasks count by status completed", "repository.tasks.get.tasks.count.by.status")()
	ctx, cancel := platform.ContextTimeoutVal(context.Background(), 20*time.Second)
	defer cancel()

	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	err := x.db.WithContext(ctx).Model(&entities.Task{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.E("Failed to count tasks by status", tracing.InnerError, err)
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}
