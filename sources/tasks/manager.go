package tasks

import (
	"errors"
	"taskprovision/sources/artificial"
	"taskprovision/sources/configuration"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("unknown task status")
	ErrInvalidPriority = errors.New("unknown task priority")
	ErrTooBusy         = errors.New("too many concurrent estimations")
)

// Manager owns task lifecycle rules. The blocked status is never set by
// callers directly, it is derived from unfinished required dependencies.
type Manager struct {
	tasks    *repository.TasksRepository
	analyzer *artificial.Analyzer
	config   *configuration.Config
	sem      chan struct{}
}

func NewManager(tasks *repository.TasksRepository, analyzer *artificial.Analyzer, config *configuration.Config) *Manager {
	return &Manager{
		tasks:    tasks,
		analyzer: analyzer,
		config:   config,
		sem:      make(chan struct{}, config.Tasks.MaxConcurrent),
	}
}

func (x *Manager) CreateTask(log *tracing.Logger, task *entities.Task) (*entities.Task, error) {
	if task.Status != "" && !platform.KnownTaskStatus(task.Status) {
		return nil, ErrInvalidStatus
	}
	if task.Priority != "" && !platform.KnownTaskPriority(task.Priority) {
		return nil, ErrInvalidPriority
	}

	return x.tasks.CreateTask(log, task)
}

func (x *Manager) GetTask(log *tracing.Logger, id uuid.UUID) (*entities.Task, error) {
	return x.tasks.GetTaskByID(log, id)
}

func (x *Manager) ListTasks(log *tracing.Logger, filter repository.TaskFilter) ([]*entities.Task, error) {
	if filter.Status != "" && !platform.KnownTaskStatus(filter.Status) {
		return nil, ErrInvalidStatus
	}

	return x.tasks.GetTasks(log, filter)
}

func (x *Manager) UpdateTask(log *tracing.Logger, id uuid.UUID, patch repository.TaskPatch) (*entities.Task, error) {
	if patch.Status != nil {
		if !platform.KnownTaskStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}

		// Moving into active work re-checks dependencies first.
		if *patch.Status == platform.TaskStatusInProgress {
			task, err := x.tasks.GetTaskByID(log, id)
			if err != nil {
				return nil, err
			}
			if blocked, err := x.isBlockedByDependencies(log, task); err != nil {
				return nil, err
			} else if blocked {
				log.I("Task forced into blocked, required dependencies unfinished", tracing.TaskId, id)
				blockedStatus := platform.TaskStatusBlocked
				patch.Status = &blockedStatus
			}
		}
	}
	if patch.Priority != nil && !platform.KnownTaskPriority(*patch.Priority) {
		return nil, ErrInvalidPriority
	}

	return x.tasks.UpdateTask(log, id, patch)
}

func (x *Manager) DeleteTask(log *tracing.Logger, id uuid.UUID) error {
	return x.tasks.DeleteTask(log, id)
}

func (x *Manager) AddDependency(log *tracing.Logger, taskID, dependsOnID uuid.UUID, required bool, description string) (*entities.TaskDependency, error) {
	dependency, err := x.tasks.AddTaskDependency(log, taskID, dependsOnID, required, description)
	if err != nil {
		return nil, err
	}

	// A fresh unfinished required dependency may block the task right away.
	if required {
		task, err := x.tasks.GetTaskByID(log, taskID)
		if err == nil && task.Status == platform.TaskStatusInProgress {
			if blocked, err := x.isBlockedByDependencies(log, task); err == nil && blocked {
				if err := x.tasks.UpdateTaskStatus(log, taskID, platform.TaskStatusBlocked); err != nil {
					log.E("Failed to block task after dependency added", tracing.InnerError, err)
				}
			}
		}
	}

	return dependency, nil
}

func (x *Manager) GetDependencies(log *tracing.Logger, taskID uuid.UUID) ([]*entities.TaskDependency, error) {
	return x.tasks.GetTaskDependencies(log, taskID)
}

// GetBlockedTasks derives blocked state across the board, persists newly
// derived transitions and keeps tasks already stored as blocked in the
// result.
func (x *Manager) GetBlockedTasks(log *tracing.Logger) ([]*entities.Task, error) {
	candidates, err := x.tasks.GetTasksWithRequiredDependencies(log)
	if err != nil {
		return nil, err
	}

	var blocked []*entities.Task
	for _, task := range candidates {
		include, transition := blockedSelection(task)
		if !include {
			continue
		}

		if transition {
			if err := x.tasks.UpdateTaskStatus(log, task.ID, platform.TaskStatusBlocked); err != nil {
				log.E("Failed to persist blocked status", tracing.TaskId, task.ID, tracing.InnerError, err)
			} else {
				task.Status = platform.TaskStatusBlocked
			}
		}

		blocked = append(blocked, task)
	}

	return blocked, nil
}

// blockedSelection reports whether the task belongs in the blocked set and
// whether its stored status still has to be moved to blocked.
func blockedSelection(task *entities.Task) (include bool, transition bool) {
	if hasUnfinishedRequiredDependency(task) {
		return true, task.Status != platform.TaskStatusBlocked
	}
	return task.Status == platform.TaskStatusBlocked, false
}

// EstimateComplexity asks the model for an implementation complexity score and
// stores it on the task. Concurrency is capped by the configured limit.
func (x *Manager) EstimateComplexity(log *tracing.Logger, account *entities.Account, taskID uuid.UUID) (*artificial.ComplexityEstimate, error) {
	select {
	case x.sem <- struct{}{}:
		defer func() { <-x.sem }()
	default:
		return nil, ErrTooBusy
	}

	task, err := x.tasks.GetTaskByID(log, taskID)
	if err != nil {
		return nil, err
	}

	estimate, err := x.analyzer.AnalyzeTaskComplexity(log, account, task.Title, task.Description)
	if err != nil {
		return nil, err
	}

	if _, err := x.tasks.UpdateTask(log, taskID, repository.TaskPatch{Complexity: &estimate.Complexity}); err != nil {
		log.E("Failed to store complexity estimate", tracing.InnerError, err)
	}

	return estimate, nil
}

func (x *Manager) isBlockedByDependencies(log *tracing.Logger, task *entities.Task) (bool, error) {
	dependencies, err := x.tasks.GetTaskDependencies(log, task.ID)
	if err != nil {
		return false, err
	}

	for _, dependency := range dependencies {
		if !platform.BoolValue(dependency.Required, true) {
			continue
		}
		if dependency.DependsOn.Status != platform.TaskStatusDone {
			return true, nil
		}
	}

	return false, nil
}

func hasUnfinishedRequiredDependency(task *entities.Task) bool {
	for _, dependency := range task.Dependencies {
		if !platform.BoolValue(dependency.Required, true) {
			continue
		}
		if dependency.DependsOn.Status != platform.TaskStatusDone {
			return true
		}
	}
	return false
}
