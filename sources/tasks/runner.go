package tasks

import (
	"context"
	"taskprovision/sources/platform"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"
	"time"

	"go.uber.org/fx"
)

// Reconciler keeps stored task statuses in sync with dependency state, so
// list queries by status stay truthful between mutations.
type Reconciler struct {
	log     *tracing.Logger
	tasks   *repository.TasksRepository
	manager *Manager
}

func NewReconciler(lc fx.Lifecycle, log *tracing.Logger, tasks *repository.TasksRepository, manager *Manager) *Reconciler {
	r := &Reconciler{log: log, tasks: tasks, manager: manager}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go r.start()
			return nil
		},
	})

	return r
}

func (r *Reconciler) start() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	r.reconcile()

	for range ticker.C {
		r.reconcile()
	}
}

func (r *Reconciler) reconcile() {
	candidates, err := r.tasks.GetTasksWithRequiredDependencies(r.log)
	if err != nil {
		r.log.E("Failed to load tasks for reconciliation", tracing.InnerError, err)
		return
	}

	for _, task := range candidates {
		unfinished := hasUnfinishedRequiredDependency(task)

		switch {
		case unfinished && task.Status == platform.TaskStatusInProgress:
			if err := r.tasks.UpdateTaskStatus(r.log, task.ID, platform.TaskStatusBlocked); err != nil {
				r.log.E("Failed to block task", tracing.TaskId, task.ID, tracing.InnerError, err)
			}
		case !unfinished && task.Status == platform.TaskStatusBlocked:
			if err := r.tasks.UpdateTaskStatus(r.log, task.ID, platform.TaskStatusTodo); err != nil {
				r.log.E("Failed to unblock task", tracing.TaskId, task.ID, tracing.InnerError, err)
			}
		}
	}
}
