package tasks

import (
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/platform"
	"taskprovision/sources/tracing"
	"testing"
)

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	m := &Manager{}
	log := tracing.NewConsoleLogger()

	_, err := m.CreateTask(log, &entities.Task{Title: "x", Status: "doing"})
	if err != ErrInvalidStatus {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}

	_, err = m.CreateTask(log, &entities.Task{Title: "x", Priority: "urgent"})
	if err != ErrInvalidPriority {
		t.Errorf("err = %v, want ErrInvalidPriority", err)
	}
}

func TestHasUnfinishedRequiredDependency(t *testing.T) {
	done := entities.Task{Status: platform.TaskStatusDone}
	open := entities.Task{Status: platform.TaskStatusInProgress}

	tests := []struct {
		name string
		task entities.Task
		want bool
	}{
		{
			name: "no dependencies",
			task: entities.Task{},
			want: false,
		},
		{
			name: "required dependency done",
			task: entities.Task{Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(true), DependsOn: done},
			}},
			want: false,
		},
		{
			name: "required dependency open",
			task: entities.Task{Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(true), DependsOn: open},
			}},
			want: true,
		},
		{
			name: "optional dependency open",
			task: entities.Task{Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(false), DependsOn: open},
			}},
			want: false,
		},
		{
			name: "mixed dependencies",
			task: entities.Task{Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(false), DependsOn: open},
				{Required: platform.BoolPtr(true), DependsOn: done},
				{Required: platform.BoolPtr(true), DependsOn: open},
			}},
			want: true,
		},
		{
			name: "nil required defaults to required",
			task: entities.Task{Dependencies: []entities.TaskDependency{
				{DependsOn: open},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasUnfinishedRequiredDependency(&tt.task); got != tt.want {
				t.Errorf("hasUnfinishedRequiredDependency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlockedSelection(t *testing.T) {
	open := entities.Task{Status: platform.TaskStatusInProgress}
	done := entities.Task{Status: platform.TaskStatusDone}

	tests := []struct {
		name           string
		task           entities.Task
		wantInclude    bool
		wantTransition bool
	}{
		{
			name: "todo with open required dependency",
			task: entities.Task{Status: platform.TaskStatusTodo, Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(true), DependsOn: open},
			}},
			wantInclude:    true,
			wantTransition: true,
		},
		{
			name: "already blocked with open required dependency",
			task: entities.Task{Status: platform.TaskStatusBlocked, Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(true), DependsOn: open},
			}},
			wantInclude:    true,
			wantTransition: false,
		},
		{
			name:           "already blocked without dependencies",
			task:           entities.Task{Status: platform.TaskStatusBlocked},
			wantInclude:    true,
			wantTransition: false,
		},
		{
			name: "todo with finished required dependency",
			task: entities.Task{Status: platform.TaskStatusTodo, Dependencies: []entities.TaskDependency{
				{Required: platform.BoolPtr(true), DependsOn: done},
			}},
			wantInclude:    false,
			wantTransition: false,
		},
		{
			name:           "todo without dependencies",
			task:           entities.Task{Status: platform.TaskStatusTodo},
			wantInclude:    false,
			wantTransition: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			include, transition := blockedSelection(&tt.task)
			if include != tt.wantInclude || transition != tt.wantTransition {
				t.Errorf("blockedSelection() = (%v, %v), want (%v, %v)", include, transition, tt.wantInclude, tt.wantTransition)
			}
		})
	}
}

func TestKnownStatusesAccepted(t *testing.T) {
	for _, status := range []string{
		platform.TaskStatusTodo,
		platform.TaskStatusInProgress,
		platform.TaskStatusBlocked,
		platform.TaskStatusReview,
		platform.TaskStatusDone,
		platform.TaskStatusArchived,
	} {
		if !platform.KnownTaskStatus(status) {
			t.Errorf("KnownTaskStatus(%q) = false, want true", status)
		}
	}
}
