package platform

type PlanKey = string

const (
	PlanStarter      PlanKey = "starter"
	PlanProfessional PlanKey = "professional"
	PlanEnterprise   PlanKey = "enterprise"
)

type TaskStatus = string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusArchived   TaskStatus = "archived"
)

type TaskPriority = string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

func KnownPlanKey(k PlanKey) bool {
	switch k {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

func KnownTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusReview, TaskStatusDone, TaskStatusArchived:
		return true
	}
	return false
}

func KnownTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}
