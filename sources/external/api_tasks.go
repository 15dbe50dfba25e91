package external

import (
	"net/http"
	"strconv"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/repository"
	"taskprovision/sources/tracing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type createTaskRequest struct {
	ProjectID   *uuid.UUID `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Assignee    *string    `json:"assignee"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"due_date"`
}

func (x *Router) handleCreateTask(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Title == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	task, err := x.tasks.CreateTask(x.log, &entities.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Tags:        pq.StringArray(req.Tags),
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (x *Router) handleListTasks(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	query := r.URL.Query()

	filter := repository.TaskFilter{
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Assignee: query.Get("assignee"),
	}

	if raw := query.Get("project_id"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			writeError(x.log, w, errInvalidBody)
			return
		}
		filter.ProjectID = &projectID
	}

	filter.Limit, _ = strconv.Atoi(query.Get("limit"))
	filter.Offset, _ = strconv.Atoi(query.Get("offset"))

	tasks, err := x.tasks.ListTasks(x.log, filter)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (x *Router) handleGetTask(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	task, err := x.tasks.GetTask(x.log, id)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Assignee    *string    `json:"assignee"`
	Tags        []string   `json:"tags"`
	Complexity  *float64   `json:"complexity"`
	DueDate     *time.Time `json:"due_date"`
}

func (x *Router) handleUpdateTask(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	var req updateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}

	task, err := x.tasks.UpdateTask(x.log, id, repository.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
		Tags:        req.Tags,
		Complexity:  req.Complexity,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (x *Router) handleDeleteTask(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	if err := x.tasks.DeleteTask(x.log, id); err != nil {
		writeError(x.log, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type addDependencyRequest struct {
	DependsOnID uuid.UUID `json:"depends_on_id"`
	Required    *bool     `json:"required"`
	Description string    `json:"description"`
}

func (x *Router) handleAddDependency(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	var req addDependencyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}

	required := true
	if req.Required != nil {
		required = *req.Required
	}

	dependency, err := x.tasks.AddDependency(x.log, id, req.DependsOnID, required, req.Description)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dependency)
}

func (x *Router) handleListDependencies(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	dependencies, err := x.tasks.GetDependencies(x.log, id)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, dependencies)
}

func (x *Router) handleBlockedTasks(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	blocked, err := x.tasks.GetBlockedTasks(x.log)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, blocked)
}

func (x *Router) handleEstimateComplexity(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	estimate, err := x.tasks.EstimateComplexity(x.log, account, id)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	x.log.I("Estimated task complexity", tracing.TaskId, id, tracing.AccountId, account.ID)
	writeJSON(w, http.StatusOK, estimate)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errInvalidBody
	}
	return id, nil
}
