package external

import (
	"net/http"
	"taskprovision/sources/persistence/entities"
	"taskprovision/sources/repository"
)

type createProjectRequest struct {
	Name     string  `json:"name"`
	RepoURL  *string `json:"repo_url"`
	Language *string `json:"language"`
}

func (x *Router) handleCreateProject(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	var req createProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(x.log, w, err)
		return
	}
	if req.Name == "" {
		writeError(x.log, w, errInvalidBody)
		return
	}

	project, err := x.projects.CreateProject(x.log, account.ID, req.Name, req.RepoURL, req.Language)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (x *Router) handleListProjects(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	projects, err := x.projects.GetProjectsByAccount(x.log, account.ID)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (x *Router) handleGetProject(w http.ResponseWriter, r *http.Request, account *entities.Account) {
	id, err := pathID(r)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	project, err := x.projects.GetProjectByID(x.log, id)
	if err != nil {
		writeError(x.log, w, err)
		return
	}

	// Projects belong to the account that created them.
	if project.AccountID != account.ID {
		writeError(x.log, w, repository.ErrProjectNotFound)
		return
	}

	writeJSON(w, http.StatusOK, project)
}
